package main

import (
	"log"

	"github.com/talentscout/screening-assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
