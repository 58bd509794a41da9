// Package validate holds the deterministic input checks that gate LLM
// round-trips. All functions are pure: same input, same answer, no I/O.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// MinExperienceYears and MaxExperienceYears bound the accepted answer
	// for professional experience.
	MinExperienceYears = 0
	MaxExperienceYears = 60
)

var (
	// A 10-digit phone number in 3/3/4 groups, optionally wrapped in
	// parentheses and separated by dashes, dots or spaces.
	phoneRe = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)

	emailTokenRe = regexp.MustCompile(`^\w+$`)
)

// Email reports whether text has the shape local "@" domain, where both the
// local part and the domain are non-empty dot-separated alphanumeric tokens
// (underscores allowed). Empty segments on either side of a dot reject the
// whole address.
func Email(text string) bool {
	text = strings.TrimSpace(text)
	local, domain, ok := strings.Cut(text, "@")
	if !ok || local == "" || domain == "" {
		return false
	}

	return validTokens(local) && validTokens(domain)
}

func validTokens(part string) bool {
	for _, token := range strings.Split(part, ".") {
		if !emailTokenRe.MatchString(token) {
			return false
		}
	}
	return true
}

// Phone reports whether text is a 10-digit phone number with optional
// (NNN) NNN-NNNN style formatting. Letters or a wrong digit count fail.
func Phone(text string) bool {
	return phoneRe.MatchString(strings.TrimSpace(text))
}

// Experience reports whether text parses as a whole number of years within
// the accepted range. Decimal answers such as "5.5" are rejected.
func Experience(text string) bool {
	years, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return false
	}

	return years >= MinExperienceYears && years <= MaxExperienceYears
}

// FullName reports whether text looks like a full name: at least two words
// made of letters, with hyphens and apostrophes allowed inside a word. The
// name stage is still judged by the model; this check backstops it so that a
// too-lenient verdict cannot record digits or punctuation as a name.
func FullName(text string) bool {
	text = strings.TrimSpace(text)
	if len(strings.Fields(text)) < 2 {
		return false
	}

	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '\'' {
			return false
		}
	}

	return true
}
