package ai

import "strings"

// ExtractJSON strips surrounding markdown code fences and stray backticks
// from a model reply so the JSON body can be unmarshaled. JSON output mode is
// requested on every call, but models occasionally wrap the object anyway.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
