// File: internal/services/assistant/fence.go
package assistant

import "strings"

// StripFence recovers the inner content of a triple-backtick code block,
// optionally tagged (```json). The completion model is not contractually
// guaranteed to return pure JSON even when asked to, so callers run every
// JSON-expecting response through this first. Input with no fence is
// returned unchanged apart from surrounding whitespace.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)

	start := strings.Index(trimmed, "```")
	if start < 0 {
		return trimmed
	}

	inner := trimmed[start+3:]
	end := strings.Index(inner, "```")
	if end < 0 {
		// Unterminated fence: treat everything after the opener as content.
		end = len(inner)
	}
	inner = inner[:end]

	// Drop a language tag on the opening line, e.g. ```json.
	if nl := strings.Index(inner, "\n"); nl >= 0 {
		firstLine := strings.TrimSpace(inner[:nl])
		if firstLine != "" && !strings.ContainsAny(firstLine, "{}[]") {
			inner = inner[nl+1:]
		}
	}

	return strings.TrimSpace(inner)
}
