// Package repair turns raw model replies into clean structured data. Models
// routinely wrap JSON in markdown fences or bury it in prose; this package
// strips, rescues, and validates before anything downstream sees it.
package repair

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from a model reply.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// ParseJSON parses a model reply into a generic JSON value. It strips code
// fences, tries a direct parse, and on failure rescues the first balanced
// {...} or [...] span found in the text. Returns nil if nothing parses.
// Parsing is pure: the same input always yields the same result.
func ParseJSON(text string) any {
	cleaned := CleanJSONBlock(text)

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err == nil {
		return value
	}

	if span := balancedSpan(cleaned); span != "" {
		if err := json.Unmarshal([]byte(span), &value); err == nil {
			return value
		}
	}

	return nil
}

// balancedSpan finds the first balanced {...} or [...] span in text,
// ignoring brackets inside JSON strings.
func balancedSpan(text string) string {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			start = i
			open = text[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
			// brackets inside strings do not count
		case ch == open:
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
