package llm

import "strings"

// StripFence removes markdown code-fence wrapping from a model reply.
//
// A recognized fence opens with three backticks, optionally followed by a
// language tag on the same line, and closes with three backticks at the end;
// a missing closer still strips the opener. Anything else is returned
// trimmed but otherwise untouched. Stripping runs to a fixed point, so the
// operation is idempotent even for nested fences.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	for {
		stripped := stripOnce(s)
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// stripOnce removes at most one wrapping fence pair.
func stripOnce(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	body := s[len("```"):]

	// Skip the language tag: everything up to the first newline, as long as
	// it looks like a tag and not content (no spaces, no backticks).
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		tag := strings.TrimSpace(body[:idx])
		if tag == "" || isLanguageTag(tag) {
			body = body[idx+1:]
		}
	} else {
		// Opener with no newline at all: the whole remainder is the tag or
		// the content. Treat a bare tag as an empty payload.
		if isLanguageTag(strings.TrimSpace(body)) {
			return ""
		}
	}

	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

func isLanguageTag(tag string) bool {
	if tag == "" {
		return true
	}
	for _, r := range tag {
		isLower := r >= 'a' && r <= 'z'
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !isLower && !isUpper && !isDigit {
			return false
		}
	}
	return true
}
