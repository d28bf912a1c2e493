package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeName cleans a sprite name: trims whitespace and drops control
// characters.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	var sb strings.Builder
	for _, r := range name {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// SanitizeText cleans bubble text. Bubbles are a single line, so line
// breaks and tabs become spaces, and the text is cut to MaxTextLength.
func SanitizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, text)
	return TruncateString(StripControlChars(text), MaxTextLength)
}

// StripControlChars removes all control characters from a string.
func StripControlChars(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
