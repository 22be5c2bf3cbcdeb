package completion

import (
	"strings"
	"unicode"
)

type braceStyle struct {
	open  string
	close string
}

// Evaluation order matters: on equal votes the later style wins.
var macroBraceStyles = [...]braceStyle{
	{open: " {", close: "}"},
	{open: "[", close: "]"},
	{open: "(", close: ")"},
}

// GuessMacroBraces picks the bracket style a macro is usually invoked with
// by counting `name!{`, `name![` and `name!(` occurrences in its docs.
func GuessMacroBraces(macroName, docs string) (openBrace, closeBrace string) {
	var votes [len(macroBraceStyles)]int
	// An empty name matches nowhere; callers never render nameless macros.
	if macroName != "" {
		for offset := 0; ; {
			idx := strings.Index(docs[offset:], macroName)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(macroName)
			offset = end

			before, after := docs[:start], docs[end:]
			if !strings.HasPrefix(after, "!") || endsWithIdentChar(before) {
				continue
			}
			switch firstNonSpace(after[1:]) {
			case '{':
				votes[0]++
			case '[':
				votes[1]++
			case '(':
				votes[2]++
			}
		}
	}

	// With no votes the first style stands.
	best := 0
	for i := range votes {
		if votes[i] > 0 && votes[i] >= votes[best] {
			best = i
		}
	}
	return macroBraceStyles[best].open, macroBraceStyles[best].close
}

func endsWithIdentChar(s string) bool {
	if s == "" {
		return false
	}
	c := s[len(s)-1]
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func firstNonSpace(s string) rune {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return r
		}
	}
	return 0
}
