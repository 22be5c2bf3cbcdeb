package cursor

import (
	"strings"
	"unicode/utf8"
)

const whitespace = " \t\r\n"

// Bytes >= 0x80 are treated as identifier bytes so non-ASCII identifiers
// stay in one piece.
func isIdentByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentStartByte(c byte) bool {
	return isIdentByte(c) && !(c >= '0' && c <= '9')
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// identStart returns the start of the identifier ending at end.
func identStart(text string, end int) int {
	start := end
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return start
}

// identEnd returns the end of the identifier starting at start.
func identEnd(text string, start int) int {
	end := start
	for end < len(text) && isIdentByte(text[end]) {
		end++
	}
	return end
}

// lastWord returns the identifier at the very end of s.
func lastWord(s string) string {
	return s[identStart(s, len(s)):]
}

// pathStart returns the start of the `a::b::c` path ending at end.
func pathStart(text string, end int) int {
	start := end
	for {
		j := identStart(text, start)
		if j == start {
			return start
		}
		start = j
		if start >= 2 && text[start-2:start] == "::" {
			start -= 2
			continue
		}
		return start
	}
}

// chainStart returns the start of the receiver expression ending at end,
// such as `self.items()` or `a.b.0`.
func chainStart(text string, end int) int {
	start := end
	for start > 0 {
		c := text[start-1]
		switch {
		case isIdentByte(c) || c == '.':
			start--
		case c == ':' && start >= 2 && text[start-2] == ':':
			start -= 2
		case c == ')' || c == ']':
			open := matchingOpen(text, start-1)
			if open < 0 {
				return start
			}
			start = open
		default:
			return start
		}
	}
	return start
}

// matchingOpen returns the index of the bracket closed at text[closeIdx].
func matchingOpen(text string, closeIdx int) int {
	closing := text[closeIdx]
	opening := byte('(')
	if closing == ']' {
		opening = '['
	}
	depth := 0
	for i := closeIdx; i >= 0; i-- {
		switch text[i] {
		case closing:
			depth++
		case opening:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "::") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func skipLineComment(text string, i int) int {
	if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
		return i + nl + 1
	}
	return len(text)
}

func skipBlockComment(text string, i int) int {
	if end := strings.Index(text[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 2
	}
	return len(text)
}

// skipString skips a string literal body starting after the opening quote.
func skipString(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return len(text)
}

// rawStringEnd returns the end of a raw string literal whose `r` prefix
// spans text[start:identEnd], or 0 when the word is not a raw string prefix.
func rawStringEnd(text string, start, wordEnd int) int {
	word := text[start:wordEnd]
	if word != "r" && word != "br" {
		return 0
	}
	i := wordEnd
	hashes := 0
	for i < len(text) && text[i] == '#' {
		hashes++
		i++
	}
	if i >= len(text) || text[i] != '"' {
		return 0
	}
	terminator := "\"" + strings.Repeat("#", hashes)
	if end := strings.Index(text[i+1:], terminator); end >= 0 {
		return i + 1 + end + len(terminator)
	}
	return len(text)
}

// skipCharOrLifetime skips a char literal starting at the quote at i. A
// lifetime or loop label is left in place and only the quote is consumed.
func skipCharOrLifetime(text string, i int) int {
	if i+1 >= len(text) {
		return i + 1
	}
	if text[i+1] == '\\' {
		if end := strings.IndexByte(text[i+2:], '\''); end >= 0 {
			return i + 2 + end + 1
		}
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[i+1:])
	if next := i + 1 + size; next < len(text) && text[next] == '\'' {
		return next + 1
	}
	return i + 1
}

// trimRefModifiers strips trailing `&`, `mut`, `*const` and lifetimes so the
// token that introduced a type can be inspected.
func trimRefModifiers(s string) string {
	for {
		s = strings.TrimRight(s, whitespace)
		switch {
		case strings.HasSuffix(s, "&"):
			s = s[:len(s)-1]
		case lastWord(s) == "mut" || lastWord(s) == "const":
			s = s[:len(s)-len(lastWord(s))]
			s = strings.TrimSuffix(strings.TrimRight(s, whitespace), "*")
		case lastWord(s) != "" && identStart(s, len(s)) > 0 && s[identStart(s, len(s))-1] == '\'':
			s = s[:identStart(s, len(s))-1]
		default:
			return s
		}
	}
}

// stripVisibility removes a leading `pub` or `pub(...)`.
func stripVisibility(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if !strings.HasPrefix(stmt, "pub") {
		return stmt
	}
	rest := stmt[3:]
	if strings.HasPrefix(rest, "(") {
		if end := strings.IndexByte(rest, ')'); end >= 0 {
			return strings.TrimSpace(rest[end+1:])
		}
		return stmt
	}
	if rest == "" || !isIdentByte(rest[0]) {
		return strings.TrimSpace(rest)
	}
	return stmt
}

func firstWord(s string) string {
	return s[:identEnd(s, 0)]
}

// splitTopLevel splits s on sep outside any bracket pair.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if i == 0 || s[i-1] != '-' {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}
