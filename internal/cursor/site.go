// Package cursor classifies the text around a completion position.
//
// The analysis is lexical: brackets, statements and a handful of keywords are
// tracked while comments and literals are skipped. It never fails; text it
// cannot make sense of yields a plain scope completion.
package cursor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type Mode int

const (
	// ModeScope completes a bare name from the enclosing scopes.
	ModeScope Mode = iota
	// ModeDot completes a field or method after `receiver.`.
	ModeDot
	// ModePath completes an item after `qualifier::`.
	ModePath
)

func (m Mode) String() string {
	switch m {
	case ModeDot:
		return "dot"
	case ModePath:
		return "path"
	default:
		return "scope"
	}
}

// Call is the innermost unclosed call around the cursor.
type Call struct {
	Callee    string
	Receiver  string   // set for method calls
	Qualifier []string // set for `Type::func(` calls
	ArgIndex  int
	Macro     bool
}

// RecordField is the field initializer the cursor fills in a record literal.
type RecordField struct {
	Struct string
	Field  string
}

// Site describes one completion position. Offsets are byte offsets into the
// analyzed text.
type Site struct {
	Offset int
	// Start and End delimit the identifier under the cursor; they are equal
	// when the cursor is not on an identifier.
	Start  int
	End    int
	Prefix string

	Mode      Mode
	Receiver  string
	Qualifier []string

	InLiteral   bool
	UseItem     bool
	IsCall      bool
	IsMacroCall bool
	IsPathType  bool
	HasTypeArgs bool

	Call        *Call
	RecordField *RecordField
	// LetType is the annotation of a `let x: T = |` initializer.
	LetType string
}

// Analyze classifies the position at offset in text.
func Analyze(text string, offset int) Site {
	offset = clampOffset(text, offset)
	start := identStart(text, offset)
	end := identEnd(text, offset)

	site := Site{
		Offset: offset,
		Start:  start,
		End:    end,
		Prefix: text[start:offset],
	}

	s := scan(text, start)
	if s.inLiteral {
		site.InLiteral = true
		return site
	}

	exprStart := start
	before := strings.TrimRight(text[:start], whitespace)
	switch {
	case strings.HasSuffix(before, "::"):
		qualEnd := len(before) - 2
		qualStart := pathStart(before, qualEnd)
		site.Mode = ModePath
		site.Qualifier = splitPath(before[qualStart:qualEnd])
		exprStart = qualStart
	case strings.HasSuffix(before, ".") && !strings.HasSuffix(before, ".."):
		recv := strings.TrimRight(before[:len(before)-1], whitespace)
		recvStart := chainStart(recv, len(recv))
		if recvStart < len(recv) {
			site.Mode = ModeDot
			site.Receiver = recv[recvStart:]
			exprStart = recvStart
		}
	}

	after := strings.TrimLeft(text[end:], " \t")
	site.IsCall = strings.HasPrefix(after, "(")
	site.IsMacroCall = strings.HasPrefix(after, "!") && !strings.HasPrefix(after, "!=")
	site.HasTypeArgs = strings.HasPrefix(text[end:], "<") || strings.HasPrefix(text[end:], "::<")

	site.UseItem = s.isUseItem(exprStart)
	site.IsPathType = !site.UseItem && site.Mode != ModeDot && s.isTypePosition(exprStart)
	site.Call = s.callSite()
	site.RecordField = s.recordField(exprStart)
	site.LetType = s.letAnnotation(exprStart)
	return site
}

func clampOffset(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(text) {
		return len(text)
	}
	for offset > 0 && offset < len(text) && !utf8.RuneStart(text[offset]) {
		offset--
	}
	return offset
}

func isUseStmt(stmt string) bool {
	stmt = stripVisibility(stmt)
	return stmt == "use" || strings.HasPrefix(stmt, "use ")
}

// isUseItem reports whether pos is inside a `use` tree, including nested
// `{a, b}` groups.
func (s *scanner) isUseItem(pos int) bool {
	i := len(s.stack) - 1
	for {
		start := s.rootStmt
		if i >= 0 {
			start = s.stack[i].stmtStart
		}
		if isUseStmt(strings.TrimSpace(s.text[start:pos])) {
			return true
		}
		if i < 0 {
			return false
		}
		f := s.stack[i]
		if f.open != '{' || !strings.HasSuffix(strings.TrimRight(s.text[:f.pos], whitespace), "::") {
			return false
		}
		pos = f.pos
		i--
	}
}

func isTypeAnnotatedStmt(stmt string) bool {
	switch firstWord(stripVisibility(stmt)) {
	case "let", "const", "static":
		return true
	}
	return false
}

func (s *scanner) isTypePosition(pos int) bool {
	top := s.top()
	if top != nil && top.open == '<' {
		return true
	}
	if top != nil && top.typeDecl && top.open == '(' {
		return true
	}

	before := trimRefModifiers(s.text[:pos])
	switch {
	case strings.HasSuffix(before, "->"):
		return true
	case strings.HasSuffix(before, "::"):
		return false
	case strings.HasSuffix(before, ":"):
		if top != nil && (top.fnParams || top.typeDecl) {
			return true
		}
		stmtStart := s.stmtStart()
		if stmtStart > len(before) {
			return false
		}
		return isTypeAnnotatedStmt(s.text[stmtStart:len(before)])
	}
	switch lastWord(before) {
	case "impl", "dyn", "as":
		return true
	}
	return false
}

var callKeywords = map[string]bool{
	"if": true, "while": true, "match": true, "return": true, "for": true,
	"in": true, "loop": true, "move": true, "fn": true,
}

func (s *scanner) callSite() *Call {
	top := s.top()
	if top == nil || top.open != '(' || top.fnParams || top.typeDecl {
		return nil
	}
	before := strings.TrimRight(s.text[:top.pos], whitespace)
	macro := strings.HasSuffix(before, "!")
	if macro {
		before = before[:len(before)-1]
	}
	calleeStart := identStart(before, len(before))
	callee := before[calleeStart:]
	if callee == "" || !isIdentStartByte(callee[0]) || callKeywords[callee] {
		return nil
	}

	call := &Call{Callee: callee, ArgIndex: top.args, Macro: macro}
	rest := strings.TrimRight(before[:calleeStart], whitespace)
	switch {
	case strings.HasSuffix(rest, "::"):
		qualEnd := len(rest) - 2
		call.Qualifier = splitPath(rest[pathStart(rest, qualEnd):qualEnd])
	case strings.HasSuffix(rest, ".") && !strings.HasSuffix(rest, ".."):
		recv := strings.TrimRight(rest[:len(rest)-1], whitespace)
		call.Receiver = recv[chainStart(recv, len(recv)):]
	}
	return call
}

var fieldInitPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:$`)

func (s *scanner) recordField(pos int) *RecordField {
	top := s.top()
	if top == nil || top.open != '{' || top.literal == "" || top.lastSep > pos {
		return nil
	}
	m := fieldInitPattern.FindStringSubmatch(strings.TrimSpace(s.text[top.lastSep:pos]))
	if m == nil {
		return nil
	}
	return &RecordField{Struct: top.literal, Field: m[1]}
}

var letAnnotationPattern = regexp.MustCompile(`(?s)^let\s+(?:mut\s+)?[A-Za-z_][A-Za-z0-9_]*\s*:\s*(.+?)\s*=$`)

func (s *scanner) letAnnotation(pos int) string {
	start := s.stmtStart()
	if start > pos {
		return ""
	}
	m := letAnnotationPattern.FindStringSubmatch(strings.TrimSpace(s.text[start:pos]))
	if m == nil || strings.Contains(m[1], "=") {
		return ""
	}
	return m[1]
}
