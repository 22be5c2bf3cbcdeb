package cursor

import (
	"regexp"
	"strings"
)

// frame is an open bracket on the scan stack.
type frame struct {
	open      byte
	pos       int
	args      int // top-level commas seen so far
	lastSep   int // offset after the bracket or the last top-level comma
	stmtStart int
	fnParams  bool     // `(` of a fn declaration
	typeDecl  bool     // body of a struct, enum or union declaration
	literal   string   // struct path when `{` opens a record literal
	fn        *fnScope // set when `{` opens a fn body
	implType  string   // self type when `{` opens an impl block
}

type fnScope struct {
	params   string
	selfType string
}

type openLet struct {
	start    int
	depth    int
	framePos int
}

type letBinding struct {
	name     string
	ty       string
	framePos int
}

// scanner walks text up to a limit tracking bracket nesting, statement
// starts, fn scopes and finished let statements. Comments and literals are
// skipped.
type scanner struct {
	text      string
	stack     []*frame
	rootStmt  int
	inLiteral bool

	pendingFn       int
	pendingSig      *fnScope
	pendingSigDepth int
	pendingImpl     int
	pendingImplAt   int
	pendingType     int

	openLets []openLet
	lets     []letBinding
}

func scan(text string, limit int) *scanner {
	s := &scanner{
		text:            text,
		pendingFn:       -1,
		pendingSigDepth: -1,
		pendingImpl:     -1,
		pendingType:     -1,
	}

	i := 0
	for i < limit {
		c := text[i]
		next := i + 1
		literal := true
		switch {
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			next = skipLineComment(text, i)
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			next = skipBlockComment(text, i)
		case c == '"':
			next = skipString(text, i+1)
		case c == '\'':
			next = skipCharOrLifetime(text, i)
		case isIdentStartByte(c):
			end := identEnd(text, i)
			if raw := rawStringEnd(text, i, end); raw > 0 {
				next = raw
				break
			}
			literal = false
			s.word(text[i:end], i)
			next = end
		case c >= '0' && c <= '9':
			literal = false
			next = identEnd(text, i)
		default:
			literal = false
			s.punct(c, i)
		}
		if literal && next > limit {
			s.inLiteral = true
		}
		i = next
	}
	return s
}

func (s *scanner) depth() int {
	return len(s.stack)
}

func (s *scanner) top() *frame {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *scanner) topPos() int {
	if f := s.top(); f != nil {
		return f.pos
	}
	return -1
}

func (s *scanner) stmtStart() int {
	if f := s.top(); f != nil {
		return f.stmtStart
	}
	return s.rootStmt
}

func (s *scanner) setStmtStart(pos int) {
	if f := s.top(); f != nil {
		f.stmtStart = pos
		return
	}
	s.rootStmt = pos
}

func (s *scanner) word(w string, pos int) {
	switch w {
	case "fn":
		s.pendingFn = s.depth()
	case "impl":
		if startsItem(s.text[s.stmtStart():pos]) {
			s.pendingImpl = pos
			s.pendingImplAt = s.depth()
		}
	case "struct", "enum", "union":
		s.pendingType = s.depth()
	case "let":
		s.openLets = append(s.openLets, openLet{start: pos, depth: s.depth(), framePos: s.topPos()})
	}
}

func (s *scanner) punct(c byte, pos int) {
	switch c {
	case '(', '[', '{':
		s.push(c, pos)
	case '<':
		if s.opensGenerics(pos) {
			s.stack = append(s.stack, &frame{open: '<', pos: pos, lastSep: pos + 1, stmtStart: pos + 1})
		}
	case '>':
		if f := s.top(); f != nil && f.open == '<' && pos > 0 && s.text[pos-1] != '-' && s.text[pos-1] != '=' {
			s.stack = s.stack[:len(s.stack)-1]
		}
	case ')', ']', '}':
		s.close(c, pos)
	case ',':
		if f := s.top(); f != nil {
			f.args++
			f.lastSep = pos + 1
			f.stmtStart = pos + 1
		}
	case ';':
		s.endStatement(pos)
	}
}

func (s *scanner) opensGenerics(pos int) bool {
	if pos == 0 {
		return false
	}
	if pos+1 < len(s.text) && (s.text[pos+1] == '=' || s.text[pos+1] == '<') {
		return false
	}
	prev := s.text[pos-1]
	if prev == ':' {
		return true
	}
	if !isIdentByte(prev) {
		return false
	}
	word := lastWord(s.text[:pos])
	return word != "" && isIdentStartByte(word[0])
}

func (s *scanner) push(c byte, pos int) {
	d := s.depth()
	parent := s.top()
	f := &frame{open: c, pos: pos, lastSep: pos + 1, stmtStart: pos + 1}

	switch c {
	case '(':
		if s.pendingFn == d {
			f.fnParams = true
			s.pendingFn = -1
		}
		if s.pendingType == d || (parent != nil && parent.typeDecl) {
			f.typeDecl = true
		}
	case '{':
		if s.pendingSig != nil && s.pendingSigDepth == d {
			f.fn = s.pendingSig
			s.pendingSig = nil
		}
		if s.pendingImpl >= 0 && s.pendingImplAt == d {
			f.implType = implTarget(s.text[s.pendingImpl:pos])
			s.pendingImpl = -1
		}
		if s.pendingType == d {
			f.typeDecl = true
			s.pendingType = -1
		} else if parent != nil && parent.typeDecl {
			f.typeDecl = true
		}
		if !f.typeDecl && f.fn == nil && f.implType == "" {
			f.literal = recordLiteralPath(s.text[:pos])
			if f.literal == "Self" {
				f.literal = s.enclosingImpl()
			}
		}
	}
	s.stack = append(s.stack, f)
}

func (s *scanner) close(c byte, pos int) {
	opening := map[byte]byte{')': '(', ']': '[', '}': '{'}[c]
	for len(s.stack) > 0 && s.top().open == '<' {
		s.stack = s.stack[:len(s.stack)-1]
	}
	f := s.top()
	if f == nil || f.open != opening {
		return
	}
	s.stack = s.stack[:len(s.stack)-1]

	d := s.depth()
	kept := s.openLets[:0]
	for _, l := range s.openLets {
		if l.depth <= d {
			kept = append(kept, l)
		}
	}
	s.openLets = kept

	switch {
	case f.fnParams:
		s.pendingSig = &fnScope{params: s.text[f.pos+1 : pos], selfType: s.enclosingImpl()}
		s.pendingSigDepth = d
	case c == '}':
		s.setStmtStart(pos + 1)
		if s.pendingType == d {
			s.pendingType = -1
		}
	}
}

func (s *scanner) endStatement(pos int) {
	d := s.depth()
	for i := len(s.openLets) - 1; i >= 0; i-- {
		l := s.openLets[i]
		if l.depth != d {
			continue
		}
		if name, ty, ok := parseLet(s.text[l.start:pos]); ok {
			s.lets = append(s.lets, letBinding{name: name, ty: ty, framePos: l.framePos})
		}
		s.openLets = append(s.openLets[:i], s.openLets[i+1:]...)
		break
	}
	if s.pendingFn == d {
		s.pendingFn = -1
	}
	if s.pendingSigDepth == d {
		s.pendingSig = nil
		s.pendingSigDepth = -1
	}
	if s.pendingImplAt == d {
		s.pendingImpl = -1
	}
	if s.pendingType == d {
		s.pendingType = -1
	}
	s.setStmtStart(pos + 1)
}

func (s *scanner) enclosingImpl() string {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].implType != "" {
			return s.stack[i].implType
		}
	}
	return ""
}

// startsItem reports whether prefix is all that precedes an item keyword in
// its statement: attributes and modifiers only.
func startsItem(prefix string) bool {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || strings.HasSuffix(prefix, "]") {
		return true
	}
	switch stripVisibility(prefix) {
	case "", "unsafe", "default":
		return true
	}
	return false
}

// innermostFn returns the stack index of the innermost open fn body, or -1.
func (s *scanner) innermostFn() int {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].fn != nil {
			return i
		}
	}
	return -1
}

// implTarget extracts the self type name from an impl header such as
// `impl<T> Display for Wrapper<T> where T: Debug`.
func implTarget(header string) string {
	h := strings.Join(strings.Fields(header), " ")
	h = strings.TrimSpace(strings.TrimPrefix(h, "impl"))
	if strings.HasPrefix(h, "<") {
		h = strings.TrimSpace(h[angleEnd(h):])
	}
	if i := strings.Index(h, " where "); i >= 0 {
		h = h[:i]
	}
	if strings.HasSuffix(h, " where") {
		h = strings.TrimSuffix(h, " where")
	}
	if i := strings.LastIndex(h, " for "); i >= 0 {
		h = h[i+len(" for "):]
	}
	if i := strings.IndexByte(h, '<'); i >= 0 {
		h = h[:i]
	}
	return strings.TrimSpace(h)
}

// angleEnd returns the index after the `>` closing the `<` at s[0].
func angleEnd(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

var nonLiteralKeywords = map[string]bool{
	"struct": true, "enum": true, "union": true, "impl": true, "trait": true,
	"for": true, "mod": true, "fn": true, "where": true, "dyn": true,
	"match": true, "if": true, "while": true, "in": true, "else": true,
	"loop": true, "unsafe": true, "async": true, "move": true,
}

// recordLiteralPath returns the struct path when a `{` following before opens
// a record literal such as `Point {` or `geo::Point {`.
func recordLiteralPath(before string) string {
	trimmed := strings.TrimRight(before, whitespace)
	end := len(trimmed)
	start := pathStart(trimmed, end)
	if start == end {
		return ""
	}
	path := trimmed[start:end]
	segments := splitPath(path)
	if len(segments) == 0 {
		return ""
	}
	name := segments[len(segments)-1]
	if !isUpper(name[0]) {
		return ""
	}
	prev := strings.TrimRight(trimmed[:start], whitespace)
	if strings.HasSuffix(prev, "->") || nonLiteralKeywords[lastWord(prev)] {
		return ""
	}
	return strings.Join(segments, "::")
}

var letPattern = regexp.MustCompile(`(?s)^let\s+(?:mut\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*(?::\s*(.+?))?\s*(?:=\s*(.*))?$`)

// parseLet parses `let [mut] name[: Type] [= init]`. Destructuring patterns
// are not reported.
func parseLet(stmt string) (name, ty string, ok bool) {
	m := letPattern.FindStringSubmatch(strings.TrimSpace(stmt))
	if m == nil {
		return "", "", false
	}
	name, ty = m[1], strings.TrimSpace(m[2])
	if ty == "" {
		ty = inferType(m[3])
	}
	return name, ty, true
}

var numberPattern = regexp.MustCompile(`^-?[0-9][0-9_]*(\.[0-9][0-9_]*)?((?:i|u)(?:8|16|32|64|128|size)|f32|f64)?$`)

// inferType guesses the type of an initializer from its literal shape.
// Anything that needs real inference yields "".
func inferType(init string) string {
	init = strings.TrimSpace(init)
	switch {
	case init == "":
		return ""
	case init == "true" || init == "false":
		return "bool"
	case strings.HasPrefix(init, `"`):
		return "&str"
	case strings.HasPrefix(init, "'"):
		return "char"
	case strings.HasPrefix(init, "String::"):
		return "String"
	}
	if m := numberPattern.FindStringSubmatch(init); m != nil {
		switch {
		case m[2] != "":
			return m[2]
		case m[1] != "":
			return "f64"
		default:
			return "i32"
		}
	}

	end := identEnd(init, 0)
	for end+2 < len(init) && init[end:end+2] == "::" && isIdentStartByte(init[end+2]) {
		end = identEnd(init, end+2)
	}
	segments := splitPath(init[:end])
	rest := strings.TrimLeft(init[end:], whitespace)
	switch len(segments) {
	case 1:
		if isUpper(segments[0][0]) && (strings.HasPrefix(rest, "{") || strings.HasPrefix(rest, "(")) {
			return segments[0]
		}
	case 2:
		head, tail := segments[0], segments[1]
		if !isUpper(head[0]) {
			return ""
		}
		if isUpper(tail[0]) || tail == "new" || tail == "default" || tail == "from" || strings.HasPrefix(tail, "with_") {
			return head
		}
	}
	return ""
}
