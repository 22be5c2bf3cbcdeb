package cursor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marker = "$0"

// at strips the cursor marker from src and returns the text and offset.
func at(t *testing.T, src string) (string, int) {
	t.Helper()
	offset := strings.Index(src, marker)
	require.GreaterOrEqual(t, offset, 0, "missing cursor marker")
	return src[:offset] + src[offset+len(marker):], offset
}

func analyze(t *testing.T, src string) Site {
	t.Helper()
	text, offset := at(t, src)
	return Analyze(text, offset)
}

func TestAnalyze_IdentifierRange(t *testing.T) {
	text, offset := at(t, "fn main() { let x = fo$0o; }")
	site := Analyze(text, offset)

	assert.Equal(t, "fo", site.Prefix)
	assert.Equal(t, "foo", text[site.Start:site.End])
	assert.Equal(t, ModeScope, site.Mode)
	assert.False(t, site.InLiteral)
}

func TestAnalyze_EmptyPrefix(t *testing.T) {
	site := analyze(t, "fn main() { $0 }")
	assert.Equal(t, "", site.Prefix)
	assert.Equal(t, site.Start, site.End)
	assert.Equal(t, site.Offset, site.Start)
}

func TestAnalyze_OffsetIsClamped(t *testing.T) {
	site := Analyze("abc", 100)
	assert.Equal(t, 3, site.Offset)
	assert.Equal(t, "abc", site.Prefix)

	site = Analyze("abc", -4)
	assert.Equal(t, 0, site.Offset)

	site = Analyze("é", 1)
	assert.Equal(t, 0, site.Offset)
}

func TestAnalyze_Modes(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		mode      Mode
		receiver  string
		qualifier []string
	}{
		{"scope", "fn main() { ab$0 }", ModeScope, "", nil},
		{"dot", "fn main() { s.ab$0 }", ModeDot, "s", nil},
		{"dot on field chain", "fn f() { self.inner.$0 }", ModeDot, "self.inner", nil},
		{"dot on method result", "fn f() { self.items().fi$0 }", ModeDot, "self.items()", nil},
		{"dot across newline", "fn f() { builder\n    .na$0 }", ModeDot, "builder", nil},
		{"range is not a dot", "fn f() { 0..$0 }", ModeScope, "", nil},
		{"path", "fn main() { Option::So$0 }", ModePath, "", []string{"Option"}},
		{"nested path", "fn main() { std::option::$0 }", ModePath, "", []string{"std", "option"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := analyze(t, tt.src)
			assert.Equal(t, tt.mode, site.Mode)
			assert.Equal(t, tt.receiver, site.Receiver)
			assert.Equal(t, tt.qualifier, site.Qualifier)
		})
	}
}

func TestAnalyze_FollowingSyntax(t *testing.T) {
	site := analyze(t, "fn main() { no_$0args(); }")
	assert.True(t, site.IsCall)
	assert.False(t, site.IsMacroCall)

	site = analyze(t, "fn main() { prin$0tln!(\"hi\"); }")
	assert.True(t, site.IsMacroCall)
	assert.False(t, site.IsCall)

	site = analyze(t, "fn main() { a$0 != b }")
	assert.False(t, site.IsMacroCall)

	site = analyze(t, "fn f(x: Ve$0<i128>) {}")
	assert.True(t, site.HasTypeArgs)

	site = analyze(t, "fn main() { Vec$0::<u8>::new() }")
	assert.True(t, site.HasTypeArgs)

	site = analyze(t, "fn main() { foo$0 }")
	assert.False(t, site.IsCall)
	assert.False(t, site.HasTypeArgs)
}

func TestAnalyze_UseItem(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"bare", "use $0", true},
		{"path", "use std::collections::Hash$0", true},
		{"public", "pub(crate) use crate::ma$0", true},
		{"group", "use std::{fmt, coll$0}", true},
		{"nested group", "use std::{io::{Read, Wr$0}}", true},
		{"after previous statement", "use a::b;\nfn main() { fo$0 }", false},
		{"expression", "fn main() { used$0 }", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, tt.src).UseItem)
		})
	}
}

func TestAnalyze_TypePosition(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"let annotation", "fn main() { let v: Ve$0 }", true},
		{"let mut annotation", "fn main() { let mut v: Ve$0 }", true},
		{"fn parameter", "fn f(x: Ve$0) {}", true},
		{"reference parameter", "fn f<'a>(x: &'a mut St$0) {}", true},
		{"return type", "fn f() -> Opt$0", true},
		{"generic argument", "fn f(x: Vec<St$0", true},
		{"struct field", "struct S { f: Ve$0 }", true},
		{"tuple struct field", "struct P(u8, Ve$0);", true},
		{"enum tuple variant", "enum E { A(Ve$0) }", true},
		{"const", "pub const MAX: us$0", true},
		{"impl target", "impl Dis$0", true},
		{"dyn", "fn f(x: Box<dyn Fo$0>) {}", true},
		{"qualified type", "fn main() { let v: std::vec::Ve$0 }", true},
		{"let initializer", "fn main() { let v = Ve$0 }", false},
		{"parameter name", "fn f(Ve$0) {}", false},
		{"record literal value", "fn main() { S { f: Ve$0 } }", false},
		{"struct field name", "struct S { f$0 }", false},
		{"path expression", "fn main() { Vec::ne$0 }", false},
		{"dot", "fn main() { let v: u8 = x.Ve$0 }", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, tt.src).IsPathType)
		})
	}
}

func TestAnalyze_Call(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Call
	}{
		{
			name: "first argument",
			src:  "fn main() { foo($0) }",
			want: &Call{Callee: "foo", ArgIndex: 0},
		},
		{
			name: "second argument",
			src:  "fn main() { foo(a, b$0) }",
			want: &Call{Callee: "foo", ArgIndex: 1},
		},
		{
			name: "nested call args do not count",
			src:  "fn main() { foo(bar(1, 2), $0) }",
			want: &Call{Callee: "foo", ArgIndex: 1},
		},
		{
			name: "method call",
			src:  "fn main() { x.bar(1, $0) }",
			want: &Call{Callee: "bar", Receiver: "x", ArgIndex: 1},
		},
		{
			name: "associated function",
			src:  "fn main() { Foo::new($0) }",
			want: &Call{Callee: "new", Qualifier: []string{"Foo"}},
		},
		{
			name: "macro",
			src:  "fn main() { vec!(1, $0) }",
			want: &Call{Callee: "vec", ArgIndex: 1, Macro: true},
		},
		{
			name: "keyword parens",
			src:  "fn main() { if (a$0) {} }",
		},
		{
			name: "tuple expression",
			src:  "fn main() { let t = (1, $0) }",
		},
		{
			name: "fn declaration parameters",
			src:  "fn foo(a$0) {}",
		},
		{
			name: "closed call",
			src:  "fn main() { foo(1); $0 }",
		},
		{
			name: "block inside call",
			src:  "fn main() { foo(|| { $0 }) }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, tt.src).Call)
		})
	}
}

func TestAnalyze_RecordField(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *RecordField
	}{
		{
			name: "first field",
			src:  "fn main() { let s = S { the_field: th$0 }; }",
			want: &RecordField{Struct: "S", Field: "the_field"},
		},
		{
			name: "later field",
			src:  "fn main() { S { a: 1, b: $0 } }",
			want: &RecordField{Struct: "S", Field: "b"},
		},
		{
			name: "qualified struct",
			src:  "fn main() { geo::Point { x: $0 } }",
			want: &RecordField{Struct: "geo::Point", Field: "x"},
		},
		{
			name: "dot expression value",
			src:  "fn main() { S { the_field: self.fo$0 } }",
			want: &RecordField{Struct: "S", Field: "the_field"},
		},
		{
			name: "Self resolves to impl type",
			src:  "impl Foo { fn new() -> Self { Self { a: $0 } } }",
			want: &RecordField{Struct: "Foo", Field: "a"},
		},
		{
			name: "field name position",
			src:  "fn main() { S { $0 } }",
		},
		{
			name: "fn body is not a literal",
			src:  "fn main() -> Foo { x: $0 }",
		},
		{
			name: "impl block is not a literal",
			src:  "impl Foo { $0 }",
		},
		{
			name: "lowercase block",
			src:  "fn main() { if cond { x: $0 } }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, tt.src).RecordField)
		})
	}
}

func TestAnalyze_LetType(t *testing.T) {
	assert.Equal(t, "u32", analyze(t, "fn main() { let x: u32 = $0 }").LetType)
	assert.Equal(t, "Vec<u8>", analyze(t, "fn main() { let mut x: Vec<u8> = ve$0 }").LetType)
	assert.Equal(t, "", analyze(t, "fn main() { let x = $0 }").LetType)
	assert.Equal(t, "", analyze(t, "fn main() { let x: u32 = foo($0) }").LetType)
}

func TestAnalyze_InsideLiteral(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"line comment", "fn main() { // foo$0\n }", true},
		{"doc comment", "/// Uses fo$0\nfn main() {}", true},
		{"block comment", "fn main() { /* fo$0 */ }", true},
		{"string", "fn main() { let s = \"ab$0\"; }", true},
		{"unterminated string", "fn main() { let s = \"ab$0", true},
		{"raw string", "fn main() { let s = r#\"ab$0\"#; }", true},
		{"after comment", "fn main() { // note\n fo$0 }", false},
		{"after string", "fn main() { let s = \"a\"; fo$0 }", false},
		{"after char", "fn main() { let c = '{'; fo$0 }", false},
		{"lifetime", "fn f<'a>(x: &'a St$0) {}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, tt.src).InLiteral)
		})
	}
}

func TestAnalyze_CharLiteralDoesNotOpenBlock(t *testing.T) {
	site := analyze(t, "fn main() { foo('{', $0) }")
	require.NotNil(t, site.Call)
	assert.Equal(t, "foo", site.Call.Callee)
	assert.Equal(t, 1, site.Call.ArgIndex)
}

func TestImplTarget(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"impl Foo ", "Foo"},
		{"impl<T> Foo<T> ", "Foo"},
		{"impl Display for Wrapper ", "Wrapper"},
		{"impl<T: Clone> Display for Wrapper<T> where T: Debug ", "Wrapper"},
		{"impl\nFoo\nwhere\n", "Foo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, implTarget(tt.header), tt.header)
	}
}

func TestRecordLiteralPath(t *testing.T) {
	assert.Equal(t, "S", recordLiteralPath("let s = S "))
	assert.Equal(t, "a::B", recordLiteralPath("x = a::B"))
	assert.Equal(t, "", recordLiteralPath("struct S "))
	assert.Equal(t, "", recordLiteralPath("impl Trait for S"))
	assert.Equal(t, "", recordLiteralPath("fn f() -> S "))
	assert.Equal(t, "", recordLiteralPath("if x "))
	assert.Equal(t, "", recordLiteralPath("fn main() "))
}
