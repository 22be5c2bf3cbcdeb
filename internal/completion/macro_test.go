package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessMacroBraces(t *testing.T) {
	tests := []struct {
		name      string
		macroName string
		docs      string
		wantOpen  string
		wantClose string
	}{
		{"no docs defaults to curly", "m", "", " {", "}"},
		{"single curly use", "m", "Use it as `m! {}`.", " {", "}"},
		{"tie prefers round over square", "m", "m!() or m![]", "(", ")"},
		{"tie prefers square over curly", "m", "m!{} or m![]", "[", "]"},
		{"square majority", "vec", "vec![1, 2]\nvec![]\nvec!(3)", "[", "]"},
		{"whitespace before brace", "m", "m!   \n (x)", "(", ")"},
		{"longer identifier ignored", "m", "am!(1) am![2] m!{}", " {", "}"},
		{"underscore prefix ignored", "m", "_m!(1)", " {", "}"},
		{"missing bang ignored", "m", "m(1) m [2]", " {", "}"},
		{"other character casts no vote", "m", "m!x m!x m![]", "[", "]"},
		{"name at end of docs", "m", "call m!", " {", "}"},
		{"non ascii neighbour is a boundary", "m", "ém!(1)", "(", ")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			openBrace, closeBrace := GuessMacroBraces(tt.macroName, tt.docs)
			assert.Equal(t, tt.wantOpen, openBrace)
			assert.Equal(t, tt.wantClose, closeBrace)
		})
	}
}

func TestGuessMacroBraces_EmptyName(t *testing.T) {
	openBrace, closeBrace := GuessMacroBraces("", "!(!(!(")
	assert.Equal(t, " {", openBrace)
	assert.Equal(t, "}", closeBrace)
}
