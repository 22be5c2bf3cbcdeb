package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/juev/completion-lsp/internal/hir"
)

func TestComputeScore(t *testing.T) {
	u32Field := &hir.Field{Name: "the_field", Type: hir.NewType("u32")}

	tests := []struct {
		name      string
		ctx       Context
		candidate hir.Type
		candName  string
		want      Score
	}{
		{
			name:      "no expectation",
			ctx:       Context{},
			candidate: hir.NewType("u32"),
			candName:  "the_field",
			want:      ScoreNone,
		},
		{
			name:      "call argument type differs",
			ctx:       Context{ActiveParameter: &ActiveParameter{Name: "my_param", Ty: "u32"}},
			candidate: hir.NewType("i64"),
			candName:  "another_field",
			want:      ScoreNone,
		},
		{
			name:      "call argument type matches",
			ctx:       Context{ActiveParameter: &ActiveParameter{Name: "my_param", Ty: "u32"}},
			candidate: hir.NewType("u32"),
			candName:  "the_field",
			want:      ScoreTypeMatch,
		},
		{
			name:      "call argument type and name match",
			ctx:       Context{ActiveParameter: &ActiveParameter{Name: "the_field", Ty: "u32"}},
			candidate: hir.NewType("u32"),
			candName:  "the_field",
			want:      ScoreTypeAndNameMatch,
		},
		{
			name:      "record field initializer",
			ctx:       Context{RecordField: &RecordFieldSite{Name: "the_field", Field: u32Field}},
			candidate: hir.NewType("u32"),
			candName:  "the_field",
			want:      ScoreTypeAndNameMatch,
		},
		{
			name: "record field wins over enclosing call",
			ctx: Context{
				RecordField:     &RecordFieldSite{Name: "the_field", Field: u32Field},
				ActiveParameter: &ActiveParameter{Name: "the_field", Ty: "i64"},
			},
			candidate: hir.NewType("i64"),
			candName:  "another_field",
			want:      ScoreNone,
		},
		{
			name: "unresolved record field does not fall back to call",
			ctx: Context{
				RecordField:     &RecordFieldSite{Name: "missing"},
				ActiveParameter: &ActiveParameter{Name: "x", Ty: "u32"},
			},
			candidate: hir.NewType("u32"),
			candName:  "x",
			want:      ScoreNone,
		},
		{
			name:      "textual comparison only",
			ctx:       Context{ActiveParameter: &ActiveParameter{Name: "world", Ty: "&WorldSnapshot"}},
			candidate: hir.NewType("&'a WorldSnapshot"),
			candName:  "world",
			want:      ScoreNone,
		},
		{
			name:      "unknown candidate type shows marker text",
			ctx:       Context{ActiveParameter: &ActiveParameter{Name: "s", Ty: "String"}},
			candidate: hir.UnknownType(),
			candName:  "s",
			want:      ScoreNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(&tt.ctx, tt.candidate, tt.candName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeScore_Deterministic(t *testing.T) {
	ctx := &Context{ActiveParameter: &ActiveParameter{Name: "x", Ty: "i32"}}
	first := ComputeScore(ctx, hir.NewType("i32"), "x")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeScore(ctx, hir.NewType("i32"), "x"))
	}
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "", ScoreNone.String())
	assert.Equal(t, "TypeMatch", ScoreTypeMatch.String())
	assert.Equal(t, "TypeAndNameMatch", ScoreTypeAndNameMatch.String())
}
