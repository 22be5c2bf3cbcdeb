package completion

import (
	"fmt"

	"github.com/juev/completion-lsp/internal/hir"
)

// TextRange is a half-open byte range in the document being completed.
type TextRange struct {
	Start int
	End   int
}

func (r TextRange) Len() int {
	return r.End - r.Start
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// ActiveParameter is the call argument the cursor is filling.
type ActiveParameter struct {
	Name string
	// Ty is the parameter type as display text.
	Ty string
}

// RecordFieldSite is a field initializer being completed, e.g.
// `B { the_field: a.| }`. Field is nil when the initializer could not be
// resolved to a declared field.
type RecordFieldSite struct {
	Name  string
	Field *hir.Field
}

// Context is the snapshot of one cursor site. It is built once per request
// and never modified while candidates are rendered.
type Context struct {
	SourceRange TextRange

	IsPathType  bool
	HasTypeArgs bool

	IsCall      bool
	IsMacroCall bool
	// UseItemSyntax is set when the reference sits inside a use item.
	UseItemSyntax bool

	ActiveParameter *ActiveParameter
	RecordField     *RecordFieldSite
	ExpectedType    *hir.Type

	Config Config
}
