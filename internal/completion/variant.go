package completion

import (
	"strings"

	"github.com/juev/completion-lsp/internal/hir"
)

// FormatVariantDetail renders a variant's field list: "(i32, i32)" for tuple
// and unit variants, "{ x: i32, y: i32 }" for record variants.
func FormatVariantDetail(kind hir.StructKind, fields []hir.Field) string {
	parts := make([]string, len(fields))
	switch kind {
	case hir.StructRecord:
		for i, f := range fields {
			parts[i] = f.Name + ": " + f.Type.Display()
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		for i, f := range fields {
			parts[i] = f.Type.Display()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
}
