package completion

import "github.com/juev/completion-lsp/internal/hir"

// activeExpectation returns the name and type text the cursor site asks
// for. A field initializer takes precedence over the enclosing call
// argument, and an initializer that failed to resolve yields nothing.
func activeExpectation(ctx *Context) (name, ty string, ok bool) {
	if ctx.RecordField != nil {
		field := ctx.RecordField.Field
		if field == nil {
			return "", "", false
		}
		return field.Name, field.Type.Display(), true
	}
	if ctx.ActiveParameter != nil {
		return ctx.ActiveParameter.Name, ctx.ActiveParameter.Ty, true
	}
	return "", "", false
}

// ComputeScore ranks a candidate of type ty named name against the active
// expectation. Types are compared by display text, not structurally.
func ComputeScore(ctx *Context, ty hir.Type, name string) Score {
	activeName, activeType, ok := activeExpectation(ctx)
	if !ok {
		return ScoreNone
	}
	if activeType != ty.Display() {
		return ScoreNone
	}
	if activeName == name {
		return ScoreTypeAndNameMatch
	}
	return ScoreTypeMatch
}
