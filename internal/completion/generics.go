package completion

// genericsTarget is an item that may need type arguments when named in a
// type position.
type genericsTarget interface {
	HasNonDefaultTypeParams() bool
}

// maybeAddGenerics rewrites a type-like item as `name<…>` with the cursor
// between the angle brackets. It reports whether the rewrite happened.
func (b *builder) maybeAddGenerics(ctx *Context, name string, target genericsTarget) bool {
	if !ctx.IsPathType || ctx.HasTypeArgs || !ctx.Config.AddCallParenthesis {
		return false
	}
	if ctx.Config.SnippetCap == nil {
		return false
	}
	if target == nil || !target.HasNonDefaultTypeParams() {
		return false
	}
	b.lookupBy(name).
		label(name + "<…>").
		insertSnippet(*ctx.Config.SnippetCap, escapeSnippetText(name)+"<$0>")
	return true
}
