package completion

import "strings"

// Params describes the argument list of a callable candidate: parameter
// display names for functions, a bare count for tuple variants.
type Params struct {
	names []string
	count int
	named bool
}

func NamedParams(names ...string) Params {
	return Params{names: names, count: len(names), named: true}
}

func AnonymousParams(count int) Params {
	return Params{count: count}
}

func (p Params) Len() int {
	return p.count
}

func (p Params) IsEmpty() bool {
	return p.count == 0
}

func (p Params) IsNamed() bool {
	return p.named
}

// callParensSuppressed reports whether name should be inserted bare.
func callParensSuppressed(ctx *Context) bool {
	if !ctx.Config.AddCallParenthesis {
		return true
	}
	if ctx.UseItemSyntax || ctx.IsCall {
		return true
	}
	if ctx.ExpectedType != nil && ctx.ExpectedType.IsFn() {
		return true
	}
	return ctx.Config.SnippetCap == nil
}

// addCallParens turns the item into a call of name unless the site makes
// call syntax wrong or unhelpful.
func (b *builder) addCallParens(ctx *Context, name string, params Params) *builder {
	if callParensSuppressed(ctx) {
		return b
	}
	snippetCap := *ctx.Config.SnippetCap

	escaped := escapeSnippetText(name)
	var snippet, label string
	if params.IsEmpty() {
		snippet = escaped + "()$0"
		label = name + "()"
	} else {
		b.triggerCallInfo()
		if ctx.Config.AddCallArgumentSnippets && params.IsNamed() {
			holders := make([]string, len(params.names))
			for i, paramName := range params.names {
				holders[i] = placeholder(i+1, paramName)
			}
			snippet = escaped + "(" + strings.Join(holders, ", ") + ")$0"
		} else {
			snippet = escaped + "($0)"
		}
		label = name + "(…)"
	}

	if b.item.Lookup == "" {
		b.lookupBy(name)
	}
	return b.label(label).insertSnippet(snippetCap, snippet)
}

// functionParams strips the receiver and leading underscores; the stripped
// names are used for placeholder text only.
func functionParams(names []string, hasSelf bool) Params {
	if hasSelf && len(names) > 0 {
		names = names[1:]
	}
	stripped := make([]string, len(names))
	for i, name := range names {
		stripped[i] = strings.TrimLeft(name, "_")
	}
	return NamedParams(stripped...)
}
