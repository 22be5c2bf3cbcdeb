package completion

import (
	"strconv"

	"github.com/juev/completion-lsp/internal/hir"
)

func (c *Completions) AddField(ctx *Context, field hir.Field) {
	b := newBuilder(ctx.SourceRange, field.Name).
		kind(KindField).
		detail(field.Type.Display()).
		documentation(field.Docs).
		deprecated(field.Attrs.IsDeprecated()).
		score(ComputeScore(ctx, field.Type, field.Name))
	c.add(b)
}

func (c *Completions) AddTupleField(ctx *Context, index int, ty hir.Type) {
	b := newBuilder(ctx.SourceRange, strconv.Itoa(index)).
		kind(KindField).
		detail(ty.Display())
	c.add(b)
}

func (c *Completions) AddFunction(ctx *Context, fn hir.Function, localName string) {
	name := nameOr(localName, fn.Name)
	if name == "" {
		c.skip("function without name", "")
		return
	}
	kind := KindFunction
	if fn.HasSelfParam() {
		kind = KindMethod
	}
	b := newBuilder(ctx.SourceRange, name).
		kind(kind).
		documentation(fn.Docs).
		deprecated(fn.Attrs.IsDeprecated()).
		detail(fn.Signature())
	b.addCallParens(ctx, name, functionParams(fn.ParamNames(), fn.HasSelfParam()))
	c.add(b)
}

func (c *Completions) AddMacro(ctx *Context, localName string, mac hir.Macro) {
	if !mac.HasSource() {
		c.skip("macro without source", mac.Name)
		return
	}
	name := nameOr(localName, mac.Name)
	if name == "" {
		c.skip("macro without name", "")
		return
	}

	b := newBuilder(ctx.SourceRange, name+"!").
		kind(KindMacro).
		documentation(mac.Docs).
		deprecated(mac.Attrs.IsDeprecated()).
		detail(mac.Label())

	needsBang := !ctx.UseItemSyntax && !ctx.IsMacroCall
	switch {
	case needsBang && ctx.Config.SnippetCap != nil:
		openBrace, closeBrace := GuessMacroBraces(name, mac.Docs)
		b.insertSnippet(*ctx.Config.SnippetCap, escapeSnippetText(name)+"!"+openBrace+"$0"+closeBrace).
			label(name + "!" + openBrace + "…" + closeBrace)
	case needsBang:
		b.insertText(name + "!")
	default:
		b.insertText(name)
	}
	c.add(b)
}

func (c *Completions) AddConst(ctx *Context, constant hir.Const, localName string) {
	name := nameOr(localName, constant.Name)
	if name == "" {
		c.skip("const without name", "")
		return
	}
	b := newBuilder(ctx.SourceRange, name).
		kind(KindConst).
		documentation(constant.Docs).
		deprecated(constant.Attrs.IsDeprecated()).
		detail(constant.Label())
	c.add(b)
}

func (c *Completions) AddTypeAlias(ctx *Context, alias hir.TypeAlias, localName string) {
	name := nameOr(localName, alias.Name)
	if name == "" {
		c.skip("type alias without name", "")
		return
	}
	b := newBuilder(ctx.SourceRange, name).
		kind(KindTypeAlias).
		documentation(alias.Docs).
		deprecated(alias.Attrs.IsDeprecated()).
		detail(alias.Label())
	b.maybeAddGenerics(ctx, name, alias)
	c.add(b)
}

func (c *Completions) AddEnumVariant(ctx *Context, variant hir.Variant, localName string) {
	c.addEnumVariant(ctx, variant, nameOr(localName, variant.Name), hir.Path{})
}

// AddQualifiedEnumVariant renders the variant under its full path while
// still filtering on the short name.
func (c *Completions) AddQualifiedEnumVariant(ctx *Context, variant hir.Variant, path hir.Path) {
	c.addEnumVariant(ctx, variant, variant.Name, path)
}

func (c *Completions) addEnumVariant(ctx *Context, variant hir.Variant, name string, path hir.Path) {
	qualifiedName := name
	if !path.IsEmpty() {
		qualifiedName = path.String()
	}
	if qualifiedName == "" {
		c.skip("variant without name", "")
		return
	}

	b := newBuilder(ctx.SourceRange, qualifiedName).
		kind(KindEnumVariant).
		documentation(variant.Docs).
		deprecated(variant.Attrs.IsDeprecated()).
		detail(FormatVariantDetail(variant.Kind, variant.Fields))
	if !path.IsEmpty() {
		b.lookupBy(name)
	}
	if variant.Kind == hir.StructTuple {
		b.addCallParens(ctx, qualifiedName, AnonymousParams(len(variant.Fields)))
	}
	c.add(b)
}

func (c *Completions) AddLocal(ctx *Context, local hir.Local) {
	b := newBuilder(ctx.SourceRange, local.Name).
		kind(KindBinding).
		score(ComputeScore(ctx, local.Type, local.Name))
	if !local.Type.IsUnknown() {
		b.detail(local.Type.Display())
	}
	c.add(b)
}

func (c *Completions) AddAdt(ctx *Context, adt hir.Adt, localName string) {
	name := nameOr(localName, adt.Name)
	kind := KindStruct
	if adt.Kind == hir.AdtEnum {
		kind = KindEnum
	}
	b := newBuilder(ctx.SourceRange, name).
		kind(kind).
		documentation(adt.Docs)
	b.maybeAddGenerics(ctx, name, adt)
	c.add(b)
}

func (c *Completions) AddStatic(ctx *Context, static hir.Static, localName string) {
	b := newBuilder(ctx.SourceRange, nameOr(localName, static.Name)).
		kind(KindStatic).
		documentation(static.Docs)
	c.add(b)
}

func (c *Completions) AddTrait(ctx *Context, trait hir.Trait, localName string) {
	b := newBuilder(ctx.SourceRange, nameOr(localName, trait.Name)).
		kind(KindTrait).
		documentation(trait.Docs)
	c.add(b)
}

func (c *Completions) AddModule(ctx *Context, module hir.Module, localName string) {
	b := newBuilder(ctx.SourceRange, nameOr(localName, module.Name)).
		kind(KindModule).
		documentation(module.Docs)
	c.add(b)
}

func (c *Completions) AddBuiltinType(ctx *Context, builtin hir.BuiltinType) {
	c.add(newBuilder(ctx.SourceRange, builtin.Name).kind(KindBuiltinType))
}

func (c *Completions) AddGenericParam(ctx *Context, param hir.GenericParam) {
	c.add(newBuilder(ctx.SourceRange, param.Name).kind(KindTypeParam))
}

func (c *Completions) AddSelfType(ctx *Context, name string) {
	c.add(newBuilder(ctx.SourceRange, nameOr(name, "Self")).kind(KindTypeParam))
}

func (c *Completions) AddUnknown(ctx *Context, name string) {
	c.add(newBuilder(ctx.SourceRange, name))
}

type candidateRenderer struct {
	acc *Completions
	ctx *Context
}

func (r *candidateRenderer) visitField(c Field) { r.acc.AddField(r.ctx, c.Field) }
func (r *candidateRenderer) visitTupleField(c TupleField) {
	r.acc.AddTupleField(r.ctx, c.Index, c.Type)
}
func (r *candidateRenderer) visitFunction(c Function) {
	r.acc.AddFunction(r.ctx, c.Function, c.LocalName)
}
func (r *candidateRenderer) visitMacro(c Macro) { r.acc.AddMacro(r.ctx, c.LocalName, c.Macro) }
func (r *candidateRenderer) visitConst(c Const) { r.acc.AddConst(r.ctx, c.Const, c.LocalName) }
func (r *candidateRenderer) visitStatic(c Static) {
	r.acc.AddStatic(r.ctx, c.Static, c.LocalName)
}
func (r *candidateRenderer) visitTypeAlias(c TypeAlias) {
	r.acc.AddTypeAlias(r.ctx, c.TypeAlias, c.LocalName)
}
func (r *candidateRenderer) visitAdt(c Adt) { r.acc.AddAdt(r.ctx, c.Adt, c.LocalName) }
func (r *candidateRenderer) visitEnumVariant(c EnumVariant) {
	if !c.Path.IsEmpty() {
		r.acc.AddQualifiedEnumVariant(r.ctx, c.Variant, c.Path)
		return
	}
	r.acc.AddEnumVariant(r.ctx, c.Variant, c.LocalName)
}
func (r *candidateRenderer) visitLocal(c Local)   { r.acc.AddLocal(r.ctx, c.Local) }
func (r *candidateRenderer) visitModule(c Module) { r.acc.AddModule(r.ctx, c.Module, c.LocalName) }
func (r *candidateRenderer) visitTrait(c Trait)   { r.acc.AddTrait(r.ctx, c.Trait, c.LocalName) }
func (r *candidateRenderer) visitBuiltinType(c BuiltinType) {
	r.acc.AddBuiltinType(r.ctx, c.BuiltinType)
}
func (r *candidateRenderer) visitGenericParam(c GenericParam) {
	r.acc.AddGenericParam(r.ctx, c.GenericParam)
}
func (r *candidateRenderer) visitSelfType(c SelfType) { r.acc.AddSelfType(r.ctx, c.Name) }
func (r *candidateRenderer) visitUnknown(c Unknown)   { r.acc.AddUnknown(r.ctx, c.Name) }
