package completion

import "github.com/juev/completion-lsp/internal/hir"

// Candidate is a resolved item offered at the cursor. The set of variants is
// closed: every variant dispatches through candidateVisitor, so a new variant
// does not compile until the renderer handles it.
type Candidate interface {
	accept(v candidateVisitor)
}

type candidateVisitor interface {
	visitField(c Field)
	visitTupleField(c TupleField)
	visitFunction(c Function)
	visitMacro(c Macro)
	visitConst(c Const)
	visitStatic(c Static)
	visitTypeAlias(c TypeAlias)
	visitAdt(c Adt)
	visitEnumVariant(c EnumVariant)
	visitLocal(c Local)
	visitModule(c Module)
	visitTrait(c Trait)
	visitBuiltinType(c BuiltinType)
	visitGenericParam(c GenericParam)
	visitSelfType(c SelfType)
	visitUnknown(c Unknown)
}

// LocalName fields override the declared name with the name the item is
// visible under at the cursor (e.g. after `use a::b as c`).

type Field struct {
	hir.Field
}

// TupleField is a positional field completed by index, e.g. `pair.0`.
type TupleField struct {
	Index int
	Type  hir.Type
}

type Function struct {
	hir.Function
	LocalName string
}

type Macro struct {
	hir.Macro
	LocalName string
}

type Const struct {
	hir.Const
	LocalName string
}

type Static struct {
	hir.Static
	LocalName string
}

type TypeAlias struct {
	hir.TypeAlias
	LocalName string
}

type Adt struct {
	hir.Adt
	LocalName string
}

// EnumVariant renders with its full path as label when Path is set.
type EnumVariant struct {
	hir.Variant
	LocalName string
	Path      hir.Path
}

type Local struct {
	hir.Local
}

type Module struct {
	hir.Module
	LocalName string
}

type Trait struct {
	hir.Trait
	LocalName string
}

type BuiltinType struct {
	hir.BuiltinType
}

type GenericParam struct {
	hir.GenericParam
}

// SelfType is `Self` inside an impl or ADT definition.
type SelfType struct {
	Name string
}

// Unknown is a name that resolved to nothing more specific.
type Unknown struct {
	Name string
}

func (c Field) accept(v candidateVisitor)        { v.visitField(c) }
func (c TupleField) accept(v candidateVisitor)   { v.visitTupleField(c) }
func (c Function) accept(v candidateVisitor)     { v.visitFunction(c) }
func (c Macro) accept(v candidateVisitor)        { v.visitMacro(c) }
func (c Const) accept(v candidateVisitor)        { v.visitConst(c) }
func (c Static) accept(v candidateVisitor)       { v.visitStatic(c) }
func (c TypeAlias) accept(v candidateVisitor)    { v.visitTypeAlias(c) }
func (c Adt) accept(v candidateVisitor)          { v.visitAdt(c) }
func (c EnumVariant) accept(v candidateVisitor)  { v.visitEnumVariant(c) }
func (c Local) accept(v candidateVisitor)        { v.visitLocal(c) }
func (c Module) accept(v candidateVisitor)       { v.visitModule(c) }
func (c Trait) accept(v candidateVisitor)        { v.visitTrait(c) }
func (c BuiltinType) accept(v candidateVisitor)  { v.visitBuiltinType(c) }
func (c GenericParam) accept(v candidateVisitor) { v.visitGenericParam(c) }
func (c SelfType) accept(v candidateVisitor)     { v.visitSelfType(c) }
func (c Unknown) accept(v candidateVisitor)      { v.visitUnknown(c) }

func nameOr(local, declared string) string {
	if local != "" {
		return local
	}
	return declared
}
