package hir

import "strings"

type Field struct {
	Name       string
	Type       Type
	Docs       string
	Attrs      Attrs
	Visibility string
}

type Param struct {
	// Name is the parameter pattern as written, e.g. "x" or "_unused".
	Name string
	Type Type
}

// SelfParam is a method receiver. Text is the receiver as written:
// "self", "&self", "&mut self" or "self: Box<Self>".
type SelfParam struct {
	Text string
}

type Function struct {
	Name       string
	Visibility string
	Qualifiers []string
	Generics   []GenericParam
	SelfParam  *SelfParam
	Params     []Param
	Ret        Type
	Docs       string
	Attrs      Attrs
}

func (f Function) HasSelfParam() bool {
	return f.SelfParam != nil
}

// ParamNames lists parameter names in declaration order, receiver first.
func (f Function) ParamNames() []string {
	names := make([]string, 0, len(f.Params)+1)
	if f.SelfParam != nil {
		names = append(names, "self")
	}
	for _, p := range f.Params {
		names = append(names, p.Name)
	}
	return names
}

// Param returns the idx-th non-receiver parameter.
func (f Function) Param(idx int) (Param, bool) {
	if idx < 0 || idx >= len(f.Params) {
		return Param{}, false
	}
	return f.Params[idx], true
}

// Signature renders the declaration head, e.g. "pub fn foo(&self, x: i32) -> u32".
func (f Function) Signature() string {
	var sb strings.Builder
	if f.Visibility != "" {
		sb.WriteString(f.Visibility)
		sb.WriteByte(' ')
	}
	for _, q := range f.Qualifiers {
		sb.WriteString(q)
		sb.WriteByte(' ')
	}
	sb.WriteString("fn ")
	sb.WriteString(f.Name)
	sb.WriteString(formatGenerics(f.Generics))
	sb.WriteByte('(')
	params := make([]string, 0, len(f.Params)+1)
	if f.SelfParam != nil {
		params = append(params, f.SelfParam.Text)
	}
	for _, p := range f.Params {
		if p.Type.Text == "" {
			params = append(params, p.Name)
			continue
		}
		params = append(params, p.Name+": "+p.Type.Text)
	}
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteByte(')')
	if f.Ret.Text != "" && f.Ret.Text != "()" {
		sb.WriteString(" -> ")
		sb.WriteString(f.Ret.Text)
	}
	return sb.String()
}

// Macro is a macro definition. Proc marks macros whose definition has no
// retrievable source (procedural or built-in).
type Macro struct {
	Name  string
	Docs  string
	Attrs Attrs
	Proc  bool
}

func (m Macro) HasSource() bool {
	return !m.Proc
}

func (m Macro) Label() string {
	label := "macro_rules! " + m.Name
	if m.Attrs.HasKey("macro_export") {
		return "#[macro_export]\n" + label
	}
	return label
}

type Const struct {
	Name       string
	Visibility string
	Type       Type
	Value      string
	Docs       string
	Attrs      Attrs
}

// Label renders the declaration without attributes or docs.
func (c Const) Label() string {
	var sb strings.Builder
	if c.Visibility != "" {
		sb.WriteString(c.Visibility)
		sb.WriteByte(' ')
	}
	sb.WriteString("const ")
	sb.WriteString(c.Name)
	if c.Type.Text != "" {
		sb.WriteString(": ")
		sb.WriteString(c.Type.Text)
	}
	if c.Value != "" {
		sb.WriteString(" = ")
		sb.WriteString(c.Value)
	}
	return sb.String()
}

type Static struct {
	Name       string
	Visibility string
	Mutable    bool
	Type       Type
	Docs       string
	Attrs      Attrs
}

type TypeAlias struct {
	Name       string
	Visibility string
	Generics   []GenericParam
	Target     Type
	Docs       string
	Attrs      Attrs
}

func (t TypeAlias) HasNonDefaultTypeParams() bool {
	return hasNonDefaultTypeParams(t.Generics)
}

func (t TypeAlias) Label() string {
	var sb strings.Builder
	if t.Visibility != "" {
		sb.WriteString(t.Visibility)
		sb.WriteByte(' ')
	}
	sb.WriteString("type ")
	sb.WriteString(t.Name)
	sb.WriteString(formatGenerics(t.Generics))
	if t.Target.Text != "" {
		sb.WriteString(" = ")
		sb.WriteString(t.Target.Text)
	}
	return sb.String()
}

type AdtKind int

const (
	AdtStruct AdtKind = iota
	AdtEnum
	AdtUnion
)

// Adt is a struct, enum or union definition.
type Adt struct {
	Kind       AdtKind
	Name       string
	Generics   []GenericParam
	StructKind StructKind
	Fields     []Field
	Variants   []Variant
	Methods    []Function
	Docs       string
	Attrs      Attrs
}

func (a Adt) HasNonDefaultTypeParams() bool {
	return hasNonDefaultTypeParams(a.Generics)
}

func (a Adt) Variant(name string) (Variant, bool) {
	for _, v := range a.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

func (a Adt) Field(name string) (Field, bool) {
	for _, f := range a.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

type Variant struct {
	Name   string
	Parent string
	Kind   StructKind
	Fields []Field
	Docs   string
	Attrs  Attrs
}

type Trait struct {
	Name  string
	Docs  string
	Attrs Attrs
}

type Module struct {
	Name string
	Docs string
}

type BuiltinType struct {
	Name string
}

// Local is a binding visible at the cursor.
type Local struct {
	Name string
	Type Type
}

var builtinTypeNames = []string{
	"bool", "char", "str",
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"f32", "f64",
}

func BuiltinTypes() []BuiltinType {
	types := make([]BuiltinType, len(builtinTypeNames))
	for i, name := range builtinTypeNames {
		types[i] = BuiltinType{Name: name}
	}
	return types
}
