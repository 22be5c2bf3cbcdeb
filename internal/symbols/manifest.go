package symbols

import (
	"fmt"
	"strconv"

	"github.com/juev/completion-lsp/internal/hir"
)

// Manifest is the YAML description of the items one crate exposes.
type Manifest struct {
	Crate string `yaml:"crate"`
	Items `yaml:",inline"`
}

type Items struct {
	Modules     []ModuleDecl    `yaml:"modules"`
	Functions   []FunctionDecl  `yaml:"functions"`
	Structs     []AdtDecl       `yaml:"structs"`
	Enums       []AdtDecl       `yaml:"enums"`
	Unions      []AdtDecl       `yaml:"unions"`
	Macros      []MacroDecl     `yaml:"macros"`
	Consts      []ConstDecl     `yaml:"consts"`
	Statics     []StaticDecl    `yaml:"statics"`
	TypeAliases []TypeAliasDecl `yaml:"type_aliases"`
	Traits      []TraitDecl     `yaml:"traits"`
}

type ModuleDecl struct {
	Name  string `yaml:"name"`
	Docs  string `yaml:"docs"`
	Items `yaml:",inline"`
}

type GenericDecl struct {
	Name    string `yaml:"name"`
	Default string `yaml:"default"`
}

type FieldDecl struct {
	Name       string   `yaml:"name"`
	Type       string   `yaml:"type"`
	Visibility string   `yaml:"visibility"`
	Docs       string   `yaml:"docs"`
	Attrs      []string `yaml:"attrs"`
}

type ParamDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type FunctionDecl struct {
	Name       string        `yaml:"name"`
	Visibility string        `yaml:"visibility"`
	Qualifiers []string      `yaml:"qualifiers"`
	Generics   []GenericDecl `yaml:"generics"`
	// Self is the receiver as written ("&self", "&mut self"); empty for
	// free and associated functions.
	Self    string      `yaml:"self"`
	Params  []ParamDecl `yaml:"params"`
	Returns string      `yaml:"returns"`
	Docs    string      `yaml:"docs"`
	Attrs   []string    `yaml:"attrs"`
}

type VariantDecl struct {
	Name   string      `yaml:"name"`
	Kind   string      `yaml:"kind"`
	Fields []FieldDecl `yaml:"fields"`
	Docs   string      `yaml:"docs"`
	Attrs  []string    `yaml:"attrs"`
}

// AdtDecl describes a struct, enum or union. Kind applies to structs.
type AdtDecl struct {
	Name     string         `yaml:"name"`
	Kind     string         `yaml:"kind"`
	Generics []GenericDecl  `yaml:"generics"`
	Fields   []FieldDecl    `yaml:"fields"`
	Variants []VariantDecl  `yaml:"variants"`
	Methods  []FunctionDecl `yaml:"methods"`
	Docs     string         `yaml:"docs"`
	Attrs    []string       `yaml:"attrs"`
}

type MacroDecl struct {
	Name     string   `yaml:"name"`
	Docs     string   `yaml:"docs"`
	Attrs    []string `yaml:"attrs"`
	Exported bool     `yaml:"exported"`
	Proc     bool     `yaml:"proc"`
}

type ConstDecl struct {
	Name       string   `yaml:"name"`
	Visibility string   `yaml:"visibility"`
	Type       string   `yaml:"type"`
	Value      string   `yaml:"value"`
	Docs       string   `yaml:"docs"`
	Attrs      []string `yaml:"attrs"`
}

type StaticDecl struct {
	Name       string   `yaml:"name"`
	Visibility string   `yaml:"visibility"`
	Mutable    bool     `yaml:"mutable"`
	Type       string   `yaml:"type"`
	Docs       string   `yaml:"docs"`
	Attrs      []string `yaml:"attrs"`
}

type TypeAliasDecl struct {
	Name       string        `yaml:"name"`
	Visibility string        `yaml:"visibility"`
	Generics   []GenericDecl `yaml:"generics"`
	Target     string        `yaml:"target"`
	Docs       string        `yaml:"docs"`
	Attrs      []string      `yaml:"attrs"`
}

type TraitDecl struct {
	Name  string   `yaml:"name"`
	Docs  string   `yaml:"docs"`
	Attrs []string `yaml:"attrs"`
}

// Scope returns the crate root scope described by the manifest.
func (m *Manifest) Scope() (*Scope, error) {
	return m.Items.scope(m.Crate, "")
}

func (it *Items) scope(name, docs string) (*Scope, error) {
	s := &Scope{Name: name, Docs: docs}

	for _, decl := range it.Modules {
		child, err := decl.Items.scope(decl.Name, decl.Docs)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", decl.Name, err)
		}
		s.Modules = append(s.Modules, child)
	}
	for _, decl := range it.Functions {
		s.Functions = append(s.Functions, decl.function())
	}
	for _, group := range []struct {
		kind  hir.AdtKind
		decls []AdtDecl
	}{
		{hir.AdtStruct, it.Structs},
		{hir.AdtEnum, it.Enums},
		{hir.AdtUnion, it.Unions},
	} {
		for _, decl := range group.decls {
			adt, err := decl.adt(group.kind)
			if err != nil {
				return nil, err
			}
			s.Adts = append(s.Adts, adt)
		}
	}
	for _, decl := range it.Macros {
		attrs := hir.Attrs(decl.Attrs)
		if decl.Exported && !attrs.HasKey("macro_export") {
			attrs = append(hir.Attrs{"macro_export"}, attrs...)
		}
		s.Macros = append(s.Macros, hir.Macro{Name: decl.Name, Docs: decl.Docs, Attrs: attrs, Proc: decl.Proc})
	}
	for _, decl := range it.Consts {
		s.Consts = append(s.Consts, hir.Const{
			Name:       decl.Name,
			Visibility: decl.Visibility,
			Type:       hir.NewType(decl.Type),
			Value:      decl.Value,
			Docs:       decl.Docs,
			Attrs:      decl.Attrs,
		})
	}
	for _, decl := range it.Statics {
		s.Statics = append(s.Statics, hir.Static{
			Name:       decl.Name,
			Visibility: decl.Visibility,
			Mutable:    decl.Mutable,
			Type:       hir.NewType(decl.Type),
			Docs:       decl.Docs,
			Attrs:      decl.Attrs,
		})
	}
	for _, decl := range it.TypeAliases {
		s.Aliases = append(s.Aliases, hir.TypeAlias{
			Name:       decl.Name,
			Visibility: decl.Visibility,
			Generics:   generics(decl.Generics),
			Target:     hir.NewType(decl.Target),
			Docs:       decl.Docs,
			Attrs:      decl.Attrs,
		})
	}
	for _, decl := range it.Traits {
		s.Traits = append(s.Traits, hir.Trait{Name: decl.Name, Docs: decl.Docs, Attrs: decl.Attrs})
	}
	return s, nil
}

func (d FunctionDecl) function() hir.Function {
	fn := hir.Function{
		Name:       d.Name,
		Visibility: d.Visibility,
		Qualifiers: d.Qualifiers,
		Generics:   generics(d.Generics),
		Ret:        hir.NewType(d.Returns),
		Docs:       d.Docs,
		Attrs:      d.Attrs,
	}
	if d.Self != "" {
		fn.SelfParam = &hir.SelfParam{Text: d.Self}
	}
	for _, p := range d.Params {
		fn.Params = append(fn.Params, hir.Param{Name: p.Name, Type: hir.NewType(p.Type)})
	}
	return fn
}

func (d AdtDecl) adt(kind hir.AdtKind) (hir.Adt, error) {
	adt := hir.Adt{
		Kind:     kind,
		Name:     d.Name,
		Generics: generics(d.Generics),
		Docs:     d.Docs,
		Attrs:    d.Attrs,
	}

	structKind, err := parseStructKind(d.Kind, len(d.Fields))
	if err != nil {
		return hir.Adt{}, fmt.Errorf("%s: %w", d.Name, err)
	}
	adt.StructKind = structKind
	adt.Fields = fields(d.Fields, structKind)

	for _, v := range d.Variants {
		vk, err := parseStructKind(v.Kind, len(v.Fields))
		if err != nil {
			return hir.Adt{}, fmt.Errorf("%s::%s: %w", d.Name, v.Name, err)
		}
		adt.Variants = append(adt.Variants, hir.Variant{
			Name:   v.Name,
			Parent: d.Name,
			Kind:   vk,
			Fields: fields(v.Fields, vk),
			Docs:   v.Docs,
			Attrs:  v.Attrs,
		})
	}
	for _, m := range d.Methods {
		adt.Methods = append(adt.Methods, m.function())
	}
	return adt, nil
}

// parseStructKind maps the manifest kind; an omitted kind is a record when
// fields are listed and a unit otherwise.
func parseStructKind(kind string, fieldCount int) (hir.StructKind, error) {
	switch kind {
	case "":
		if fieldCount > 0 {
			return hir.StructRecord, nil
		}
		return hir.StructUnit, nil
	case "record":
		return hir.StructRecord, nil
	case "tuple":
		return hir.StructTuple, nil
	case "unit":
		return hir.StructUnit, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", kind)
	}
}

// fields converts field declarations. Tuple fields are named by position.
func fields(decls []FieldDecl, kind hir.StructKind) []hir.Field {
	out := make([]hir.Field, 0, len(decls))
	for i, d := range decls {
		name := d.Name
		if kind == hir.StructTuple {
			name = strconv.Itoa(i)
		}
		out = append(out, hir.Field{
			Name:       name,
			Type:       hir.NewType(d.Type),
			Visibility: d.Visibility,
			Docs:       d.Docs,
			Attrs:      d.Attrs,
		})
	}
	return out
}

func generics(decls []GenericDecl) []hir.GenericParam {
	if len(decls) == 0 {
		return nil
	}
	out := make([]hir.GenericParam, len(decls))
	for i, d := range decls {
		out[i] = hir.GenericParam{Name: d.Name, Default: d.Default}
	}
	return out
}
