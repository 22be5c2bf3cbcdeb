// Package hir holds the resolved semantic model handed to completion rendering.
//
// Values here are produced by name resolution and type inference. They are
// plain data: every display string a renderer needs (type text, docs, attribute
// keys) is already materialized, so nothing in this package performs lookups.
package hir

import "strings"

const unknownTypeText = "{unknown}"

// Type is an inferred type, carried as its display text.
type Type struct {
	Text string
}

func NewType(text string) Type {
	return Type{Text: strings.TrimSpace(text)}
}

func UnknownType() Type {
	return Type{}
}

func (t Type) IsUnknown() bool {
	return t.Text == "" || t.Text == unknownTypeText || t.Text == "_"
}

// Display renders the type for a detail string. Unresolved types render as
// an explicit marker.
func (t Type) Display() string {
	if t.IsUnknown() {
		return unknownTypeText
	}
	return t.Text
}

// IsFn reports whether the type is a function pointer or function item type.
func (t Type) IsFn() bool {
	text := t.Text
	for _, prefix := range []string{"unsafe ", "extern "} {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			if prefix == "extern " && strings.HasPrefix(text, `"`) {
				if end := strings.Index(text[1:], `"`); end >= 0 {
					text = strings.TrimSpace(text[end+2:])
				}
			}
		}
	}
	return strings.HasPrefix(text, "fn(") || strings.HasPrefix(text, "fn ")
}

// Attrs is the list of attribute paths attached to an item, e.g.
// "deprecated", `deprecated(since = "1.2")`, "macro_export".
type Attrs []string

func (a Attrs) HasKey(key string) bool {
	for _, attr := range a {
		attr = strings.TrimSpace(attr)
		if attr == key {
			return true
		}
		if strings.HasPrefix(attr, key) {
			rest := strings.TrimLeft(attr[len(key):], " ")
			if strings.HasPrefix(rest, "(") || strings.HasPrefix(rest, "=") {
				return true
			}
		}
	}
	return false
}

func (a Attrs) IsDeprecated() bool {
	return a.HasKey("deprecated")
}

type StructKind int

const (
	StructRecord StructKind = iota
	StructTuple
	StructUnit
)

func (k StructKind) String() string {
	switch k {
	case StructRecord:
		return "record"
	case StructTuple:
		return "tuple"
	case StructUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// GenericParam is a declared generic parameter. Lifetimes keep their
// leading quote in Name.
type GenericParam struct {
	Name    string
	Default string
}

func (g GenericParam) IsLifetime() bool {
	return strings.HasPrefix(g.Name, "'")
}

func (g GenericParam) String() string {
	if g.Default != "" {
		return g.Name + " = " + g.Default
	}
	return g.Name
}

func hasNonDefaultTypeParams(generics []GenericParam) bool {
	for _, g := range generics {
		if g.IsLifetime() {
			continue
		}
		if g.Default == "" {
			return true
		}
	}
	return false
}

func formatGenerics(generics []GenericParam) string {
	if len(generics) == 0 {
		return ""
	}
	parts := make([]string, len(generics))
	for i, g := range generics {
		parts[i] = g.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// Path is a qualified item path such as Option::Some.
type Path struct {
	Segments []string
}

func NewPath(segments ...string) Path {
	return Path{Segments: segments}
}

func (p Path) String() string {
	return strings.Join(p.Segments, "::")
}

func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}
