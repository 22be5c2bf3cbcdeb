package symbols

import (
	"strings"

	"github.com/juev/completion-lsp/internal/completion"
	"github.com/juev/completion-lsp/internal/hir"
)

// Scope holds the items declared directly in one module.
type Scope struct {
	Name      string
	Docs      string
	Modules   []*Scope
	Functions []hir.Function
	Adts      []hir.Adt
	Macros    []hir.Macro
	Consts    []hir.Const
	Statics   []hir.Static
	Aliases   []hir.TypeAlias
	Traits    []hir.Trait
}

func (s *Scope) Module(name string) *Scope {
	for _, m := range s.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *Scope) Function(name string) (hir.Function, bool) {
	for _, fn := range s.Functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return hir.Function{}, false
}

func (s *Scope) Adt(name string) (hir.Adt, bool) {
	for _, adt := range s.Adts {
		if adt.Name == name {
			return adt, true
		}
	}
	return hir.Adt{}, false
}

// findAdt searches s and its modules depth first.
func (s *Scope) findAdt(name string) (hir.Adt, bool) {
	if adt, ok := s.Adt(name); ok {
		return adt, true
	}
	for _, m := range s.Modules {
		if adt, ok := m.findAdt(name); ok {
			return adt, true
		}
	}
	return hir.Adt{}, false
}

// resolve walks path from s. A leading `crate`, `self` or crate name refers
// to s itself.
func (s *Scope) resolve(path []string) *Scope {
	if len(path) > 0 && (path[0] == "crate" || path[0] == "self" || (s.Name != "" && path[0] == s.Name)) {
		path = path[1:]
	}
	cur := s
	for _, seg := range path {
		if cur = cur.Module(seg); cur == nil {
			return nil
		}
	}
	return cur
}

// Candidates lists the items of s in declaration groups: modules, types,
// traits, aliases, consts, statics, functions, then macros.
func (s *Scope) Candidates() []completion.Candidate {
	var out []completion.Candidate
	for _, m := range s.Modules {
		out = append(out, completion.Module{Module: hir.Module{Name: m.Name, Docs: m.Docs}})
	}
	for _, adt := range s.Adts {
		out = append(out, completion.Adt{Adt: adt})
	}
	for _, tr := range s.Traits {
		out = append(out, completion.Trait{Trait: tr})
	}
	for _, alias := range s.Aliases {
		out = append(out, completion.TypeAlias{TypeAlias: alias})
	}
	for _, c := range s.Consts {
		out = append(out, completion.Const{Const: c})
	}
	for _, st := range s.Statics {
		out = append(out, completion.Static{Static: st})
	}
	for _, fn := range s.Functions {
		out = append(out, completion.Function{Function: fn})
	}
	for _, mac := range s.Macros {
		out = append(out, completion.Macro{Macro: mac})
	}
	return out
}

// BaseTypeName reduces a type display to the name of its outermost nominal
// type: "&mut a::Vec<u8>" becomes "Vec".
func BaseTypeName(ty string) string {
	ty = strings.TrimSpace(ty)
	for {
		trimmed := strings.TrimLeft(ty, "&* \t")
		if strings.HasPrefix(trimmed, "'") {
			end := strings.IndexAny(trimmed, " \t")
			if end < 0 {
				return ""
			}
			trimmed = trimmed[end:]
		}
		for _, kw := range []string{"mut ", "const ", "dyn ", "impl "} {
			trimmed = strings.TrimPrefix(trimmed, kw)
		}
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == ty {
			break
		}
		ty = trimmed
	}
	if i := strings.IndexAny(ty, "<( "); i >= 0 {
		ty = ty[:i]
	}
	if i := strings.LastIndex(ty, "::"); i >= 0 {
		ty = ty[i+2:]
	}
	return ty
}
