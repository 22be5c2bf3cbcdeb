package symbols

import (
	"sort"
	"sync"

	"github.com/juev/completion-lsp/internal/completion"
	"github.com/juev/completion-lsp/internal/hir"
)

// Index holds the root scope of every loaded manifest. Lookups visit
// manifests in path order so results are stable across reloads.
type Index struct {
	mu    sync.RWMutex
	files map[string]*Scope
	order []string
}

func NewIndex() *Index {
	return &Index{files: make(map[string]*Scope)}
}

// SetFile replaces everything previously indexed for path.
func (idx *Index) SetFile(path string, root *Scope) {
	if path == "" || root == nil {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.files[path]; !ok {
		idx.order = append(idx.order, path)
		sort.Strings(idx.order)
	}
	idx.files[path] = root
}

func (idx *Index) RemoveFile(path string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.files[path]; !ok {
		return
	}
	delete(idx.files, path)
	for i, p := range idx.order {
		if p == path {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
}

func (idx *Index) Files() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]string(nil), idx.order...)
}

func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.files)
}

// roots returns the root scopes in path order. Callers hold idx.mu.
func (idx *Index) roots() []*Scope {
	roots := make([]*Scope, len(idx.order))
	for i, p := range idx.order {
		roots[i] = idx.files[p]
	}
	return roots
}

// ScopeCandidates lists every crate-root item of every manifest.
func (idx *Index) ScopeCandidates() []completion.Candidate {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var out []completion.Candidate
	for _, root := range idx.roots() {
		out = append(out, root.Candidates()...)
	}
	return out
}

// Module resolves a module path in the first manifest that declares it.
func (idx *Index) Module(path []string) (*Scope, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.module(path)
}

func (idx *Index) module(path []string) (*Scope, bool) {
	for _, root := range idx.roots() {
		if s := root.resolve(path); s != nil {
			return s, true
		}
	}
	return nil, false
}

// Adt finds a struct, enum or union. A qualified path is resolved through
// modules; a bare name matches the first declaration anywhere.
func (idx *Index) Adt(path []string) (hir.Adt, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.adt(path)
}

func (idx *Index) adt(path []string) (hir.Adt, bool) {
	if len(path) == 0 {
		return hir.Adt{}, false
	}
	name := path[len(path)-1]
	if len(path) > 1 {
		for _, root := range idx.roots() {
			if s := root.resolve(path[:len(path)-1]); s != nil {
				if adt, ok := s.Adt(name); ok {
					return adt, true
				}
			}
		}
		return hir.Adt{}, false
	}
	for _, root := range idx.roots() {
		if adt, ok := root.findAdt(name); ok {
			return adt, true
		}
	}
	return hir.Adt{}, false
}

// AdtForType finds the ADT named by a type display such as "&Vec<u8>".
func (idx *Index) AdtForType(ty string) (hir.Adt, bool) {
	name := BaseTypeName(ty)
	if name == "" {
		return hir.Adt{}, false
	}
	return idx.Adt([]string{name})
}

// Enum is Adt restricted to enums.
func (idx *Index) Enum(name string) (hir.Adt, bool) {
	adt, ok := idx.AdtForType(name)
	if !ok || adt.Kind != hir.AdtEnum {
		return hir.Adt{}, false
	}
	return adt, true
}

// Function resolves `name` in the crate roots, `module::name`, or the
// associated function `Type::name`.
func (idx *Index) Function(qualifier []string, name string) (hir.Function, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, root := range idx.roots() {
		if s := root.resolve(qualifier); s != nil {
			if fn, ok := s.Function(name); ok {
				return fn, true
			}
		}
	}
	if len(qualifier) == 0 {
		return hir.Function{}, false
	}
	if adt, ok := idx.adt(qualifier); ok {
		return method(adt, name)
	}
	return hir.Function{}, false
}

// Method finds a method declared on the type named by ty.
func (idx *Index) Method(ty, name string) (hir.Function, bool) {
	adt, ok := idx.AdtForType(ty)
	if !ok {
		return hir.Function{}, false
	}
	return method(adt, name)
}

func method(adt hir.Adt, name string) (hir.Function, bool) {
	for _, fn := range adt.Methods {
		if fn.Name == name {
			return fn, true
		}
	}
	return hir.Function{}, false
}

// PathCandidates lists what may follow `qualifier::`: the items of a module,
// or the variants and associated functions of a type.
func (idx *Index) PathCandidates(qualifier []string) []completion.Candidate {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(qualifier) == 0 {
		return nil
	}
	if s, ok := idx.module(qualifier); ok {
		return s.Candidates()
	}
	adt, ok := idx.adt(qualifier)
	if !ok {
		return nil
	}
	var out []completion.Candidate
	for _, v := range adt.Variants {
		out = append(out, completion.EnumVariant{Variant: v})
	}
	for _, fn := range adt.Methods {
		out = append(out, completion.Function{Function: fn})
	}
	return out
}

// MemberCandidates lists the fields and receiver methods reachable with
// `value.` on a value of type ty.
func (idx *Index) MemberCandidates(ty string) []completion.Candidate {
	adt, ok := idx.AdtForType(ty)
	if !ok {
		return nil
	}
	var out []completion.Candidate
	if adt.Kind != hir.AdtEnum {
		for i, f := range adt.Fields {
			if adt.StructKind == hir.StructTuple {
				out = append(out, completion.TupleField{Index: i, Type: f.Type})
				continue
			}
			out = append(out, completion.Field{Field: f})
		}
	}
	for _, fn := range adt.Methods {
		if fn.HasSelfParam() {
			out = append(out, completion.Function{Function: fn})
		}
	}
	return out
}

// VariantCandidates lists the variants of enum ty qualified by the enum
// name, for offering `Enum::Variant` where an enum value is expected.
func (idx *Index) VariantCandidates(ty string) []completion.Candidate {
	adt, ok := idx.Enum(ty)
	if !ok {
		return nil
	}
	out := make([]completion.Candidate, 0, len(adt.Variants))
	for _, v := range adt.Variants {
		out = append(out, completion.EnumVariant{Variant: v, Path: hir.NewPath(adt.Name, v.Name)})
	}
	return out
}
