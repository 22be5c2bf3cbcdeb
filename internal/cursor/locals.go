package cursor

import (
	"strings"

	"github.com/juev/completion-lsp/internal/hir"
)

// Locals returns the bindings visible at offset: parameters of the innermost
// enclosing fn and the let bindings finished before the cursor in still-open
// blocks. The nearest binding comes first and shadowed names are dropped.
func Locals(text string, offset int) []hir.Local {
	offset = clampOffset(text, offset)
	s := scan(text, offset)

	fnIdx := s.innermostFn()
	lo := 0
	if fnIdx >= 0 {
		lo = fnIdx
	}
	open := make(map[int]bool, len(s.stack))
	for _, f := range s.stack[lo:] {
		open[f.pos] = true
	}

	var ordered []hir.Local
	if fnIdx >= 0 {
		ordered = append(ordered, fnParams(s.stack[fnIdx].fn)...)
	}
	for _, l := range s.lets {
		if open[l.framePos] || (fnIdx < 0 && l.framePos == -1) {
			ordered = append(ordered, hir.Local{Name: l.name, Type: hir.NewType(l.ty)})
		}
	}

	seen := make(map[string]bool, len(ordered))
	locals := make([]hir.Local, 0, len(ordered))
	for i := len(ordered) - 1; i >= 0; i-- {
		if seen[ordered[i].Name] {
			continue
		}
		seen[ordered[i].Name] = true
		locals = append(locals, ordered[i])
	}
	return locals
}

// SelfType returns the self type of the impl block enclosing offset.
func SelfType(text string, offset int) string {
	offset = clampOffset(text, offset)
	return scan(text, offset).enclosingImpl()
}

func fnParams(fn *fnScope) []hir.Local {
	var locals []hir.Local
	for _, part := range splitTopLevel(fn.params, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if local, ok := receiver(part, fn.selfType); ok {
			locals = append(locals, local)
			continue
		}
		pieces := splitTopLevel(part, ':')
		if len(pieces) < 2 {
			continue
		}
		pat := strings.TrimSpace(pieces[0])
		pat = strings.TrimSpace(strings.TrimPrefix(pat, "mut "))
		if pat == "" || identEnd(pat, 0) != len(pat) || !isIdentStartByte(pat[0]) {
			continue
		}
		ty := strings.TrimSpace(strings.Join(pieces[1:], ":"))
		locals = append(locals, hir.Local{Name: pat, Type: hir.NewType(ty)})
	}
	return locals
}

// receiver parses `self`, `&self`, `&mut self`, `mut self` and `self: T`.
func receiver(param, selfType string) (hir.Local, bool) {
	p := strings.Join(strings.Fields(param), " ")
	var ty string
	switch {
	case p == "self" || p == "mut self":
		ty = selfType
	case strings.HasPrefix(p, "&") && (p == "&self" || strings.HasSuffix(p, " self")):
		if selfType != "" {
			ty = "&" + selfType
			if strings.HasSuffix(strings.TrimSuffix(p, " self"), "mut") {
				ty = "&mut " + selfType
			}
		}
	case strings.HasPrefix(p, "self:") || strings.HasPrefix(p, "mut self:"):
		ty = strings.TrimSpace(p[strings.IndexByte(p, ':')+1:])
		if selfType != "" {
			ty = strings.ReplaceAll(ty, "Self", selfType)
		}
	default:
		return hir.Local{}, false
	}
	return hir.Local{Name: "self", Type: hir.NewType(ty)}, true
}
