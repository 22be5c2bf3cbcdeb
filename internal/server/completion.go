package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/juev/completion-lsp/internal/completion"
	"github.com/juev/completion-lsp/internal/cursor"
	"github.com/juev/completion-lsp/internal/hir"
	"github.com/juev/completion-lsp/internal/lsputil"
	"github.com/juev/completion-lsp/internal/symbols"
)

const triggerParameterHints = "editor.action.triggerParameterHints"

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc, ok := s.GetDocument(params.TextDocument.URI)
	if !ok {
		return &protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
	}

	settings := s.getSettings()
	mapper := lsputil.NewMapper(doc)
	offset := mapper.Offset(params.Position)

	rendered, site := Complete(s.Workspace().Index(), doc, offset, settings.completionConfig(s.clientSnippets()), s.logger)

	items := make([]protocol.CompletionItem, len(rendered))
	for i, it := range rendered {
		items[i] = toProtocolItem(it, mapper)
	}
	scored := filterAndScoreFuzzyMatch(rendered, items, site.Prefix)
	items = rankCompletionItems(scored)

	if settings.Completion.MaxResults > 0 && len(items) > settings.Completion.MaxResults {
		items = items[:settings.Completion.MaxResults]
	}

	s.logger.Debug("completion",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Stringer("mode", site.Mode),
		zap.String("prefix", site.Prefix),
		zap.Int("rendered", len(rendered)),
		zap.Int("returned", len(items)))

	return &protocol.CompletionList{
		IsIncomplete: true, // prevents VSCode from caching and re-sorting by fuzzy matching
		Items:        items,
	}, nil
}

// CompletionResolve returns the item unchanged; every field is computed
// eagerly.
func (s *Server) CompletionResolve(_ context.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	return params, nil
}

// Complete classifies the cursor at offset, gathers the candidates visible
// there and renders them in emission order.
func Complete(index *symbols.Index, text string, offset int, cfg completion.Config, logger *zap.Logger) ([]completion.Item, cursor.Site) {
	site := cursor.Analyze(text, offset)
	if site.InLiteral {
		return nil, site
	}

	r := newResolver(index, text, site)
	ctx := r.context(cfg)

	acc := completion.NewCompletions(logger)
	acc.AddAll(ctx, r.candidates(ctx))
	return acc.Items(), site
}

// resolver answers type questions about one cursor site from the local
// bindings and the symbol index.
type resolver struct {
	index    *symbols.Index
	site     cursor.Site
	locals   []hir.Local
	selfType string
}

func newResolver(index *symbols.Index, text string, site cursor.Site) *resolver {
	if index == nil {
		index = symbols.NewIndex()
	}
	return &resolver{
		index:    index,
		site:     site,
		locals:   cursor.Locals(text, site.Start),
		selfType: cursor.SelfType(text, site.Start),
	}
}

func (r *resolver) context(cfg completion.Config) *completion.Context {
	site := r.site
	ctx := &completion.Context{
		SourceRange:   completion.TextRange{Start: site.Start, End: site.End},
		IsPathType:    site.IsPathType,
		HasTypeArgs:   site.HasTypeArgs,
		IsCall:        site.IsCall,
		IsMacroCall:   site.IsMacroCall,
		UseItemSyntax: site.UseItem,
		Config:        cfg,
	}

	var expected string
	switch {
	case site.RecordField != nil:
		rf := &completion.RecordFieldSite{Name: site.RecordField.Field}
		if adt, ok := r.index.Adt(r.qualifier([]string{site.RecordField.Struct})); ok {
			if field, ok := adt.Field(site.RecordField.Field); ok {
				rf.Field = &field
				expected = field.Type.Text
			}
		}
		ctx.RecordField = rf
	case site.Call != nil:
		if param, ok := r.activeParameter(site.Call); ok {
			ctx.ActiveParameter = &completion.ActiveParameter{Name: param.Name, Ty: param.Type.Display()}
			expected = param.Type.Text
		}
	}
	if expected == "" {
		expected = site.LetType
	}
	if expected != "" {
		ty := hir.NewType(expected)
		ctx.ExpectedType = &ty
	}
	return ctx
}

func (r *resolver) activeParameter(call *cursor.Call) (hir.Param, bool) {
	if call.Macro {
		return hir.Param{}, false
	}
	var (
		fn  hir.Function
		ok  bool
		idx = call.ArgIndex
	)
	switch {
	case call.Receiver != "":
		fn, ok = r.index.Method(r.exprType(call.Receiver), call.Callee)
	case len(call.Qualifier) > 0:
		fn, ok = r.index.Function(r.qualifier(call.Qualifier), call.Callee)
		if ok && fn.HasSelfParam() {
			idx--
		}
	default:
		fn, ok = r.index.Function(nil, call.Callee)
	}
	if !ok {
		return hir.Param{}, false
	}
	return fn.Param(idx)
}

// qualifier substitutes the impl self type for a leading `Self`.
func (r *resolver) qualifier(path []string) []string {
	if len(path) > 0 && path[0] == "Self" && r.selfType != "" {
		return append([]string{r.selfType}, path[1:]...)
	}
	return path
}

func (r *resolver) local(name string) (hir.Local, bool) {
	for _, l := range r.locals {
		if l.Name == name {
			return l, true
		}
	}
	return hir.Local{}, false
}

// exprType resolves the type of a receiver chain such as `self.items.first()`.
// It returns "" when any link cannot be resolved.
func (r *resolver) exprType(expr string) string {
	links := splitChain(expr)
	if len(links) == 0 {
		return ""
	}

	var ty string
	head, call := callName(links[0])
	switch {
	case call && strings.Contains(head, "::"):
		parts := strings.Split(head, "::")
		q := r.qualifier(parts[:len(parts)-1])
		fn, ok := r.index.Function(q, parts[len(parts)-1])
		if !ok {
			return ""
		}
		ty = selfSubst(fn.Ret.Text, q[len(q)-1])
	case call:
		fn, ok := r.index.Function(nil, head)
		if !ok {
			return ""
		}
		ty = fn.Ret.Text
	default:
		l, ok := r.local(head)
		if !ok || l.Type.IsUnknown() {
			return ""
		}
		ty = l.Type.Text
	}

	for _, link := range links[1:] {
		name, call := callName(link)
		if call {
			fn, ok := r.index.Method(ty, name)
			if !ok {
				return ""
			}
			ty = selfSubst(fn.Ret.Text, symbols.BaseTypeName(ty))
			continue
		}
		adt, ok := r.index.AdtForType(ty)
		if !ok {
			return ""
		}
		field, ok := adt.Field(name)
		if !ok {
			return ""
		}
		ty = field.Type.Text
	}
	return ty
}

func selfSubst(ty, self string) string {
	if ty == "Self" {
		return self
	}
	return ty
}

// splitChain splits `a.b(x.y).c` into its top-level links.
func splitChain(expr string) []string {
	var links []string
	depth, start := 0, 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		case '.':
			if depth == 0 {
				links = append(links, strings.TrimSpace(expr[start:i]))
				start = i + 1
			}
		}
	}
	return append(links, strings.TrimSpace(expr[start:]))
}

// callName reports the callee of a `name(..)` link.
func callName(link string) (string, bool) {
	if i := strings.IndexByte(link, '('); i > 0 && strings.HasSuffix(link, ")") {
		return strings.TrimSpace(link[:i]), true
	}
	return link, false
}

func (r *resolver) candidates(ctx *completion.Context) []completion.Candidate {
	site := r.site
	switch site.Mode {
	case cursor.ModeDot:
		return r.index.MemberCandidates(r.exprType(site.Receiver))
	case cursor.ModePath:
		q := r.qualifier(site.Qualifier)
		if len(q) == 1 && q[0] == "Self" {
			return nil
		}
		return r.index.PathCandidates(q)
	}

	var out []completion.Candidate
	if !site.UseItem && !site.IsPathType {
		for _, l := range r.locals {
			out = append(out, completion.Local{Local: l})
		}
		if ctx.ExpectedType != nil {
			out = append(out, r.index.VariantCandidates(ctx.ExpectedType.Text)...)
		}
	}
	if !site.UseItem && r.selfType != "" {
		out = append(out, completion.SelfType{})
	}
	out = append(out, r.index.ScopeCandidates()...)
	if site.UseItem {
		return out
	}
	for _, b := range hir.BuiltinTypes() {
		out = append(out, completion.BuiltinType{BuiltinType: b})
	}
	return out
}

var itemKinds = map[completion.Kind]protocol.CompletionItemKind{
	completion.KindUnknown:     protocol.CompletionItemKindText,
	completion.KindField:       protocol.CompletionItemKindField,
	completion.KindModule:      protocol.CompletionItemKindModule,
	completion.KindStruct:      protocol.CompletionItemKindStruct,
	completion.KindEnum:        protocol.CompletionItemKindEnum,
	completion.KindEnumVariant: protocol.CompletionItemKindEnumMember,
	completion.KindConst:       protocol.CompletionItemKindConstant,
	completion.KindStatic:      protocol.CompletionItemKindValue,
	completion.KindTrait:       protocol.CompletionItemKindInterface,
	completion.KindTypeAlias:   protocol.CompletionItemKindStruct,
	completion.KindBuiltinType: protocol.CompletionItemKindStruct,
	completion.KindTypeParam:   protocol.CompletionItemKindTypeParameter,
	completion.KindBinding:     protocol.CompletionItemKindVariable,
	completion.KindMacro:       protocol.CompletionItemKindMethod,
	completion.KindFunction:    protocol.CompletionItemKindFunction,
	completion.KindMethod:      protocol.CompletionItemKindMethod,
}

func toProtocolKind(k completion.Kind) protocol.CompletionItemKind {
	if kind, ok := itemKinds[k]; ok {
		return kind
	}
	return protocol.CompletionItemKindText
}

func toProtocolItem(it completion.Item, mapper *lsputil.Mapper) protocol.CompletionItem {
	item := protocol.CompletionItem{
		Label:            it.Label,
		Kind:             toProtocolKind(it.Kind),
		Detail:           it.Detail,
		FilterText:       it.LookupText(),
		InsertTextFormat: protocol.InsertTextFormatPlainText,
		TextEdit: &protocol.TextEdit{
			Range:   mapper.Range(it.SourceRange.Start, it.SourceRange.End),
			NewText: it.InsertText,
		},
		Preselect: it.Score == completion.ScoreTypeAndNameMatch,
	}
	if it.IsSnippet() {
		item.InsertTextFormat = protocol.InsertTextFormatSnippet
	}
	if it.Documentation != "" {
		item.Documentation = protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: it.Documentation,
		}
	}
	if it.Deprecated {
		item.Deprecated = true
		item.Tags = []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated}
	}
	if it.TriggerCallInfo {
		item.Command = &protocol.Command{
			Title:   "triggerParameterHints",
			Command: triggerParameterHints,
		}
	}
	return item
}

const (
	fuzzyScoreEmptyPattern     = 1000 // score when pattern is empty (all items match)
	fuzzyScoreBaseMatch        = 10   // base score per matched character
	fuzzyScoreConsecutiveBonus = 5    // bonus increment for consecutive matches
	fuzzyScoreWordBoundary     = 15   // bonus for match at word boundary (start, after '_' or ':', or a capital)
	fuzzyScoreExactCase        = 2    // bonus for a match with the pattern's case
)

func fuzzyMatchScore(text, pattern string) int {
	if pattern == "" {
		return fuzzyScoreEmptyPattern
	}

	textRunes := []rune(text)
	patternRunes := []rune(pattern)

	j := 0
	score := 0
	lastMatchIdx := -1
	consecutiveBonus := 0

	for i := 0; i < len(textRunes) && j < len(patternRunes); i++ {
		if unicode.ToLower(textRunes[i]) != unicode.ToLower(patternRunes[j]) {
			continue
		}
		score += fuzzyScoreBaseMatch
		if textRunes[i] == patternRunes[j] {
			score += fuzzyScoreExactCase
		}

		if lastMatchIdx == i-1 {
			consecutiveBonus += fuzzyScoreConsecutiveBonus
			score += consecutiveBonus
		} else {
			consecutiveBonus = 0
		}

		if isWordBoundary(textRunes, i) {
			score += fuzzyScoreWordBoundary
		}

		lastMatchIdx = i
		j++
	}

	if j < len(patternRunes) {
		return 0
	}
	return score
}

func isWordBoundary(text []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := text[i-1]
	return prev == '_' || prev == ':' || (unicode.IsUpper(text[i]) && unicode.IsLower(prev))
}

type scoredItem struct {
	item      protocol.CompletionItem
	relevance completion.Score
	fuzzy     int
	order     int
}

func filterAndScoreFuzzyMatch(rendered []completion.Item, items []protocol.CompletionItem, query string) []scoredItem {
	result := make([]scoredItem, 0, len(items))
	for i, item := range items {
		score := fuzzyMatchScore(rendered[i].LookupText(), query)
		if score == 0 {
			continue
		}
		result = append(result, scoredItem{
			item:      item,
			relevance: rendered[i].Score,
			fuzzy:     score,
			order:     i,
		})
	}
	return result
}

// rankCompletionItems orders by relevance tier, then fuzzy score, then
// emission order, and pins the order with SortText.
func rankCompletionItems(scored []scoredItem) []protocol.CompletionItem {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].relevance != scored[j].relevance {
			return scored[i].relevance > scored[j].relevance
		}
		if scored[i].fuzzy != scored[j].fuzzy {
			return scored[i].fuzzy > scored[j].fuzzy
		}
		return scored[i].order < scored[j].order
	})

	items := make([]protocol.CompletionItem, len(scored))
	for i, s := range scored {
		items[i] = s.item
		items[i].SortText = fmt.Sprintf("%06d_%s", i, s.item.Label)
	}
	return items
}
