package completion

type Kind int

const (
	KindUnknown Kind = iota
	KindField
	KindModule
	KindStruct
	KindEnum
	KindEnumVariant
	KindConst
	KindStatic
	KindTrait
	KindTypeAlias
	KindBuiltinType
	KindTypeParam
	KindBinding
	KindMacro
	KindFunction
	KindMethod
)

var kindNames = [...]string{
	KindUnknown:     "Unknown",
	KindField:       "Field",
	KindModule:      "Module",
	KindStruct:      "Struct",
	KindEnum:        "Enum",
	KindEnumVariant: "EnumVariant",
	KindConst:       "Const",
	KindStatic:      "Static",
	KindTrait:       "Trait",
	KindTypeAlias:   "TypeAlias",
	KindBuiltinType: "BuiltinType",
	KindTypeParam:   "TypeParam",
	KindBinding:     "Binding",
	KindMacro:       "Macro",
	KindFunction:    "Function",
	KindMethod:      "Method",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Score is a coarse relevance tier. ScoreNone means no opinion; higher
// values rank first.
type Score int

const (
	ScoreNone Score = iota
	ScoreTypeMatch
	ScoreTypeAndNameMatch
)

func (s Score) String() string {
	switch s {
	case ScoreTypeMatch:
		return "TypeMatch"
	case ScoreTypeAndNameMatch:
		return "TypeAndNameMatch"
	default:
		return ""
	}
}

type InsertTextFormat int

const (
	PlainText InsertTextFormat = iota
	Snippet
)

// Item is one rendered completion.
type Item struct {
	Label            string
	SourceRange      TextRange
	InsertText       string
	InsertTextFormat InsertTextFormat
	Kind             Kind
	Detail           string
	Documentation    string
	Deprecated       bool
	Score            Score
	// Lookup overrides Label for client-side filtering.
	Lookup          string
	TriggerCallInfo bool
}

func (it Item) LookupText() string {
	if it.Lookup != "" {
		return it.Lookup
	}
	return it.Label
}

func (it Item) IsSnippet() bool {
	return it.InsertTextFormat == Snippet
}

type builder struct {
	item Item
}

func newBuilder(rng TextRange, label string) *builder {
	return &builder{item: Item{Label: label, SourceRange: rng}}
}

func (b *builder) kind(k Kind) *builder {
	b.item.Kind = k
	return b
}

func (b *builder) label(label string) *builder {
	b.item.Label = label
	return b
}

func (b *builder) detail(detail string) *builder {
	b.item.Detail = detail
	return b
}

func (b *builder) documentation(docs string) *builder {
	b.item.Documentation = docs
	return b
}

func (b *builder) deprecated(deprecated bool) *builder {
	b.item.Deprecated = deprecated
	return b
}

func (b *builder) score(s Score) *builder {
	b.item.Score = s
	return b
}

func (b *builder) lookupBy(lookup string) *builder {
	b.item.Lookup = lookup
	return b
}

func (b *builder) triggerCallInfo() *builder {
	b.item.TriggerCallInfo = true
	return b
}

func (b *builder) insertText(text string) *builder {
	b.item.InsertText = text
	b.item.InsertTextFormat = PlainText
	return b
}

// insertSnippet requires the capability token so snippet text can only be
// produced for clients that asked for it.
func (b *builder) insertSnippet(_ SnippetCap, snippet string) *builder {
	b.item.InsertText = snippet
	b.item.InsertTextFormat = Snippet
	return b
}

func (b *builder) build() Item {
	it := b.item
	if it.InsertText == "" {
		it.InsertText = it.Label
		it.InsertTextFormat = PlainText
	}
	return it
}
