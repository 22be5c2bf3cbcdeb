package completion

import "go.uber.org/zap"

// Completions accumulates the items of one completion request in emission
// order. It is owned by a single request and is not safe for concurrent use.
type Completions struct {
	items  []Item
	logger *zap.Logger
}

func NewCompletions(logger *zap.Logger) *Completions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Completions{logger: logger}
}

func (c *Completions) Add(item Item) {
	if item.Label == "" {
		c.logger.Debug("dropping completion item without label", zap.Stringer("kind", item.Kind))
		return
	}
	c.items = append(c.items, item)
}

func (c *Completions) add(b *builder) {
	c.Add(b.build())
}

// AddCandidate renders one candidate of any kind.
func (c *Completions) AddCandidate(ctx *Context, candidate Candidate) {
	if candidate == nil {
		return
	}
	candidate.accept(&candidateRenderer{acc: c, ctx: ctx})
}

func (c *Completions) AddAll(ctx *Context, candidates []Candidate) {
	for _, candidate := range candidates {
		c.AddCandidate(ctx, candidate)
	}
}

func (c *Completions) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Completions) Len() int {
	return len(c.items)
}

func (c *Completions) skip(reason, name string) {
	c.logger.Debug("skipping completion candidate", zap.String("reason", reason), zap.String("name", name))
}
