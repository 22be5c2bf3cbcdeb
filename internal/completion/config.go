package completion

// SnippetCap proves the client accepts snippet insert text. Only a non-nil
// *SnippetCap lets a builder emit placeholders, so a Config without one can
// never produce snippet syntax.
type SnippetCap struct {
	_ struct{}
}

// NewSnippetCap returns a capability token when snippets are allowed.
func NewSnippetCap(allowSnippets bool) *SnippetCap {
	if !allowSnippets {
		return nil
	}
	return &SnippetCap{}
}

type Config struct {
	// AddCallParenthesis appends "()" or a call snippet to callable items.
	AddCallParenthesis bool
	// AddCallArgumentSnippets fills call parens with one placeholder per
	// named parameter instead of a single cursor stop.
	AddCallArgumentSnippets bool
	SnippetCap              *SnippetCap
}

func DefaultConfig() Config {
	return Config{
		AddCallParenthesis:      true,
		AddCallArgumentSnippets: true,
		SnippetCap:              NewSnippetCap(true),
	}
}
