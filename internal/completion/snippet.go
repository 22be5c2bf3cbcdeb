package completion

import (
	"fmt"
	"strings"
)

var snippetEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"$", "\\$",
	"}", "\\}",
)

// escapeSnippetText makes s safe to embed in snippet insert text.
func escapeSnippetText(s string) string {
	return snippetEscaper.Replace(s)
}

func placeholder(index int, text string) string {
	return fmt.Sprintf("${%d:%s}", index, escapeSnippetText(text))
}
