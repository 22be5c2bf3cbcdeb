package server

import (
	"context"
	"testing"

	"go.lsp.dev/protocol"

	"github.com/juev/completion-lsp/internal/completion"
	"github.com/juev/completion-lsp/internal/cursor"
	"github.com/juev/completion-lsp/internal/lsputil"
	"github.com/juev/completion-lsp/internal/symbols"
	"github.com/juev/completion-lsp/internal/testutil"
)

var (
	smallManifest  = testutil.GenerateManifest(10)
	mediumManifest = testutil.GenerateManifest(100)
	largeManifest  = testutil.GenerateManifest(1000)
)

func benchScope(b *testing.B, manifest string) *symbols.Scope {
	b.Helper()
	scope, err := symbols.NewLoader(symbols.DefaultLimits()).LoadFromContent("bench.symbols.yaml", []byte(manifest))
	if err != nil {
		b.Fatal(err)
	}
	return scope
}

func benchIndex(b *testing.B, manifest string) *symbols.Index {
	b.Helper()
	idx := symbols.NewIndex()
	idx.SetFile("bench.symbols.yaml", benchScope(b, manifest))
	return idx
}

func benchServer(b *testing.B, manifest, source string) (*Server, protocol.DocumentURI) {
	b.Helper()
	srv := NewServer()
	srv.Workspace().Index().SetFile("bench.symbols.yaml", benchScope(b, manifest))
	docURI := protocol.DocumentURI("file:///bench.rs")
	srv.StoreDocument(docURI, source)
	return srv, docURI
}

func benchmarkCompletion(b *testing.B, manifest string, line, character uint32, source string) {
	srv, docURI := benchServer(b, manifest, source)
	params := &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
			Position:     protocol.Position{Line: line, Character: character},
		},
	}

	ctx := context.Background()
	for b.Loop() {
		_, _ = srv.Completion(ctx, params)
	}
}

func BenchmarkCompletion_Scope_Small(b *testing.B) {
	src, line := testutil.GenerateSource(10)
	benchmarkCompletion(b, smallManifest, uint32(line), 4, src)
}

func BenchmarkCompletion_Scope_Medium(b *testing.B) {
	src, line := testutil.GenerateSource(100)
	benchmarkCompletion(b, mediumManifest, uint32(line), 4, src)
}

func BenchmarkCompletion_Scope_Large(b *testing.B) {
	src, line := testutil.GenerateSource(1000)
	benchmarkCompletion(b, largeManifest, uint32(line), 4, src)
}

func BenchmarkCompletion_Dot(b *testing.B) {
	src := "fn main() {\n    let v = Item3::new();\n    v.\n}\n"
	benchmarkCompletion(b, largeManifest, 2, 6, src)
}

func BenchmarkCompletion_Path(b *testing.B) {
	src := "fn main() {\n    Kind42::\n}\n"
	benchmarkCompletion(b, largeManifest, 1, 12, src)
}

func BenchmarkComplete_ActiveParameter(b *testing.B) {
	idx := benchIndex(b, largeManifest)
	src, _ := testutil.GenerateSource(100)
	src = src[:len(src)-3] + "fn_2("
	cfg := completion.DefaultConfig()

	for b.Loop() {
		Complete(idx, src, len(src), cfg, nil)
	}
}

func BenchmarkAnalyze_Large(b *testing.B) {
	src, _ := testutil.GenerateSource(1000)
	offset := len(src) - 3

	for b.Loop() {
		cursor.Analyze(src, offset)
	}
}

func BenchmarkMapperApply_Small(b *testing.B) {
	src, _ := testutil.GenerateSource(10)
	r := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 8},
		End:   protocol.Position{Line: 1, Character: 10},
	}

	for b.Loop() {
		lsputil.NewMapper(src).Apply(r, "value")
	}
}

func BenchmarkMapperApply_Large(b *testing.B) {
	src, _ := testutil.GenerateSource(1000)
	r := protocol.Range{
		Start: protocol.Position{Line: 500, Character: 8},
		End:   protocol.Position{Line: 500, Character: 12},
	}

	for b.Loop() {
		lsputil.NewMapper(src).Apply(r, "value")
	}
}
