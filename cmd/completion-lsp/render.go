package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/juev/completion-lsp/internal/server"
)

type renderOptions struct {
	file       string
	line       uint32
	character  uint32
	root       string
	manifests  []string
	noSnippets bool
	limit      int
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render FILE LINE:COL",
		Short: "Print the completion list for one position as JSON",
		Long: `render runs a single completion request without an editor.

LINE and COL are 1-based; COL counts UTF-16 code units like the protocol.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, character, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			opts.file = args[0]
			opts.line = line
			opts.character = character

			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return render(cmd.Context(), opts, logger, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringSliceVarP(&opts.manifests, "manifest", "m", nil, "symbol manifest to load (repeatable, globs allowed)")
	cmd.Flags().StringVar(&opts.root, "root", "", "workspace directory searched for *.symbols.yaml")
	cmd.Flags().BoolVar(&opts.noSnippets, "no-snippets", false, "render for a client without snippet support")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "maximum number of items (0 keeps the server default)")
	return cmd
}

// parsePosition converts a 1-based "LINE:COL" into a protocol position.
func parsePosition(s string) (uint32, uint32, error) {
	lineText, colText, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("position %q: want LINE:COL", s)
	}
	line, err := strconv.ParseUint(lineText, 10, 32)
	if err != nil || line == 0 {
		return 0, 0, fmt.Errorf("position %q: invalid line", s)
	}
	col, err := strconv.ParseUint(colText, 10, 32)
	if err != nil || col == 0 {
		return 0, 0, fmt.Errorf("position %q: invalid column", s)
	}
	return uint32(line - 1), uint32(col - 1), nil
}

// render drives an in-process server through the same requests an editor
// would send and writes the resulting list.
func render(ctx context.Context, opts renderOptions, logger *zap.Logger, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := filepath.Abs(opts.file)
	if err != nil {
		return err
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	manifests := make([]interface{}, 0, len(opts.manifests))
	for _, m := range opts.manifests {
		if abs, err := filepath.Abs(m); err == nil {
			m = abs
		}
		manifests = append(manifests, m)
	}
	options := map[string]interface{}{
		"symbols": map[string]interface{}{"files": manifests},
	}
	if opts.limit > 0 {
		options["completion"] = map[string]interface{}{"maxResults": opts.limit}
	}

	params := &protocol.InitializeParams{
		InitializationOptions: options,
		Capabilities: protocol.ClientCapabilities{
			TextDocument: &protocol.TextDocumentClientCapabilities{
				Completion: &protocol.CompletionTextDocumentClientCapabilities{
					CompletionItem: &protocol.CompletionTextDocumentClientCapabilitiesItem{
						SnippetSupport: !opts.noSnippets,
					},
				},
			},
		},
	}
	if opts.root != "" {
		root, err := filepath.Abs(opts.root)
		if err != nil {
			return err
		}
		params.RootURI = uri.File(root) //nolint:staticcheck // no workspace folders outside an editor
	}

	srv := server.NewServer(server.WithLogger(logger))
	if _, err := srv.Initialize(ctx, params); err != nil {
		return err
	}
	if err := srv.Initialized(ctx, &protocol.InitializedParams{}); err != nil {
		return err
	}
	if errs := srv.Workspace().Errors(); len(errs) > 0 {
		return fmt.Errorf("manifest %s: %w", errs[0].Path, errs[0])
	}

	docURI := uri.File(path)
	if err := srv.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: docURI, LanguageID: "rust", Text: string(text)},
	}); err != nil {
		return err
	}

	list, err := srv.Completion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
			Position:     protocol.Position{Line: opts.line, Character: opts.character},
		},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
