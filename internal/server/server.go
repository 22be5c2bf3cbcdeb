package server

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/juev/completion-lsp/internal/lsputil"
	"github.com/juev/completion-lsp/internal/symbols"
)

const (
	serverName    = "completion-lsp"
	serverVersion = "0.1.0"
)

type Server struct {
	client                protocol.Client
	logger                *zap.Logger
	documents             sync.Map // protocol.DocumentURI -> string
	settings              serverSettings
	settingsMu            sync.RWMutex
	supportsConfiguration bool

	mu             sync.RWMutex
	rootPath       string
	workspace      *symbols.Workspace
	snippetSupport bool
}

type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewServer(opts ...Option) *Server {
	srv := &Server{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(srv)
	}
	srv.setSettings(defaultServerSettings())
	srv.workspace = symbols.NewWorkspace("", symbols.NewLoader(srv.settings.Limits), srv.logger)
	return srv
}

func (s *Server) SetClient(client protocol.Client) {
	s.client = client
}

func (s *Server) StoreDocument(uri protocol.DocumentURI, content string) {
	s.documents.Store(uri, content)
}

func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	snippets := false
	rootPath := ""
	if params != nil {
		if params.Capabilities.Workspace != nil {
			s.supportsConfiguration = params.Capabilities.Workspace.Configuration
		}
		if td := params.Capabilities.TextDocument; td != nil && td.Completion != nil && td.Completion.CompletionItem != nil {
			snippets = td.Completion.CompletionItem.SnippetSupport
		}
		s.setSettings(parseSettingsFromRaw(s.getSettings(), params.InitializationOptions))

		if len(params.WorkspaceFolders) > 0 {
			rootPath = uriToPath(protocol.DocumentURI(params.WorkspaceFolders[0].URI))
		} else if params.RootURI != "" { //nolint:staticcheck // keep for backward compatibility
			rootPath = uriToPath(params.RootURI) //nolint:staticcheck // keep for backward compatibility
		}
	}

	settings := s.getSettings()
	s.mu.Lock()
	s.snippetSupport = snippets
	s.rootPath = rootPath
	s.workspace = symbols.NewWorkspace(rootPath, symbols.NewLoader(settings.Limits), s.logger)
	s.mu.Unlock()

	s.logger.Info("initialize",
		zap.String("root", rootPath),
		zap.Bool("snippetSupport", snippets))

	caps := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindIncremental,
			Save: &protocol.SaveOptions{
				IncludeText: false,
			},
		},
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: []string{".", ":", "!", "<"},
			ResolveProvider:   true,
		},
	}

	return &protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: serverVersion,
		},
	}, nil
}

func (s *Server) Initialized(_ context.Context, _ *protocol.InitializedParams) error {
	ws := s.Workspace()
	if err := ws.Initialize(s.getSettings().Symbols.Files); err != nil {
		s.logger.Warn("workspace initialization failed", zap.Error(err))
		if s.client != nil {
			_ = s.client.LogMessage(context.Background(), &protocol.LogMessageParams{
				Type:    protocol.MessageTypeWarning,
				Message: "Workspace initialization failed: " + err.Error(),
			})
		}
	}
	s.logger.Debug("symbol manifests loaded", zap.Int("files", ws.Index().Len()))
	go s.refreshConfiguration(context.Background())
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) Exit(ctx context.Context) error {
	return nil
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.documents.Store(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	content, ok := s.GetDocument(params.TextDocument.URI)
	if !ok {
		return nil
	}
	for _, change := range params.ContentChanges {
		if isFullChange(change.Range) {
			content = change.Text
		} else {
			content = lsputil.NewMapper(content).Apply(change.Range, change.Text)
		}
	}
	s.documents.Store(params.TextDocument.URI, content)
	return nil
}

func isFullChange(r protocol.Range) bool {
	return r.Start.Line == 0 && r.Start.Character == 0 &&
		r.End.Line == 0 && r.End.Character == 0
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.documents.Delete(params.TextDocument.URI)
	return nil
}

// DidSave reloads a saved symbol manifest so its items show up without a
// restart.
func (s *Server) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	path := uriToPath(params.TextDocument.URI)
	if path == "" || !symbols.IsManifest(path) {
		return nil
	}
	if err := s.Workspace().Reload(path); err != nil && s.client != nil {
		_ = s.client.LogMessage(ctx, &protocol.LogMessageParams{
			Type:    protocol.MessageTypeWarning,
			Message: "Symbol manifest not loaded: " + err.Error(),
		})
	}
	return nil
}

// DidChangeWatchedFiles keeps the index in step with manifests edited
// outside the editor.
func (s *Server) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	ws := s.Workspace()
	for _, change := range params.Changes {
		if change == nil {
			continue
		}
		path := uriToPath(change.URI)
		if path == "" || !symbols.IsManifest(path) {
			continue
		}
		if change.Type == protocol.FileChangeTypeDeleted {
			ws.Remove(path)
			continue
		}
		if err := ws.Reload(path); err != nil {
			s.logger.Debug("watched manifest not loaded", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

func (s *Server) GetDocument(uri protocol.DocumentURI) (string, bool) {
	if doc, ok := s.documents.Load(uri); ok {
		if content, ok := doc.(string); ok {
			return content, true
		}
	}
	return "", false
}

func (s *Server) Workspace() *symbols.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspace
}

func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

func (s *Server) clientSnippets() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snippetSupport
}

func uriToPath(docURI protocol.DocumentURI) string {
	str := string(docURI)
	if !strings.HasPrefix(str, "file://") {
		return ""
	}
	u := uri.URI(docURI) //nolint:unconvert // protocol.DocumentURI and uri.URI are different types
	path := u.Filename()
	if path == "" {
		path = str[7:]
	}
	return filepath.Clean(path)
}
