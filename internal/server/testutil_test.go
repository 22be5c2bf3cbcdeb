package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

type integrationMockClient struct {
	mu            sync.Mutex
	logMessages   []protocol.LogMessageParams
	configuration []interface{}
}

func newIntegrationMockClient() *integrationMockClient {
	return &integrationMockClient{}
}

func (m *integrationMockClient) Progress(_ context.Context, _ *protocol.ProgressParams) error {
	return nil
}

func (m *integrationMockClient) WorkDoneProgressCreate(_ context.Context, _ *protocol.WorkDoneProgressCreateParams) error {
	return nil
}

func (m *integrationMockClient) LogMessage(_ context.Context, params *protocol.LogMessageParams) error {
	m.mu.Lock()
	m.logMessages = append(m.logMessages, *params)
	m.mu.Unlock()
	return nil
}

func (m *integrationMockClient) PublishDiagnostics(_ context.Context, _ *protocol.PublishDiagnosticsParams) error {
	return nil
}

func (m *integrationMockClient) ShowMessage(_ context.Context, _ *protocol.ShowMessageParams) error {
	return nil
}

func (m *integrationMockClient) ShowMessageRequest(_ context.Context, _ *protocol.ShowMessageRequestParams) (*protocol.MessageActionItem, error) {
	return nil, nil
}

func (m *integrationMockClient) Telemetry(_ context.Context, _ interface{}) error {
	return nil
}

func (m *integrationMockClient) RegisterCapability(_ context.Context, _ *protocol.RegistrationParams) error {
	return nil
}

func (m *integrationMockClient) UnregisterCapability(_ context.Context, _ *protocol.UnregistrationParams) error {
	return nil
}

func (m *integrationMockClient) ApplyEdit(_ context.Context, _ *protocol.ApplyWorkspaceEditParams) (bool, error) {
	return false, nil
}

func (m *integrationMockClient) Configuration(_ context.Context, _ *protocol.ConfigurationParams) ([]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configuration, nil
}

func (m *integrationMockClient) WorkspaceFolders(_ context.Context) ([]protocol.WorkspaceFolder, error) {
	return nil, nil
}

func (m *integrationMockClient) messages() []protocol.LogMessageParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]protocol.LogMessageParams(nil), m.logMessages...)
}

type testServer struct {
	*Server
	client *integrationMockClient
	root   string
}

// newTestServer starts a server over a temporary workspace holding the
// given files and completes the initialize handshake.
func newTestServer(t *testing.T, files map[string]string, snippets bool, options map[string]interface{}) *testServer {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	srv := NewServer()
	client := newIntegrationMockClient()
	srv.SetClient(client)

	params := &protocol.InitializeParams{
		WorkspaceFolders:      []protocol.WorkspaceFolder{{URI: string(uri.File(root)), Name: "test"}},
		InitializationOptions: options,
		Capabilities: protocol.ClientCapabilities{
			TextDocument: &protocol.TextDocumentClientCapabilities{
				Completion: &protocol.CompletionTextDocumentClientCapabilities{
					CompletionItem: &protocol.CompletionTextDocumentClientCapabilitiesItem{
						SnippetSupport: snippets,
					},
				},
			},
		},
	}
	_, err := srv.Initialize(context.Background(), params)
	require.NoError(t, err)
	require.NoError(t, srv.Initialized(context.Background(), &protocol.InitializedParams{}))

	return &testServer{Server: srv, client: client, root: root}
}

func (ts *testServer) uri(name string) protocol.DocumentURI {
	return protocol.DocumentURI(uri.File(filepath.Join(ts.root, name)))
}

func (ts *testServer) openDocument(uri protocol.DocumentURI, content string) error {
	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "rust",
			Text:       content,
		},
	}
	return ts.DidOpen(context.Background(), params)
}

func (ts *testServer) changeDocument(uri protocol.DocumentURI, changes []protocol.TextDocumentContentChangeEvent) error {
	params := &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: changes,
	}
	return ts.DidChange(context.Background(), params)
}

func (ts *testServer) completion(uri protocol.DocumentURI, line, character uint32) (*protocol.CompletionList, error) {
	params := &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: character},
		},
	}
	return ts.Completion(context.Background(), params)
}

// completeAt opens src with its "$0" marker removed and completes there.
func (ts *testServer) completeAt(t *testing.T, name, src string) *protocol.CompletionList {
	t.Helper()
	idx := strings.Index(src, "$0")
	require.GreaterOrEqual(t, idx, 0, "missing $0 marker")
	text := src[:idx] + src[idx+2:]

	docURI := ts.uri(name)
	require.NoError(t, ts.openDocument(docURI, text))

	line := strings.Count(text[:idx], "\n")
	col := idx - (strings.LastIndex(text[:idx], "\n") + 1)
	list, err := ts.completion(docURI, uint32(line), uint32(col))
	require.NoError(t, err)
	return list
}

func extractCompletionLabels(items []protocol.CompletionItem) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

func findCompletionItem(items []protocol.CompletionItem, label string) *protocol.CompletionItem {
	for i := range items {
		if items[i].Label == label {
			return &items[i]
		}
	}
	return nil
}
