package main

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/juev/completion-lsp/internal/server"
)

// serverDispatcher adapts the completion server to protocol.Server. Requests
// the server does not advertise answer with an empty result.
type serverDispatcher struct {
	srv *server.Server
}

func newServerDispatcher(srv *server.Server) protocol.Server {
	return &serverDispatcher{srv: srv}
}

func (d *serverDispatcher) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return d.srv.Initialize(ctx, params)
}

func (d *serverDispatcher) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	return d.srv.Initialized(ctx, params)
}

func (d *serverDispatcher) Shutdown(ctx context.Context) error {
	return d.srv.Shutdown(ctx)
}

func (d *serverDispatcher) Exit(ctx context.Context) error {
	return d.srv.Exit(ctx)
}

func (d *serverDispatcher) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	return d.srv.Completion(ctx, params)
}

func (d *serverDispatcher) CompletionResolve(ctx context.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	return d.srv.CompletionResolve(ctx, params)
}

func (d *serverDispatcher) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	return d.srv.DidOpen(ctx, params)
}

func (d *serverDispatcher) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	return d.srv.DidChange(ctx, params)
}

func (d *serverDispatcher) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	return d.srv.DidClose(ctx, params)
}

func (d *serverDispatcher) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	return d.srv.DidSave(ctx, params)
}

func (d *serverDispatcher) DidChangeConfiguration(ctx context.Context, params *protocol.DidChangeConfigurationParams) error {
	return d.srv.DidChangeConfiguration(ctx, params)
}

func (d *serverDispatcher) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	return d.srv.DidChangeWatchedFiles(ctx, params)
}

func (d *serverDispatcher) WorkDoneProgressCancel(context.Context, *protocol.WorkDoneProgressCancelParams) error {
	return nil
}

func (d *serverDispatcher) LogTrace(context.Context, *protocol.LogTraceParams) error {
	return nil
}

func (d *serverDispatcher) SetTrace(context.Context, *protocol.SetTraceParams) error {
	return nil
}

func (d *serverDispatcher) CodeAction(context.Context, *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	return nil, nil
}

func (d *serverDispatcher) CodeLens(context.Context, *protocol.CodeLensParams) ([]protocol.CodeLens, error) {
	return nil, nil
}

func (d *serverDispatcher) CodeLensResolve(context.Context, *protocol.CodeLens) (*protocol.CodeLens, error) {
	return nil, nil
}

func (d *serverDispatcher) ColorPresentation(context.Context, *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	return nil, nil
}

func (d *serverDispatcher) Declaration(context.Context, *protocol.DeclarationParams) ([]protocol.Location, error) {
	return nil, nil
}

func (d *serverDispatcher) Definition(context.Context, *protocol.DefinitionParams) ([]protocol.Location, error) {
	return nil, nil
}

func (d *serverDispatcher) DidChangeWorkspaceFolders(context.Context, *protocol.DidChangeWorkspaceFoldersParams) error {
	return nil
}

func (d *serverDispatcher) DocumentColor(context.Context, *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return nil, nil
}

func (d *serverDispatcher) DocumentHighlight(context.Context, *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	return nil, nil
}

func (d *serverDispatcher) DocumentLink(context.Context, *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	return nil, nil
}

func (d *serverDispatcher) DocumentLinkResolve(context.Context, *protocol.DocumentLink) (*protocol.DocumentLink, error) {
	return nil, nil
}

func (d *serverDispatcher) DocumentSymbol(context.Context, *protocol.DocumentSymbolParams) ([]interface{}, error) {
	return nil, nil
}

func (d *serverDispatcher) ExecuteCommand(context.Context, *protocol.ExecuteCommandParams) (interface{}, error) {
	return nil, nil
}

func (d *serverDispatcher) FoldingRanges(context.Context, *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	return nil, nil
}

func (d *serverDispatcher) Formatting(context.Context, *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return nil, nil
}

func (d *serverDispatcher) Hover(context.Context, *protocol.HoverParams) (*protocol.Hover, error) {
	return nil, nil
}

func (d *serverDispatcher) Implementation(context.Context, *protocol.ImplementationParams) ([]protocol.Location, error) {
	return nil, nil
}

func (d *serverDispatcher) OnTypeFormatting(context.Context, *protocol.DocumentOnTypeFormattingParams) ([]protocol.TextEdit, error) {
	return nil, nil
}

func (d *serverDispatcher) PrepareRename(context.Context, *protocol.PrepareRenameParams) (*protocol.Range, error) {
	return nil, nil
}

func (d *serverDispatcher) RangeFormatting(context.Context, *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	return nil, nil
}

func (d *serverDispatcher) References(context.Context, *protocol.ReferenceParams) ([]protocol.Location, error) {
	return nil, nil
}

func (d *serverDispatcher) Rename(context.Context, *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	return nil, nil
}

func (d *serverDispatcher) SignatureHelp(context.Context, *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	return nil, nil
}

func (d *serverDispatcher) Symbols(context.Context, *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	return nil, nil
}

func (d *serverDispatcher) TypeDefinition(context.Context, *protocol.TypeDefinitionParams) ([]protocol.Location, error) {
	return nil, nil
}

func (d *serverDispatcher) WillSave(context.Context, *protocol.WillSaveTextDocumentParams) error {
	return nil
}

func (d *serverDispatcher) WillSaveWaitUntil(context.Context, *protocol.WillSaveTextDocumentParams) ([]protocol.TextEdit, error) {
	return nil, nil
}

func (d *serverDispatcher) ShowDocument(context.Context, *protocol.ShowDocumentParams) (*protocol.ShowDocumentResult, error) {
	return nil, nil
}

func (d *serverDispatcher) WillCreateFiles(context.Context, *protocol.CreateFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, nil
}

func (d *serverDispatcher) DidCreateFiles(context.Context, *protocol.CreateFilesParams) error {
	return nil
}

func (d *serverDispatcher) WillRenameFiles(context.Context, *protocol.RenameFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, nil
}

func (d *serverDispatcher) DidRenameFiles(context.Context, *protocol.RenameFilesParams) error {
	return nil
}

func (d *serverDispatcher) WillDeleteFiles(context.Context, *protocol.DeleteFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, nil
}

func (d *serverDispatcher) DidDeleteFiles(context.Context, *protocol.DeleteFilesParams) error {
	return nil
}

func (d *serverDispatcher) CodeLensRefresh(context.Context) error {
	return nil
}

func (d *serverDispatcher) PrepareCallHierarchy(context.Context, *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error) {
	return nil, nil
}

func (d *serverDispatcher) IncomingCalls(context.Context, *protocol.CallHierarchyIncomingCallsParams) ([]protocol.CallHierarchyIncomingCall, error) {
	return nil, nil
}

func (d *serverDispatcher) OutgoingCalls(context.Context, *protocol.CallHierarchyOutgoingCallsParams) ([]protocol.CallHierarchyOutgoingCall, error) {
	return nil, nil
}

func (d *serverDispatcher) SemanticTokensFull(context.Context, *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	return nil, nil
}

func (d *serverDispatcher) SemanticTokensFullDelta(context.Context, *protocol.SemanticTokensDeltaParams) (interface{}, error) {
	return nil, nil
}

func (d *serverDispatcher) SemanticTokensRange(context.Context, *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	return nil, nil
}

func (d *serverDispatcher) SemanticTokensRefresh(context.Context) error {
	return nil
}

func (d *serverDispatcher) LinkedEditingRange(context.Context, *protocol.LinkedEditingRangeParams) (*protocol.LinkedEditingRanges, error) {
	return nil, nil
}

func (d *serverDispatcher) Moniker(context.Context, *protocol.MonikerParams) ([]protocol.Moniker, error) {
	return nil, nil
}

func (d *serverDispatcher) Request(context.Context, string, interface{}) (interface{}, error) {
	return nil, nil
}
