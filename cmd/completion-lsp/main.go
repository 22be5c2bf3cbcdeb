package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/juev/completion-lsp/internal/server"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const (
	flagLogFile  = "log-file"
	flagLogLevel = "log-level"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "completion-lsp",
		Short: "Language server that renders and ranks code completions",
		Long: `completion-lsp serves textDocument/completion over stdio.

Items are resolved from *.symbols.yaml manifests found in the workspace and
from the bindings visible at the cursor.

Examples:
  completion-lsp                                  # serve over stdio
  completion-lsp render main.rs 3:8 -m std.symbols.yaml
  completion-lsp version`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().String(flagLogFile, "", "write JSON logs to this file")
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, warn, error")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the language server protocol over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})
	root.AddCommand(newRenderCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "completion-lsp %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	})
	return root
}

// newLogger discards logs unless a log file is given; stdout carries the
// protocol stream.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	path := flagValue(cmd, flagLogFile)
	if path == "" {
		return zap.NewNop(), nil
	}
	levelText := flagValue(cmd, flagLogLevel)
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	return config.Build()
}

// flagValue looks the flag up through the command's parents.
func flagValue(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	srv := server.NewServer(server.WithLogger(logger))
	handler := protocol.ServerHandler(newServerDispatcher(srv), nil)

	stream := jsonrpc2.NewStream(stdrwc{})
	conn := jsonrpc2.NewConn(stream)

	client := protocol.ClientDispatcher(conn, logger)
	srv.SetClient(client)

	logger.Info("serving", zap.String("version", Version))
	conn.Go(ctx, handler)
	<-conn.Done()

	return conn.Err()
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	return nil
}
