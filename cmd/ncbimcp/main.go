package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/ncbi-mcp/internal/mcp"
	"github.com/dshills/ncbi-mcp/internal/ncbi"
	"github.com/dshills/ncbi-mcp/internal/ratelimit"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("NCBI MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	// Logs go to stderr only; stdout is reserved for the MCP protocol
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg := ncbi.NewFromEnv()
	logger.Info("ncbi-mcp starting",
		zap.String("version", version),
		zap.String("email", cfg.Email),
		zap.Bool("has_api_key", cfg.APIKey != ""))

	// Single shared limiter for the whole process; every outbound call,
	// across all concurrent tool invocations, passes through it.
	limiter := ratelimit.ForAPIKey(cfg.APIKey != "")
	logger.Info("rate limit configured", zap.Duration("min_interval", limiter.Interval()))

	client := ncbi.NewClient(cfg, limiter, logger)
	server := mcp.NewServer(client, logger)

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("MCP server ready, listening on stdio")
		errChan <- server.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}

// newLogger builds a stderr-only zap logger with the minimum level taken
// from NCBI_LOG_LEVEL (debug, info, warn, error; default info).
func newLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if v := os.Getenv("NCBI_LOG_LEVEL"); v != "" {
		if parsed, err := zapcore.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
