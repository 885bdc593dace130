package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/zombor/receipt-points/internal/receipt"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("receipt-points")
	var (
		port            = fs.IntLong("port", 8080, "HTTP server port")
		logLevel        = fs.StringLong("log-level", "info", "Log level: debug, info, warn or error")
		logFormat       = fs.StringLong("log-format", "text", "Log format: 'text' or 'json'")
		shutdownTimeout = fs.DurationLong("shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests on shutdown")
		showVersion     = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPT_POINTS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	logger, err := newLogger(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	store := receipt.NewStore()
	service := receipt.NewService(store, logger)
	server := receipt.NewServer(service, logger)

	addr := fmt.Sprintf(":%d", *port)
	errc := make(chan error, 1)
	go func() {
		errc <- server.Start(addr)
	}()

	logger.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
		return
	case <-sigChan:
	}

	logger.Info("Shutting down...", "receipts", store.Len())
	ctx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from the configured level and format
func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: want 'text' or 'json'", format)
	}
}
