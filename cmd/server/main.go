package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mgracar/pinventory/internal/api"
	"github.com/mgracar/pinventory/internal/auth"
	"github.com/mgracar/pinventory/internal/db"
	"github.com/mgracar/pinventory/internal/lookup"
	"github.com/mgracar/pinventory/internal/scan"
	"github.com/mgracar/pinventory/internal/store"
	"github.com/mgracar/pinventory/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// envOr returns the environment variable's value, or the fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Optional .env file for deployments that prefer files over flags.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("pinventory", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", envOr("PINVENTORY_DB", "pinventory.sqlite3"), "")
	fs.StringVar(&dbPath, "d", envOr("PINVENTORY_DB", "pinventory.sqlite3"), "")

	var addr string
	fs.StringVar(&addr, "addr", envOr("PINVENTORY_ADDR", ":8080"), "")
	fs.StringVar(&addr, "a", envOr("PINVENTORY_ADDR", ":8080"), "")

	var pin string
	fs.StringVar(&pin, "pin", os.Getenv("PINVENTORY_PIN"), "")
	fs.StringVar(&pin, "p", os.Getenv("PINVENTORY_PIN"), "")

	var lookupURL string
	fs.StringVar(&lookupURL, "lookup-url", envOr("PINVENTORY_LOOKUP_URL", lookup.DefaultEndpoint), "")

	var noLookup bool
	fs.BoolVar(&noLookup, "no-lookup", os.Getenv("PINVENTORY_NO_LOOKUP") != "", "")

	var logPath string
	fs.StringVar(&logPath, "log", envOr("PINVENTORY_LOG", ""), "")
	fs.StringVar(&logPath, "l", envOr("PINVENTORY_LOG", ""), "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: pinventory [flags]

Flags:
  -d, -db <path>          SQLite database path (default: pinventory.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -p, -pin <pin>          access PIN (required; env: PINVENTORY_PIN)
  -lookup-url <url>       barcode lookup endpoint (default: UPCitemdb trial)
  -no-lookup              disable the external barcode lookup
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Each flag also reads a PINVENTORY_* environment variable, including
from a .env file in the working directory.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	if pin == "" {
		fmt.Fprintln(os.Stderr, "error: a PIN is required (-pin or PINVENTORY_PIN)")
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Hash the PIN once; the plaintext is not needed after this.
	pinHash, err := auth.HashPIN(pin)
	if err != nil {
		slog.Error("failed to hash PIN", "error", err)
		os.Exit(1)
	}

	// Open database and ensure schema (idempotent).
	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", dbPath)

	// Load the session signing secret from the database (auto-generated
	// on first run, so sessions survive restarts).
	sessionSecret, err := store.GetSessionSecret(context.Background(), database)
	if err != nil {
		slog.Error("failed to get session secret", "error", err)
		os.Exit(1)
	}

	scanner := &scan.Scanner{DB: database}
	if !noLookup {
		scanner.Lookup = lookup.NewClient(lookupURL)
	}

	// Set up routers.
	apiRouter := api.NewRouter(database, scanner, sessionSecret, pinHash)
	webRouter, err := web.NewRouter(database, scanner, sessionSecret, pinHash)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	handler := api.LoggingMiddleware(mux)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}
