package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rpggio/smmdesk/internal/app"
	"github.com/rpggio/smmdesk/internal/config"
	"github.com/rpggio/smmdesk/internal/domain/reminder"
	"github.com/rpggio/smmdesk/internal/mcp"
	"github.com/rpggio/smmdesk/internal/notify"
	"github.com/rpggio/smmdesk/internal/seed"
	"github.com/rpggio/smmdesk/internal/sqlite"
	"github.com/rpggio/smmdesk/internal/transport"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return err
	}

	var data *seed.Data
	if cfg.Seed.Enabled {
		if data, err = seed.Load(); err != nil {
			return fmt.Errorf("load seed data: %w", err)
		}
	}

	// Validate has already checked both.
	loc, _ := cfg.Location()
	weekStart, _ := cfg.WeekStart()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := app.New(ctx, db, app.Options{
		Location:  loc,
		WeekStart: weekStart,
		Snooze:    cfg.Reminders.Snooze,
		Seed:      data,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	var resolver *transport.TokenResolver
	if cfg.Auth.Enabled {
		resolver = transport.NewTokenResolver(cfg.Auth.Tokens)
	}

	mcpConfig := mcp.Config{
		Services:      svc,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Version:       version,
		Logger:        logger,
	}
	if resolver != nil {
		mcpConfig.Resolver = resolver
	}
	mcpServer := mcp.NewServer(mcpConfig)

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(ctx, logger, cfg, svc, mcpServer)
	}
	return runHTTPMode(ctx, logger, cfg, svc, mcpServer, resolver)
}

// startScanner runs the reminder scanner until ctx is cancelled.
func startScanner(ctx context.Context, logger *slog.Logger, cfg config.Config, svc *app.Services, notifier reminder.Notifier) {
	scanner := reminder.NewScanner(svc.Reminders, notifier, cfg.Reminders.ScanInterval, cfg.Reminders.LeadTime, logger)
	go func() {
		if err := scanner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("reminder scanner stopped", "error", err)
		}
	}()
}

func runStdioMode(ctx context.Context, logger *slog.Logger, cfg config.Config, svc *app.Services, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	// No websocket clients here; due reminders only reach the log.
	startScanner(ctx, logger, cfg, svc, notify.NewLogNotifier(logger))

	// Run blocks until stdin closes or ctx is cancelled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, cfg config.Config, svc *app.Services, mcpServer *sdkmcp.Server, resolver *transport.TokenResolver) error {
	hub := notify.NewHub(logger, cfg.Server.AllowedOrigins)
	defer hub.Close()

	startScanner(ctx, logger, cfg, svc, hub)

	opts := transport.Options{
		MCP:            mcp.NewHTTPHandler(mcpServer, logger),
		Notifications:  http.HandlerFunc(hub.ServeWS),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	}
	if resolver != nil {
		opts.Auth = transport.AuthMiddleware(resolver)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(svc, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth", cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newLogger logs to a rotating file when log.path is set. Otherwise it logs
// to stdout, or stderr in stdio mode to keep stdout clean for JSON-RPC.
func newLogger(cfg config.Config) (*slog.Logger, func()) {
	var w io.Writer = os.Stdout
	if cfg.Transport.Mode == "stdio" {
		w = os.Stderr
	}
	closeFn := func() {}

	if cfg.Log.Path != "" {
		if err := ensureDir(cfg.Log.Path); err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			file := &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAge:     cfg.Log.MaxAgeDays,
				Compress:   true,
			}
			w = file
			closeFn = func() { _ = file.Close() }
		}
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closeFn
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	return ensureDir(path)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
