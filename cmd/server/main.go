package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iudanet/chatbix/internal/crypto"
	"github.com/iudanet/chatbix/internal/server"
	"github.com/iudanet/chatbix/internal/server/chat"
	"github.com/iudanet/chatbix/internal/server/presence"
	"github.com/iudanet/chatbix/internal/server/session"
	"github.com/iudanet/chatbix/internal/server/storage"
	"github.com/iudanet/chatbix/internal/server/storage/postgres"
	"github.com/iudanet/chatbix/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

type config struct {
	listen      string
	dbDriver    string
	databaseURL string
	staticDir   string
	admins      string
	logLevel    string
	logFormat   string
}

// store объединяет оба контракта хранилища и закрытие
type store interface {
	storage.MessageStorage
	storage.UserStorage
	Close() error
}

func main() {
	var cfg config
	showVersion := flag.Bool("version", false, "Show version information")
	flag.StringVar(&cfg.listen, "listen", envOr("LISTEN_URL", "0.0.0.0:8080"), "HTTP listen address")
	flag.StringVar(&cfg.dbDriver, "db-driver", envOr("DATABASE_DRIVER", "sqlite"), "Database driver: sqlite or postgres")
	flag.StringVar(&cfg.databaseURL, "database-url", envOr("DATABASE_URL", "chatbix.db"), "SQLite file path or PostgreSQL DSN")
	flag.StringVar(&cfg.staticDir, "static-dir", envOr("STATIC_ROOT_DIR", ""), "Directory with static files (empty disables)")
	flag.StringVar(&cfg.admins, "admin", envOr("CHATBIX_ADMINS", ""), "Comma-separated usernames promoted to admin")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&cfg.logFormat, "log-format", "json", "Log format: json or text")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger, err := newLogger(cfg.logLevel, cfg.logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg.dbDriver, cfg.databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("database opened", "driver", cfg.dbDriver)

	svc := chat.NewService(
		logger,
		db,
		db,
		crypto.NewPasswordHasher(crypto.DefaultArgon2Params),
		session.New(),
		presence.NewTracker(logger, presence.DefaultExpiration),
	)

	if admins := splitList(cfg.admins); len(admins) > 0 {
		if err := svc.PromoteAdmins(ctx, admins); err != nil {
			return fmt.Errorf("failed to promote admins: %w", err)
		}
	}

	svc.Start(ctx, presence.DefaultSweepInterval)
	defer svc.Stop()

	routerCfg := server.DefaultRouterConfig()
	routerCfg.Version = Version
	routerCfg.StaticDir = cfg.staticDir
	router := server.NewRouter(logger, svc, routerCfg)
	defer router.Stop()

	srv := &http.Server{
		Addr:              cfg.listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.listen, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, driver, url string) (store, error) {
	switch driver {
	case "sqlite":
		s, err := sqlite.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return s, nil
	case "postgres":
		s, err := postgres.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printVersion() {
	fmt.Printf("Chatbix Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
