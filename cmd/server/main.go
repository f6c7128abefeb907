package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/newindiatimber/timbercraft/internal/auth"
	"github.com/newindiatimber/timbercraft/internal/catalog"
	"github.com/newindiatimber/timbercraft/internal/config"
	"github.com/newindiatimber/timbercraft/internal/db"
	"github.com/newindiatimber/timbercraft/internal/estimator"
	"github.com/newindiatimber/timbercraft/internal/inquiry"
	"github.com/newindiatimber/timbercraft/internal/logging"
	"github.com/newindiatimber/timbercraft/internal/migrations"
	"github.com/newindiatimber/timbercraft/internal/notify"
	"github.com/newindiatimber/timbercraft/internal/ratelimit"
	"github.com/newindiatimber/timbercraft/internal/seed"
	"github.com/newindiatimber/timbercraft/internal/seo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.IsDev(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	cfg.Warn(logger)

	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(ctx, database.DB, database.Dialect); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		SiteURL:       cfg.SiteURL,
	})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	logger.Info("seed complete", zap.Int("inserts", stats.Inserts))

	limiter, closeLimiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	materials := estimator.DefaultCatalog()
	srv := &server{
		logger:        logger,
		materials:     materials,
		products:      catalog.NewStore(database, materials),
		inquiries:     inquiry.NewStore(database),
		seo:           seo.NewStore(database),
		auth:          auth.NewService(database, cfg.SessionSecret),
		limiter:       limiter,
		notifier:      newNotifier(cfg, logger),
		siteURL:       cfg.SiteURL,
		secureCookies: !cfg.IsDev(),
		now:           time.Now,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("db_driver", cfg.DBDriver))
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func newLimiter(ctx context.Context, cfg config.Config, logger *zap.Logger) (ratelimit.Limiter, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is empty, submissions are not rate limited")
		return ratelimit.Noop{}, func() {}, nil
	}

	client, err := ratelimit.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect rate limiter: %w", err)
	}
	limiter := ratelimit.NewRedis(client, "submit", cfg.SubmitLimit, cfg.SubmitWindow)
	return limiter, func() { _ = client.Close() }, nil
}

// newNotifier falls back to Noop when telegram is not configured or unreachable.
func newNotifier(cfg config.Config, logger *zap.Logger) notify.Notifier {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		logger.Info("telegram notifications disabled")
		return notify.Noop{}
	}

	n, err := notify.ConnectTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
	if err != nil {
		logger.Error("telegram notifications disabled", zap.Error(err))
		return notify.Noop{}
	}
	return n
}
