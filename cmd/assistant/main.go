package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"assistant/config"
	httpadp "assistant/internal/adapters/http"
	"assistant/internal/adapters/store/filestore"
	"assistant/internal/adapters/store/pgstore"
	"assistant/internal/adapters/store/redistore"
	"assistant/internal/book"
	"assistant/internal/events"
	"assistant/pkg/httpx"
	"assistant/pkg/jwtauth"
	"assistant/pkg/logger"
	"assistant/pkg/metrics"
	"assistant/pkg/postgres"
)

const shutdownTimeout = 5 * time.Second

func main() {
	start := time.Now()

	// OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config & Logger
	cfg := config.New()
	log := logger.NewLogger(cfg.Logger)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("config: invalid", slog.Any("err", err))
		return
	}

	log.Info("assistant: starting",
		slog.String("http.addr", cfg.HTTP.Addr),
		slog.String("storage.driver", storageDriver(cfg)),
	)
	log.Debug("assistant: config (redacted)", slog.Any("cfg", cfg.Redact()))

	// Metrics
	m, err := metrics.Init(log, metrics.Config{
		Service:   "assistant",
		Namespace: "assistant",
		Addr:      cfg.Metrics.Addr,
	})
	if err != nil {
		log.Warn("metrics: init failed", "err", err)
	} else {
		defer m.Shutdown(context.Background())
	}

	// Storage
	storage, cleanup, err := newStorage(ctx, log, cfg)
	if err != nil {
		log.Error("storage: init failed", slog.Any("err", err))
		return
	}
	defer cleanup()

	// Change events (optional)
	var bookOpts []book.Option
	if cfg.Events.Enabled() {
		kc, err := events.NewClient(cfg.Events.Brokers)
		if err != nil {
			log.Error("events: kafka client failed", slog.Any("err", err))
			return
		}
		pub := events.NewPublisher(log, kc, cfg.Events.Topic)
		defer pub.Close()
		bookOpts = append(bookOpts, book.WithNotifier(pub))
		log.Info("events: publisher enabled", slog.String("topic", cfg.Events.Topic))
	}

	// Domain wiring
	b, err := book.New(ctx, log, storage, bookOpts...)
	if err != nil {
		log.Error("book: load failed", slog.Any("err", err))
		return
	}

	if m != nil {
		metrics.NewSizeGauge(m.Registry(), "assistant", "assistant",
			"contacts", "Number of contacts in the book.", b.Len)
	}

	// Auth (optional)
	var jwtm *jwtauth.Manager
	if cfg.Auth.Enabled() {
		jwtm = jwtauth.New(jwtauth.Config{
			Secret:   cfg.Auth.JWTSecret,
			Issuer:   cfg.Auth.Issuer,
			TokenTTL: cfg.Auth.TokenTTL,
		})
		log.Info("auth: enabled", slog.String("issuer", cfg.Auth.Issuer))
	}

	// HTTP module + server
	var modOpts []httpadp.Option
	if p, ok := storage.(httpadp.Pinger); ok {
		modOpts = append(modOpts, httpadp.WithReadyPing(p))
	}
	mod := httpadp.NewModule(log, b, jwtm, cfg.Auth.PassphraseHash, modOpts...)
	srvOpts := []httpx.Option{httpx.WithModules(mod)}
	if m != nil {
		httpm := metrics.NewHTTPMetrics(m.Registry(), "assistant", "assistant", metrics.WithBuckets(metrics.WebFastBuckets))
		srvOpts = append([]httpx.Option{httpx.WithMiddleware(metrics.GinMiddleware(httpm))}, srvOpts...)
	}
	srv := httpx.NewServer(cfg.HTTP, log, srvOpts...)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http: listen failed", slog.Any("err", err))
			stop()
		}
	}()

	// Wait for signal
	<-ctx.Done()
	log.Info("assistant: shutdown: signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http: graceful shutdown failed", slog.Any("err", err))
	} else {
		log.Info("http: server stopped cleanly")
	}

	log.Info("bye",
		slog.Int("pid", os.Getpid()),
		slog.Int64("uptime_ms", time.Since(start).Milliseconds()),
	)
}

func storageDriver(cfg *config.App) string {
	if cfg.Storage.Driver == "" {
		return "file"
	}
	return cfg.Storage.Driver
}

func newStorage(ctx context.Context, log *slog.Logger, cfg *config.App) (book.Storage, func(), error) {
	switch storageDriver(cfg) {
	case "file":
		log.Info("storage: file", slog.String("path", cfg.Storage.Path))
		return filestore.New(cfg.Storage.Path), func() {}, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		log.Info("storage: redis", slog.String("addr", cfg.Redis.Addr))
		return redistore.New(rdb, ""), func() { _ = rdb.Close() }, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		log.Info("storage: postgres",
			slog.String("host", cfg.Postgres.Host),
			slog.String("db", cfg.Postgres.DBName),
		)
		return pgstore.New(pool), pool.Close, nil
	}
	return nil, nil, errors.New("unknown storage driver " + cfg.Storage.Driver)
}
