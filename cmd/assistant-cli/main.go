package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"assistant/config"
	"assistant/internal/adapters/store/filestore"
	"assistant/internal/adapters/store/pgstore"
	"assistant/internal/adapters/store/redistore"
	"assistant/internal/book"
	"assistant/internal/repl"
	"assistant/pkg/logger"
	"assistant/pkg/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.New()

	// Console output owns stdout; logs go to stderr.
	logCfg := cfg.Logger
	if logCfg.Level == "" {
		logCfg.Level = "warn"
	}
	log := logger.New(os.Stderr, logCfg)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("config: invalid", slog.Any("err", err))
		os.Exit(1)
	}

	storage, cleanup, err := newStorage(ctx, cfg)
	if err != nil {
		log.Error("storage: init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer cleanup()

	b, err := book.New(ctx, log, storage)
	if err != nil {
		log.Error("book: load failed", slog.Any("err", err))
		os.Exit(1)
	}

	if err := repl.New(b, os.Stdin, os.Stdout).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("repl: terminated", slog.Any("err", err))
		os.Exit(1)
	}
}

func newStorage(ctx context.Context, cfg *config.App) (book.Storage, func(), error) {
	switch cfg.Storage.Driver {
	case "", "file":
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
		return redistore.New(rdb, ""), func() { _ = rdb.Close() }, nil

	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return pgstore.New(pool), pool.Close, nil
	}
	return nil, nil, errors.New("unknown storage driver " + cfg.Storage.Driver)
}
