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

	"homecare-admin/internal/common/database"
	"homecare-admin/internal/common/logger"
	"homecare-admin/internal/config"
	httpapi "homecare-admin/internal/http"
	"homecare-admin/internal/repository"
	"homecare-admin/internal/service"
	"homecare-admin/internal/store"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("homecare-admin exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)
	log.Info("Database connected", zap.String("dialect", string(db.Dialect())))

	if err := repository.EnsureSchema(ctx, db); err != nil {
		return err
	}

	// flash 提示：启用 Redis 时多实例共享，否则进程内存
	var kv store.KV = store.NewMemoryKV()
	if cfg.Redis.Enabled {
		client, err := store.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		kv = store.NewRedisKV(client)
		log.Info("Redis enabled for flash notices", zap.String("addr", cfg.Redis.Addr))
	}
	flash := store.NewFlashStore(kv, cfg.Flash.TTL)

	svcs := service.NewServices(service.Deps{Store: repository.NewStore(db), Logger: log})
	srv := service.NewServer(cfg.HTTP.Addr, httpapi.NewAPI(cfg.ServiceName, svcs, flash, log), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop http server: %w", err)
	}
	return nil
}
