package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc"
	"github.com/streamnexus/nexusbackend/config"
	"github.com/streamnexus/nexusbackend/controllers"
	"github.com/streamnexus/nexusbackend/database"
	"github.com/streamnexus/nexusbackend/logger"
	"github.com/streamnexus/nexusbackend/metrics"
	"github.com/streamnexus/nexusbackend/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl := logger.New(cfg.Log, cfg.Environment)
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Error("server exited", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
}

func openRevocations(ctx context.Context, cfg *config.Config, zl *zap.Logger) (utils.RevocationList, func() error, error) {
	if cfg.Redis.Address == "" {
		zl.Info("REDIS_ADDRESS not set; token revocations kept in memory")
		return database.NewMemoryRevocationList(), func() error { return nil }, nil
	}
	rdb, err := database.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	zl.Info("connected to Redis", zap.String("address", cfg.Redis.Address))
	return database.NewRedisRevocationList(rdb), rdb.Close, nil
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := database.Open(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			zl.Warn("close stores", zap.Error(err))
		}
	}()

	revocations, closeRevocations, err := openRevocations(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("open revocation list: %w", err)
	}
	defer func() { _ = closeRevocations() }()

	hasher := utils.NewPasswordHasher(cfg.Bcrypt.Cost)
	app := &controllers.App{
		Users:           st.Users,
		Movies:          st.Movies,
		Passwords:       hasher,
		Tokens:          utils.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL, utils.WithRevocationList(revocations)),
		Schema:          utils.NewSchemaValidator(),
		Logger:          zl,
		Metrics:         metrics.New(prometheus.NewRegistry()),
		RegisterAsAdmin: cfg.Register.AsAdmin,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      controllers.NewRouter(app, cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	var wg conc.WaitGroup
	wg.Go(func() {
		outcome, err := utils.EnsureAdmin(ctx, st.Users, hasher, cfg.Admin.Username, cfg.Admin.Password, zl)
		if err != nil {
			zl.Error("admin bootstrap failed", zap.Error(err))
			return
		}
		zl.Info("admin bootstrap finished", zap.Stringer("outcome", outcome))
	})
	wg.Go(func() {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	})

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warn("graceful shutdown failed", zap.Error(err))
	}
	wg.Wait()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	default:
		return nil
	}
}
