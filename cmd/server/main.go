package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicore-be/internal/auth"
	"medicore-be/internal/cart"
	"medicore-be/internal/catalog"
	"medicore-be/internal/config"
	"medicore-be/internal/db"
	"medicore-be/internal/logger"
	"medicore-be/internal/metrics"
	"medicore-be/internal/middleware"
	"medicore-be/internal/order"
	"medicore-be/internal/prescription"
	"medicore-be/internal/report"
	"medicore-be/internal/rest"
	"medicore-be/internal/storage"
	"medicore-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error {
		return srv.ListenAndServe()
	}
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := initDBFunc(cfg)
	defer database.Close()

	handler, cleanup, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("http server listening", zap.String("addr", srv.Addr))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newServer wires repositories, services and the HTTP surface. The returned
// cleanup releases the upload bucket.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, func(), error) {
	if cfg.JWTSecret == "" {
		logger.L().Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}

	files, err := storage.Open(ctx, cfg.UploadBucketURL)
	if err != nil {
		return nil, nil, err
	}

	reg := metrics.NewRegistry()
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens)

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, catalogSvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartRepo, reg, order.Options{
		DecrementStock: cfg.DecrementStockOnOrder,
	})

	rxRepo := prescription.NewRepository(database)
	rxSvc := prescription.NewService(rxRepo, files, cfg.MaxUploadBytes)

	reportRepo := report.NewRepository(database)
	reportSvc := report.NewService(reportRepo, catalogRepo, report.Options{
		LowStockThreshold:  cfg.LowStockThreshold,
		ExpiryWindowMonths: cfg.ExpiryWindowMonths,
	})

	e := rest.NewServer(rest.Deps{
		Users:          userSvc,
		Catalog:        catalogSvc,
		Carts:          cartSvc,
		Orders:         orderSvc,
		Prescriptions:  rxSvc,
		Reports:        reportSvc,
		Tokens:         tokens,
		Limiter:        middleware.NewRateLimiter(ctx, cfg.InternalSecretKey),
		Metrics:        reg,
		DB:             database,
		CORSOrigin:     cfg.CORSOrigin,
		MaxUploadBytes: cfg.MaxUploadBytes,
		SecureCookies:  cfg.AppEnv == "production",
	})

	cleanup := func() {
		if err := files.Close(); err != nil {
			logger.L().Warn("failed to close upload bucket", zap.Error(err))
		}
	}
	return e, cleanup, nil
}
