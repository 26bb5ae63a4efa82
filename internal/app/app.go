package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/autoposts/titlegen-backend/internal/adapter/postgres"
	licenserepo "github.com/autoposts/titlegen-backend/internal/adapter/postgres/license"
	"github.com/autoposts/titlegen-backend/internal/adapter/postgres/queuetitle"
	usagerepo "github.com/autoposts/titlegen-backend/internal/adapter/postgres/usage"
	"github.com/autoposts/titlegen-backend/internal/adapter/provider/openai"
	"github.com/autoposts/titlegen-backend/internal/config"
	licensesvc "github.com/autoposts/titlegen-backend/internal/service/license"
	titlesvc "github.com/autoposts/titlegen-backend/internal/service/title"
	"github.com/autoposts/titlegen-backend/internal/transport/middleware"
	"github.com/autoposts/titlegen-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// storage and provider adapters into the services, starts the background
// TTL sweeper, and serves HTTP until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	queueRepo := queuetitle.New(pool, cfg.Generation.QueueTTL)
	licRepo := licenserepo.New(pool)
	usgRepo := usagerepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	genClient := openai.NewClient(cfg.OpenAI, logger)

	licService := licensesvc.NewService(logger, licRepo)
	titleService := titlesvc.NewService(
		logger, cfg.Generation, queueRepo, genClient, usgRepo, licRepo, txManager,
	)

	router := rest.NewRouter(rest.RouterDeps{
		Titles:    rest.NewTitleHandler(titleService, cfg.Generation.SimilarityThreshold, logger),
		Campaigns: rest.NewCampaignHandler(titleService, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Auth:      middleware.LicenseAuth(licService),
		Base: middleware.Chain(
			middleware.RequestID,
			middleware.Recovery(logger),
			middleware.Logger(logger),
		),
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sweeperDone := startSweeper(ctx, logger, titleService, cfg.Generation.SweepInterval)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	<-sweeperDone
	return nil
}

// titleSweeper is the slice of the title service the sweeper needs.
type titleSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// startSweeper launches the periodic TTL sweep so retention holds even for
// campaigns that stop receiving traffic. The returned channel closes when
// the sweeper has exited.
func startSweeper(ctx context.Context, logger *slog.Logger, svc titleSweeper, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := svc.SweepExpired(ctx); err != nil {
					logger.Warn("background sweep failed", slog.String("error", err.Error()))
				}
			}
		}
	}()

	return done
}
