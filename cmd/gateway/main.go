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

	"golang.org/x/sync/errgroup"

	"github.com/dcastelone/ep-media-upload/internal/access"
	"github.com/dcastelone/ep-media-upload/internal/broker"
	"github.com/dcastelone/ep-media-upload/internal/config"
	"github.com/dcastelone/ep-media-upload/internal/httpapi"
	"github.com/dcastelone/ep-media-upload/internal/ratelimit"
	"github.com/dcastelone/ep-media-upload/internal/signer"
	"github.com/dcastelone/ep-media-upload/internal/validate"
	"github.com/dcastelone/ep-media-upload/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:       slog.LevelInfo,
		SentryDSN:   cfg.SentryDSN,
		Environment: cfg.Environment,
	}, logger.RequestID())

	sgn, err := buildSigner(cfg)
	if err != nil {
		log.Error("storage init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if sgn == nil {
		// Requests will fail with a 500 until storage is configured; the
		// gateway still serves health checks.
		log.Warn("object storage not configured, signing disabled")
	}

	var oracle access.Oracle
	if cfg.OracleEndpoint != "" {
		oracle = access.NewHTTPOracle(cfg.OracleEndpoint, cfg.OracleTimeout)
	} else {
		// Fail-closed: a nil oracle denies every request.
		log.Warn("access oracle not configured, all requests will be refused")
	}

	limiter := ratelimit.New(ratelimit.Config{
		Window:        cfg.RateLimitWindow,
		Max:           cfg.RateLimitMax,
		SweepInterval: cfg.RateLimitSweep,
	})
	defer limiter.Close()

	gate := access.NewGate(oracle, log)

	b := broker.New(broker.Config{
		KeyPrefix:         cfg.KeyPrefix,
		AllowedExtensions: validate.NewExtensionSet(cfg.AllowedExtensions),
		InlineExtensions:  validate.NewExtensionSet(cfg.InlineExtensions),
		UploadExpiry:      cfg.UploadExpiry,
		DownloadExpiry:    cfg.DownloadExpiry,
	}, limiter, gate, sgn, log)

	handler := httpapi.NewHandler(b, access.Extractor{
		CookieName: cfg.SessionCookieName,
		JWTSecret:  cfg.JWTSecret,
	})

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("gateway listening",
			slog.String("port", cfg.Port),
			slog.String("env", cfg.Environment),
		)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("gateway stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("gateway stopped")
}

// buildSigner selects the storage backend from config. A missing bucket
// leaves signing unconfigured rather than failing startup.
func buildSigner(cfg *config.Config) (signer.Signer, error) {
	if cfg.StorageBucket == "" {
		return nil, nil
	}

	switch cfg.StorageDriver {
	case config.DriverMinio:
		return signer.NewMinio(signer.MinioConfig{
			Endpoint:  cfg.StorageEndpoint,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
			UseSSL:    cfg.StorageUseSSL,
		})
	default:
		return signer.NewS3(signer.S3Config{
			Bucket:    cfg.StorageBucket,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Endpoint:  cfg.StorageEndpoint,
			Region:    cfg.StorageRegion,
			PathStyle: cfg.StoragePathStyle,
		})
	}
}
