package app

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/health_companion/config"
	"github.com/Alijeyrad/health_companion/internal/repo"
	"github.com/Alijeyrad/health_companion/internal/service/archive"
	"github.com/Alijeyrad/health_companion/pkg/database"
	"github.com/Alijeyrad/health_companion/pkg/gemini"
	"github.com/Alijeyrad/health_companion/pkg/observability"
	"github.com/Alijeyrad/health_companion/pkg/pdftext"
	redispkg "github.com/Alijeyrad/health_companion/pkg/redis"
	s3pkg "github.com/Alijeyrad/health_companion/pkg/s3"
)

// InfraModule provides all infrastructure dependencies. Optional backends
// (Redis, S3, NATS, Gemini, OTel) are provided as nil when not configured.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideEntClient),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideS3Client),
	fx.Provide(ProvideArchive),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvideGemini),
	fx.Provide(ProvidePDFExtractor),
)

func ProvideEntClient(lc fx.Lifecycle, cfg *config.Config) (*repo.Client, error) {
	client, err := database.NewEntClient(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Database.Migrations.AutoMigrate {
				return nil
			}
			slog.Debug("running schema migration")
			return database.MigrateEnt(ctx, client)
		},
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return client.Close()
		},
	})
	return client, nil
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil || rdb == nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideS3Client(cfg *config.Config) (*s3pkg.Client, error) {
	return s3pkg.New(cfg.S3)
}

func ProvideArchive(s3 *s3pkg.Client) archive.Service {
	if s3 == nil {
		slog.Info("upload archive disabled, s3.bucket not set")
		return archive.New(nil)
	}
	return archive.New(s3)
}

func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL, nats.Name(cfg.Observability.ServiceName))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvideGemini(cfg *config.Config) (*gemini.Client, error) {
	client, err := gemini.New(context.Background(), cfg.Gemini)
	if err != nil {
		return nil, err
	}
	if client == nil {
		slog.Info("gemini disabled, using rule-based extraction and chatbot")
	}
	return client, nil
}

func ProvidePDFExtractor(cfg *config.Config) (*pdftext.Extractor, error) {
	return pdftext.New(cfg.PDF)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
