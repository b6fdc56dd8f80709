// Package bootstrap wires the process-wide runtime dependencies.
package bootstrap

import (
	"context"
	"fmt"

	"labook/internal/cache"
	"labook/internal/config"
	"labook/internal/database"
	"labook/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	ApplySchema bool
}

// Runtime holds the connections shared by the process.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	// ShutdownTracing flushes and stops the tracer provider.
	ShutdownTracing observability.ShutdownFunc
}

// InitRuntime sets up tracing, connects to the DB and Redis and optionally
// applies the schema. Redis is optional and may be nil.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    "labook-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.ApplySchema {
		if err := database.ApplySchema(ctx, db, cfg); err != nil {
			_ = database.Close(db)
			_ = shutdownTracing(ctx)
			return nil, fmt.Errorf("schema apply failed: %w", err)
		}
	}

	return &Runtime{
		DB:              db,
		Redis:           cache.Connect(ctx, cfg.RedisURL),
		ShutdownTracing: shutdownTracing,
	}, nil
}
