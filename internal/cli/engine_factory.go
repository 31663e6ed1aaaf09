package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/config"
	"github.com/aretw0/quill/internal/logging"
	loamAdapter "github.com/aretw0/quill/pkg/adapters/loam"
	redisAdapter "github.com/aretw0/quill/pkg/adapters/redis"
	"github.com/aretw0/quill/pkg/diag"
	"github.com/aretw0/quill/pkg/observability"
	"github.com/aretw0/quill/pkg/record"
)

// Runtime is everything a command needs, built from the config.
type Runtime struct {
	Config  config.Config
	Logger  *slog.Logger
	Engine  *quill.Engine
	Metrics *observability.Metrics

	closers []io.Closer
}

// Close releases backend connections.
func (r *Runtime) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewLogger builds the logger described by cfg. JSON logs go to stderr too.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}
	if cfg.Log.Format == "json" {
		return logging.NewJSON(os.Stderr, level), nil
	}
	return logging.New(level), nil
}

// Build wires the engine with standard CLI conventions:
// diagnostics go to the logger (counted by metrics), definitions come from the
// configured backend, scripts from a Loam repository at scripts.dir.
func Build(ctx context.Context, cfg config.Config, withLoader bool) (*Runtime, error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	sink := diag.NewSlogSink(logger)
	diag.SetDefault(rt.Metrics.Sink(sink))

	opts := []quill.Option{
		quill.WithLogger(logger),
		quill.WithSink(sink),
		quill.WithMetrics(rt.Metrics),
		quill.WithDebug(cfg.Debug),
	}

	if cfg.Traits.Manifest != "" {
		m, err := record.LoadManifest(cfg.Traits.Manifest)
		if err != nil {
			return nil, fmt.Errorf("trait manifest: %w", err)
		}
		opts = append(opts, quill.WithManifest(m))
	}

	if cfg.Definitions.Backend == config.BackendRedis {
		rc := cfg.Definitions.Redis
		defs := redisAdapter.New(rc.Addr, rc.Password, rc.DB,
			redisAdapter.WithPrefix(rc.Prefix),
			redisAdapter.WithTimeout(rc.Timeout),
			redisAdapter.WithSink(rt.Metrics.Sink(sink)),
		)
		pingCtx, cancel := context.WithTimeout(ctx, rc.Timeout)
		defer cancel()
		if err := defs.Ping(pingCtx); err != nil {
			_ = defs.Close()
			return nil, fmt.Errorf("redis definitions at %s: %w", rc.Addr, err)
		}
		rt.closers = append(rt.closers, defs)
		opts = append(opts, quill.WithDefinitions(defs))
		logger.Debug("using redis definitions", "addr", rc.Addr, "key", defs.Key())
	}

	if withLoader {
		loader, err := loamAdapter.Open(cfg.Scripts.Dir)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		opts = append(opts, quill.WithLoader(loader))
	}

	eng, err := quill.New(opts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	rt.Engine = eng
	return rt, nil
}
