package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aapris/weatherlamp/internal/cachestore"
	"github.com/aapris/weatherlamp/internal/colormap"
	"github.com/aapris/weatherlamp/internal/core/config"
	"github.com/aapris/weatherlamp/internal/core/httpclient"
	"github.com/aapris/weatherlamp/internal/core/observability"
	"github.com/aapris/weatherlamp/internal/core/server"
	"github.com/aapris/weatherlamp/internal/fetchcoord"
	"github.com/aapris/weatherlamp/internal/httpapi"
	"github.com/aapris/weatherlamp/internal/logger"
	"github.com/aapris/weatherlamp/internal/orchestrator"
	"github.com/aapris/weatherlamp/internal/segment"
	"github.com/aapris/weatherlamp/internal/timeseries"
	"github.com/aapris/weatherlamp/internal/upstream"
)

var Version = "dev"

func main() {
	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.Debug,
		Component: "weatherlamp-server",
	}, os.Stdout)
	slogLogger := logger.NewSlog(&zl)
	zl.Info().Str("addr", cfg.Addr).Str("version", Version).Msg("starting weatherlamp-server")

	observability.Init(prometheus.DefaultRegisterer, cfg.MetricsEnabled)

	colormaps, err := colormap.Load(filepath.Join(cfg.DataDir, "colormaps"))
	if err != nil {
		zl.Fatal().Err(err).Msg("loading colormaps failed")
	}

	store, err := cachestore.New(cfg.DataDir, cfg.CacheTTL, cfg.SaveHistory, cfg.CacheFillMaxWorkers, cfg.CacheFillQueue)
	if err != nil {
		zl.Fatal().Err(err).Msg("opening cache store failed")
	}
	defer store.Close()

	parsedCache, err := timeseries.NewParsedCache(cfg.ParsedTimeseriesCacheLen)
	if err != nil {
		zl.Fatal().Err(err).Msg("creating parsed timeseries cache failed")
	}

	upstreamClient := upstream.New(httpclient.NewOutbound())

	coordinator := &fetchcoord.Coordinator{
		Cache:           store,
		Upstream:        upstreamClient,
		UpstreamTimeout: cfg.UpstreamTimeout,
		Logger:          zl,
	}

	orch := &orchestrator.Orchestrator{
		Coordinator: coordinator,
		ParsedCache: parsedCache,
		Assembler:   &segment.Assembler{Colormaps: colormaps, Logger: zl},
		Thresholds: segment.Thresholds{
			StaleWarning: cfg.StaleWarningThreshold,
			Error:        cfg.ErrorThreshold,
		},
	}

	handler := httpapi.NewHandler(orch, zl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, slogLogger, handler); err != nil {
		zl.Fatal().Err(err).Msg("server stopped with error")
	}
	zl.Info().Msg("server stopped")
}
