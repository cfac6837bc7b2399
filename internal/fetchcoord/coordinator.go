// Package fetchcoord implements the cache-first-with-stale-fallback
// strategy that sits between the orchestrator and the upstream client.
package fetchcoord

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aapris/weatherlamp/internal/cachestore"
	"github.com/aapris/weatherlamp/internal/core/observability"
	"github.com/aapris/weatherlamp/internal/upstream"
	"github.com/aapris/weatherlamp/internal/wl"
)

// Coordinator ties the Cache Store and Upstream Client together.
type Coordinator struct {
	Cache           *cachestore.Store
	Upstream        *upstream.Client
	UpstreamTimeout time.Duration
	Logger          zerolog.Logger
}

func seconds(d time.Duration) float64 { return d.Seconds() }

// Get runs the cache-first algorithm for one (castType, lat, lon):
//  1. dev mode short-circuits to a rewritten sample, never touching the cache;
//  2. a fresh cache hit returns immediately;
//  3. otherwise the upstream is called, and any failure (network, status,
//     shape) falls back to the stale cache entry if one exists.
func (c *Coordinator) Get(ctx context.Context, castType wl.CastType, lat, lon float64, devMode bool) (wl.FetchResult, error) {
	res, err := c.get(ctx, castType, lat, lon, devMode)
	if err == nil {
		observability.IncFetch(string(castType), string(res.Source))
	}
	return res, err
}

func (c *Coordinator) get(ctx context.Context, castType wl.CastType, lat, lon float64, devMode bool) (wl.FetchResult, error) {
	log := c.Logger.With().Str("cast_type", string(castType)).Logger()

	if devMode {
		data, err := loadDevSample(castType, time.Now())
		if err != nil {
			return wl.FetchResult{}, err
		}
		age := 0.0
		return wl.FetchResult{Data: data, CacheAgeSeconds: &age, Source: wl.SourceFresh}, nil
	}

	key := cachestore.Key(castType, lat, lon)

	entry, err := c.Cache.Lookup(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
	}

	var priorAge *float64
	if entry.Present {
		ageS := seconds(entry.Age)
		priorAge = &ageS
		if c.Cache.Fresh(entry.Age) {
			log.Info().Str("key", key).Float64("age_s", ageS).Msg("fresh cache hit")
			return wl.FetchResult{Data: entry.Data, CacheAgeSeconds: &ageS, Source: wl.SourceFresh}, nil
		}
		log.Info().Str("key", key).Float64("age_s", ageS).Msg("cache stale, attempting upstream refresh")
	}

	res, err := c.Upstream.FetchWithTimeout(ctx, castType, lat, lon, c.UpstreamTimeout)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("upstream fetch failed")
		return c.staleOrNone(ctx, log, key, priorAge), nil
	}
	if res.NoData {
		log.Warn().Str("key", key).Msg("upstream reports no data for coordinate")
		return c.staleOrNone(ctx, log, key, priorAge), nil
	}
	if !res.OK {
		return c.staleOrNone(ctx, log, key, priorAge), nil
	}

	if err := c.Cache.Write(ctx, key, string(castType), lat, lon, res.Body); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	zero := 0.0
	return wl.FetchResult{Data: res.Body, CacheAgeSeconds: &zero, Source: wl.SourceAPI}, nil
}

func (c *Coordinator) staleOrNone(ctx context.Context, log zerolog.Logger, key string, age *float64) wl.FetchResult {
	if data, ok := c.Cache.ReadStale(ctx, key); ok {
		log.Warn().Str("key", key).Msg("serving stale cache after upstream failure")
		return wl.FetchResult{Data: data, CacheAgeSeconds: age, Source: wl.SourceStale}
	}
	log.Error().Str("key", key).Msg("no data available: upstream failed and no stale cache")
	return wl.FetchResult{Source: wl.SourceNone}
}

// GetNowcast is Get for the nowcast API, gated by the coverage polygon.
func (c *Coordinator) GetNowcast(ctx context.Context, lat, lon float64, devMode bool, inCoverage func(lat, lon float64) bool) (wl.FetchResult, error) {
	if !devMode && !inCoverage(lat, lon) {
		return wl.FetchResult{Source: wl.SourceNone}, nil
	}
	return c.Get(ctx, wl.CastNowcast, lat, lon, devMode)
}

// GetLocationForecast is Get for the locationforecast API.
func (c *Coordinator) GetLocationForecast(ctx context.Context, lat, lon float64, devMode bool) (wl.FetchResult, error) {
	return c.Get(ctx, wl.CastLocationForecast, lat, lon, devMode)
}
