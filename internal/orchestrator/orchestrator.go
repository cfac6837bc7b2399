// Package orchestrator fans a request's segment specs out concurrently,
// preserving output order regardless of completion order, and aborts the
// whole request on the first unrecoverable error from any weather segment.
package orchestrator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aapris/weatherlamp/internal/cachestore"
	"github.com/aapris/weatherlamp/internal/fetchcoord"
	"github.com/aapris/weatherlamp/internal/grid"
	"github.com/aapris/weatherlamp/internal/segment"
	"github.com/aapris/weatherlamp/internal/timeseries"
	"github.com/aapris/weatherlamp/internal/upstream"
	"github.com/aapris/weatherlamp/internal/wl"
)

// Orchestrator drives the full pipeline for a request's segment specs.
type Orchestrator struct {
	Coordinator *fetchcoord.Coordinator
	ParsedCache *timeseries.ParsedCache
	Assembler   *segment.Assembler
	Thresholds  segment.Thresholds
}

// Run resolves every spec, dark/preview inline and weather specs
// concurrently, and returns results in input order.
func (o *Orchestrator) Run(ctx context.Context, specs []wl.SegmentSpec) ([]wl.SegmentResult, error) {
	results := make([]wl.SegmentResult, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		i, spec := i, spec
		switch {
		case spec.Program.Dark:
			results[i] = wl.SegmentResult{Index: spec.Index, DataStatus: wl.DataFresh, Slots: o.Assembler.Dark(spec)}
		case spec.CMPreview:
			results[i] = wl.SegmentResult{Index: spec.Index, DataStatus: wl.DataFresh, Slots: o.Assembler.Preview(spec)}
		default:
			g.Go(func() error {
				res, err := o.runWeather(gctx, spec)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *Orchestrator) runWeather(ctx context.Context, spec wl.SegmentSpec) (wl.SegmentResult, error) {
	var nowcastResult, forecastResult wl.FetchResult

	fg, fctx := errgroup.WithContext(ctx)
	fg.Go(func() error {
		r, err := o.Coordinator.GetNowcast(fctx, spec.Lat, spec.Lon, spec.DevMode, upstream.InNowcastCoverage)
		if err != nil {
			return err
		}
		nowcastResult = r
		return nil
	})
	fg.Go(func() error {
		r, err := o.Coordinator.GetLocationForecast(fctx, spec.Lat, spec.Lon, spec.DevMode)
		if err != nil {
			return err
		}
		forecastResult = r
		return nil
	})
	if err := fg.Wait(); err != nil {
		return wl.SegmentResult{}, err
	}

	status, _ := segment.DeriveStatus(nowcastResult, forecastResult, o.Thresholds)

	if status == wl.DataError {
		return wl.SegmentResult{
			Index:      spec.Index,
			DataStatus: status,
			Slots:      o.Assembler.ErrorPattern(spec),
		}, nil
	}

	now := time.Now().UTC()

	nowTable, err := o.parseCached(wl.CastNowcast, spec.Lat, spec.Lon, nowcastResult)
	if err != nil {
		return wl.SegmentResult{}, err
	}
	foreTable, err := o.parseCached(wl.CastLocationForecast, spec.Lat, spec.Lon, forecastResult)
	if err != nil {
		return wl.SegmentResult{}, err
	}

	g := grid.Combine(nowTable, foreTable, spec.Program.SlotMinutes, spec.LEDCount, now)
	slots := o.Assembler.Weather(spec, g, status)

	return wl.SegmentResult{Index: spec.Index, DataStatus: status, Slots: slots}, nil
}

func (o *Orchestrator) parseCached(castType wl.CastType, lat, lon float64, result wl.FetchResult) (timeseries.Table, error) {
	if result.Source == wl.SourceNone || result.Data == nil {
		return timeseries.Table{}, nil
	}

	key := cachestore.HashKey(castType, lat, lon)
	// A fresh API write invalidates any cached parse for this key; every
	// other source (fresh/stale cache hit) is safe to reuse.
	if result.Source == wl.SourceAPI {
		o.ParsedCache.Purge(key)
	} else if tbl, ok := o.ParsedCache.Get(key); ok {
		return tbl, nil
	}

	var (
		tbl timeseries.Table
		err error
	)
	if castType == wl.CastNowcast {
		tbl, err = timeseries.ParseNowcast(result.Data)
	} else {
		tbl, err = timeseries.ParseForecast(result.Data)
	}
	if err != nil {
		return timeseries.Table{}, err
	}
	o.ParsedCache.Put(key, tbl)
	return tbl, nil
}
