package fetchcoord

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aapris/weatherlamp/internal/wl"
)

//go:embed testdata/dev-nowcast.json testdata/dev-locationforecast.json
var devSamples embed.FS

// loadDevSample reads the checked-in sample for castType and rewrites its
// timeseries timestamps to a window ending at now, so offline smoke tests
// stay deterministic without touching the cache directory. Step is 60
// minutes for locationforecast, 5 minutes for nowcast; the last entry
// lands on now floored to that step.
func loadDevSample(castType wl.CastType, now time.Time) ([]byte, error) {
	var (
		file string
		step time.Duration
		end  time.Time
	)
	switch castType {
	case wl.CastNowcast:
		file = "testdata/dev-nowcast.json"
		step = 5 * time.Minute
		end = now.Truncate(5 * time.Minute)
	case wl.CastLocationForecast:
		file = "testdata/dev-locationforecast.json"
		step = time.Hour
		end = now.Truncate(time.Hour)
	default:
		return nil, fmt.Errorf("fetchcoord: unknown cast type %q", castType)
	}

	raw, err := devSamples.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("fetchcoord: read dev sample %s: %w", file, err)
	}

	var envelope struct {
		Type       string `json:"type"`
		Properties struct {
			Timeseries []map[string]json.RawMessage `json:"timeseries"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("fetchcoord: parse dev sample %s: %w", file, err)
	}

	ts := end
	if n := len(envelope.Properties.Timeseries); n > 0 {
		ts = end.Add(-time.Duration(n-1) * step)
	}
	for _, entry := range envelope.Properties.Timeseries {
		stamped, err := json.Marshal(ts.UTC().Format("2006-01-02T15:04:05Z"))
		if err != nil {
			return nil, err
		}
		entry["time"] = stamped
		ts = ts.Add(step)
	}

	out, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("fetchcoord: re-marshal dev sample: %w", err)
	}
	return out, nil
}
