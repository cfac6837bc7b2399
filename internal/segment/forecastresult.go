package segment

import (
	"time"

	"github.com/aapris/weatherlamp/internal/wl"
)

// Thresholds bundle the deployment-tunable freshness thresholds used to
// derive a segment's data_status.
type Thresholds struct {
	StaleWarning time.Duration
	Error        time.Duration
}

// DeriveStatus computes has_data/data_status from the two upstream fetch
// results, per the Forecast Result rules: the nowcast alone is never
// enough — has_data tracks the forecast source only.
func DeriveStatus(nowcast, forecast wl.FetchResult, th Thresholds) (status wl.DataStatus, maxAgeSeconds *float64) {
	hasData := forecast.Source != wl.SourceNone

	var maxAge *float64
	for _, age := range []*float64{nowcast.CacheAgeSeconds, forecast.CacheAgeSeconds} {
		if age == nil {
			continue
		}
		if maxAge == nil || *age > *maxAge {
			v := *age
			maxAge = &v
		}
	}

	switch {
	case !hasData:
		return wl.DataError, maxAge
	case maxAge != nil && time.Duration(*maxAge*float64(time.Second)) > th.Error:
		return wl.DataError, maxAge
	case maxAge != nil && time.Duration(*maxAge*float64(time.Second)) > th.StaleWarning:
		return wl.DataStale, maxAge
	default:
		return wl.DataFresh, maxAge
	}
}
