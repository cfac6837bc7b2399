// Package classify maps a slot grid row to a color bucket, preferring the
// nowcast precipitation rate and falling back to the forecast symbol and
// probability.
package classify

import (
	"regexp"
	"strings"

	"github.com/aapris/weatherlamp/internal/colormap"
)

var (
	rainFamily  = regexp.MustCompile(`(?i)rain|sleet|snow`)
	suffixStrip = regexp.MustCompile(`(?i)_(day|night)$`)
)

// symbolToBucket is the fixed, closed-set mapping applied after stripping
// any _day/_night suffix from the symbol.
var symbolToBucket = map[string]colormap.Bucket{
	"clearsky":     colormap.ClearSky,
	"fair":         colormap.ClearSky,
	"partlycloudy": colormap.PartlyCloudy,
	"cloudy":       colormap.Cloudy,
	"fog":          colormap.Cloudy,
}

var (
	lightPrefixes = []string{"lightrain", "lightsleet", "lightsnow"}
	heavyPrefixes = []string{"heavyrain", "heavysleet", "heavysnow"}
	midPrefixes   = []string{"rain", "sleet", "snow"}
)

// lookupSymbol re-strips the _day/_night suffix even though the parser
// already does, so classification stays correct for rows built from raw
// symbol codes.
func lookupSymbol(symbol string) (colormap.Bucket, bool) {
	if symbol == "" {
		return "", false
	}
	s := suffixStrip.ReplaceAllString(strings.ToLower(symbol), "")
	if b, ok := symbolToBucket[s]; ok {
		return b, true
	}
	for _, p := range heavyPrefixes {
		if strings.HasPrefix(s, p) {
			return colormap.HeavyRain, true
		}
	}
	for _, p := range lightPrefixes {
		if strings.HasPrefix(s, p) {
			return colormap.LightRain, true
		}
	}
	for _, p := range midPrefixes {
		if strings.HasPrefix(s, p) {
			return colormap.Rain, true
		}
	}
	return "", false
}

// Row is the minimal input the classifier needs from one slot grid row.
type Row struct {
	PrecNow    *float64
	Symbol     string
	ProbOfPrec *float64
}

// Classify returns the bucket key for one row, per the nowcast-first,
// forecast-fallback decision tree. Rate comparators are strict ">". An
// undeterminable row yields UNKNOWN; callers must fail soft (render via
// the colormap's CLOUDY entry, or black), never error the request.
func Classify(row Row) colormap.Bucket {
	if row.PrecNow != nil {
		p := *row.PrecNow
		switch {
		case p > 3.0:
			return colormap.VeryHeavyRain
		case p > 1.5:
			return colormap.HeavyRain
		case p > 0.5:
			return colormap.Rain
		case p > 0.0:
			return colormap.LightRain
		default: // p == 0.0
			if rainFamily.MatchString(row.Symbol) {
				return colormap.Cloudy
			}
			if b, ok := lookupSymbol(row.Symbol); ok {
				return b
			}
			return colormap.Unknown
		}
	}

	b, ok := lookupSymbol(row.Symbol)
	if !ok {
		return colormap.Unknown
	}
	if b == colormap.LightRain && row.ProbOfPrec != nil && *row.ProbOfPrec <= 50 {
		return colormap.LightRainLT50
	}
	return b
}
