// Package wl holds the domain types shared across the forecast composition
// pipeline: segment specs coming in, LED slots going out.
package wl

import "time"

// RGB is a single LED color. Components are 0..255.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hex renders the color as a lowercase "rrggbb" string.
func (c RGB) Hex() string {
	const hexdigits = "0123456789abcdef"
	b := [6]byte{
		hexdigits[c.R>>4], hexdigits[c.R&0xf],
		hexdigits[c.G>>4], hexdigits[c.G&0xf],
		hexdigits[c.B>>4], hexdigits[c.B&0xf],
	}
	return string(b[:])
}

var (
	// Black is the dark/off LED color.
	Black = RGB{0, 0, 0}
	// StaleIndicatorColor marks a slot whose underlying data is older than
	// the stale warning threshold.
	StaleIndicatorColor = RGB{255, 0, 128}
)

// Program describes what a segment should display: "dark" or a weather
// program with a slot duration in minutes.
type Program struct {
	Dark        bool
	SlotMinutes int
}

// SegmentSpec is one element of the incoming request, after parsing and
// coordinate rounding.
type SegmentSpec struct {
	Index     int
	Program   Program
	LEDCount  int
	Reversed  bool
	Lat       float64
	Lon       float64
	CMPreview bool
	Colormap  string
	DevMode   bool
}

// DataStatus classifies how trustworthy a segment's weather data is.
type DataStatus string

const (
	DataFresh DataStatus = "fresh"
	DataStale DataStatus = "stale"
	DataError DataStatus = "error"
)

// LEDSlot is one output LED: a color plus the data that produced it.
type LEDSlot struct {
	Time          *time.Time
	YRSymbol      *string
	WLSymbol      string
	PrecNow       *float64
	PrecFore      *float64
	Precipitation *float64
	ProbOfPrec    *float64
	WindGust      *float64
	RGB           RGB
}

// SegmentResult is the per-segment output of the orchestrator.
type SegmentResult struct {
	Index      int
	DataStatus DataStatus
	Slots      []LEDSlot
}

// FetchResult is the outcome of a single cache-first upstream fetch.
type FetchResult struct {
	Data            []byte
	CacheAgeSeconds *float64
	Source          FetchSource
}

// FetchSource records where a FetchResult's bytes came from.
type FetchSource string

const (
	SourceFresh FetchSource = "cache_fresh"
	SourceAPI   FetchSource = "api"
	SourceStale FetchSource = "cache_stale"
	SourceNone  FetchSource = "none"
)

// CastType distinguishes the two upstream APIs.
type CastType string

const (
	CastNowcast          CastType = "nowcast"
	CastLocationForecast CastType = "locationforecast"
)
