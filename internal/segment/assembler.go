// Package segment assembles one segment's LED slots: the dark shortcut,
// the colormap preview shortcut, and the full weather pipeline with its
// stale/error visual indicators, finishing with the optional reversal that
// is always applied last.
package segment

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aapris/weatherlamp/internal/classify"
	"github.com/aapris/weatherlamp/internal/colormap"
	"github.com/aapris/weatherlamp/internal/grid"
	"github.com/aapris/weatherlamp/internal/wl"
)

// Assembler builds the final LED slot list for a single segment.
type Assembler struct {
	Colormaps *colormap.Table
	Logger    zerolog.Logger
}

// Dark renders a segment of program "dark": all-black, no fetch.
func (a *Assembler) Dark(spec wl.SegmentSpec) []wl.LEDSlot {
	slots := make([]wl.LEDSlot, spec.LEDCount)
	for i := range slots {
		slots[i] = wl.LEDSlot{WLSymbol: "dark", RGB: wl.Black}
	}
	return reverseIfNeeded(slots, spec.Reversed)
}

// Preview renders a colormap preview: strides evenly through the
// colormap's fixed bucket ordering.
func (a *Assembler) Preview(spec wl.SegmentSpec) []wl.LEDSlot {
	cm := a.Colormaps.Get(spec.Colormap)
	n := len(colormap.Order)
	slots := make([]wl.LEDSlot, spec.LEDCount)
	for i := range slots {
		idx := i * n / spec.LEDCount
		if idx >= n {
			idx = n - 1
		}
		bucket := colormap.Order[idx]
		slots[i] = wl.LEDSlot{
			WLSymbol: fmt.Sprintf("colormap_preview_%s", bucket),
			RGB:      cm.RGB(bucket),
		}
	}
	return reverseIfNeeded(slots, spec.Reversed)
}

// ErrorPattern renders the whole-segment alternating hot-pink/black
// pattern used when no usable data exists for a coordinate.
func (a *Assembler) ErrorPattern(spec wl.SegmentSpec) []wl.LEDSlot {
	slots := make([]wl.LEDSlot, spec.LEDCount)
	for i := range slots {
		c := wl.Black
		if i%2 == 0 {
			c = wl.StaleIndicatorColor
		}
		slots[i] = wl.LEDSlot{WLSymbol: "error", RGB: c}
	}
	return reverseIfNeeded(slots, spec.Reversed)
}

// Weather renders a full weather segment from a combined grid, applying
// the stale indicator to the last pre-reversal slot when status is stale.
func (a *Assembler) Weather(spec wl.SegmentSpec, g grid.Grid, status wl.DataStatus) []wl.LEDSlot {
	if status == wl.DataError {
		return a.ErrorPattern(spec)
	}

	cm := a.Colormaps.Get(spec.Colormap)
	slots := make([]wl.LEDSlot, g.Len())
	for i := range slots {
		t := g.Times[i]
		row := classify.Row{PrecNow: g.PrecNow[i], Symbol: g.Symbol[i], ProbOfPrec: g.ProbOfPrec[i]}
		bucket := classify.Classify(row)
		if bucket == colormap.Unknown {
			a.Logger.Warn().Int("segment", spec.Index).Int("slot", i).Str("symbol", g.Symbol[i]).
				Msg("no bucket for slot, rendering fallback color")
		}

		precipitation := g.PrecNow[i]
		if precipitation == nil {
			precipitation = g.PrecFore[i]
		}

		var symbolPtr *string
		if g.Symbol[i] != "" {
			s := g.Symbol[i]
			symbolPtr = &s
		}

		timeCopy := t
		slots[i] = wl.LEDSlot{
			Time:          &timeCopy,
			YRSymbol:      symbolPtr,
			WLSymbol:      string(bucket),
			PrecNow:       g.PrecNow[i],
			PrecFore:      g.PrecFore[i],
			Precipitation: precipitation,
			ProbOfPrec:    g.ProbOfPrec[i],
			WindGust:      g.WindGust[i],
			RGB:           cm.RGB(bucket),
		}
	}

	if status == wl.DataStale && len(slots) > 0 {
		last := len(slots) - 1
		slots[last].WLSymbol = "stale_indicator"
		slots[last].RGB = wl.StaleIndicatorColor
	}

	return reverseIfNeeded(slots, spec.Reversed)
}

func reverseIfNeeded(slots []wl.LEDSlot, reversed bool) []wl.LEDSlot {
	if !reversed {
		return slots
	}
	out := make([]wl.LEDSlot, len(slots))
	for i, s := range slots {
		out[len(slots)-1-i] = s
	}
	return out
}
