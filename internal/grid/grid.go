// Package grid builds the fixed-width slot grid that the classifier and
// segment assembler consume: slot_count rows, anchored on a wall-clock
// boundary, merging the nowcast and forecast timeseries tables.
package grid

import (
	"sort"
	"time"

	"github.com/aapris/weatherlamp/internal/timeseries"
)

// Grid is a struct-of-slices table: one slot per index, across all
// columns. No dataframe library exists in the retrieved dependency pool,
// so this is the tabular intermediate.
type Grid struct {
	Times      []time.Time
	PrecNow    []*float64
	PrecFore   []*float64
	ProbOfPrec []*float64
	WindGust   []*float64
	Symbol     []string // "" means absent
}

// Len returns the number of slots.
func (g Grid) Len() int { return len(g.Times) }

// BoundaryT0 computes the smallest boundary T0 such that
// T0 <= now < T0+slotMinutes, by flooring now to the top of the hour and
// then stepping forward by slotMinutes until the window contains now.
func BoundaryT0(now time.Time, slotMinutes int) time.Time {
	t0 := now.Truncate(time.Hour)
	step := time.Duration(slotMinutes) * time.Minute
	for !(!t0.After(now) && t0.Add(step).After(now)) {
		t0 = t0.Add(step)
	}
	return t0
}

// Combine merges a parsed nowcast table and a parsed forecast table (either
// may be empty) into a Grid of exactly slotCount rows.
func Combine(nowTable, foreTable timeseries.Table, slotMinutes, slotCount int, now time.Time) Grid {
	t0 := BoundaryT0(now, slotMinutes)
	step := time.Duration(slotMinutes) * time.Minute

	times := make([]time.Time, slotCount)
	for i := range slotCount {
		times[i] = t0.Add(time.Duration(i) * step)
	}

	precNow, _ := resampleMaxFloat(nowTable.Rows, t0, step, slotCount, func(r timeseries.Row) *float64 { return r.PrecNow })
	// nowcast is intentionally NOT forward-filled: missing slots stay null
	// so the classifier falls through to the forecast branch.

	// Forecast columns forward-fill, seeded from the latest pre-window
	// bucket: the forecast is hourly upstream, so when T0 falls mid-hour
	// the leading slots take their values from the preceding entry.
	precFore, seedPrec := resampleMaxFloat(foreTable.Rows, t0, step, slotCount, func(r timeseries.Row) *float64 { return r.PrecFore })
	probOfPrec, seedProb := resampleMaxFloat(foreTable.Rows, t0, step, slotCount, func(r timeseries.Row) *float64 { return r.ProbOfPrec })
	windGust, seedGust := resampleMaxFloat(foreTable.Rows, t0, step, slotCount, func(r timeseries.Row) *float64 { return r.WindGust })
	symbol, seedSymbol := resampleFirstSymbol(foreTable.Rows, t0, step, slotCount)

	forwardFillFloat(precFore, seedPrec)
	forwardFillFloat(probOfPrec, seedProb)
	forwardFillFloat(windGust, seedGust)
	forwardFillSymbol(symbol, seedSymbol)

	g := Grid{
		Times:      times,
		PrecNow:    precNow,
		PrecFore:   precFore,
		ProbOfPrec: probOfPrec,
		WindGust:   windGust,
		Symbol:     symbol,
	}
	return truncateOrPad(g, slotCount)
}

// bucketIndex maps a row time to its slot bucket. Negative indices are
// valid: they identify pre-window buckets whose aggregates seed the
// forward fill.
func bucketIndex(t, t0 time.Time, step time.Duration, slotCount int) (int, bool) {
	d := t.Sub(t0)
	idx := int(d / step)
	if d < 0 && d%step != 0 {
		idx--
	}
	if idx >= slotCount {
		return 0, false
	}
	return idx, true
}

// resampleMaxFloat aggregates field by max into slot buckets. The second
// return value is the aggregate of the latest pre-window bucket holding
// data, for use as a forward-fill seed.
func resampleMaxFloat(rows []timeseries.Row, t0 time.Time, step time.Duration, slotCount int, field func(timeseries.Row) *float64) ([]*float64, *float64) {
	out := make([]*float64, slotCount)
	var seed *float64
	seedIdx := 0
	for _, r := range rows {
		idx, ok := bucketIndex(r.Time, t0, step, slotCount)
		if !ok {
			continue
		}
		v := field(r)
		if v == nil {
			continue
		}
		val := *v
		if idx < 0 {
			if seed == nil || idx > seedIdx {
				seedIdx, seed = idx, &val
			} else if idx == seedIdx && val > *seed {
				seed = &val
			}
			continue
		}
		if out[idx] == nil || val > *out[idx] {
			out[idx] = &val
		}
	}
	return out, seed
}

// resampleFirstSymbol takes the first symbol observed in each bucket. The
// second return value is the first symbol of the latest pre-window bucket,
// for use as a forward-fill seed.
func resampleFirstSymbol(rows []timeseries.Row, t0 time.Time, step time.Duration, slotCount int) ([]string, string) {
	sorted := make([]timeseries.Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	out := make([]string, slotCount)
	seen := make([]bool, slotCount)
	seed := ""
	seedIdx := 0
	for _, r := range sorted {
		idx, ok := bucketIndex(r.Time, t0, step, slotCount)
		if !ok || r.Symbol == "" {
			continue
		}
		if idx < 0 {
			if seed == "" || idx > seedIdx {
				seed = r.Symbol
				seedIdx = idx
			}
			continue
		}
		if seen[idx] {
			continue
		}
		out[idx] = r.Symbol
		seen[idx] = true
	}
	return out, seed
}

func forwardFillFloat(col []*float64, seed *float64) {
	last := seed
	for i, v := range col {
		if v != nil {
			last = v
			continue
		}
		col[i] = last
	}
}

func forwardFillSymbol(col []string, seed string) {
	last := seed
	for i, v := range col {
		if v != "" {
			last = v
			continue
		}
		col[i] = last
	}
}

// truncateOrPad is the last-resort guard for construction bugs: the
// anchored-bucket approach above always produces exactly slotCount rows,
// but this keeps the documented invariant even if that ever changes.
func truncateOrPad(g Grid, slotCount int) Grid {
	if g.Len() == slotCount {
		return g
	}
	if g.Len() > slotCount {
		g.Times = g.Times[:slotCount]
		g.PrecNow = g.PrecNow[:slotCount]
		g.PrecFore = g.PrecFore[:slotCount]
		g.ProbOfPrec = g.ProbOfPrec[:slotCount]
		g.WindGust = g.WindGust[:slotCount]
		g.Symbol = g.Symbol[:slotCount]
		return g
	}
	for g.Len() < slotCount {
		g.Times = append(g.Times, g.Times[len(g.Times)-1])
		g.PrecNow = append(g.PrecNow, nil)
		g.PrecFore = append(g.PrecFore, nil)
		g.ProbOfPrec = append(g.ProbOfPrec, nil)
		g.WindGust = append(g.WindGust, nil)
		g.Symbol = append(g.Symbol, "")
	}
	return g
}
