package grid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aapris/weatherlamp/internal/grid"
	"github.com/aapris/weatherlamp/internal/timeseries"
)

func f(v float64) *float64 { return &v }

func TestBoundaryT0_FallsOnOrBeforeNow(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 37, 0, 0, time.UTC)
	t0 := grid.BoundaryT0(now, 15)
	assert.False(t, t0.After(now))
	assert.True(t, t0.Add(15*time.Minute).After(now))
}

func TestBoundaryT0_ExactlyOnBoundary(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 30, 0, 0, time.UTC)
	t0 := grid.BoundaryT0(now, 15)
	assert.Equal(t, now, t0)
}

func TestCombine_ProducesExactSlotCount(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	g := grid.Combine(timeseries.Table{}, timeseries.Table{}, 15, 8, now)
	assert.Equal(t, 8, g.Len())
}

func TestCombine_NowcastIsNotForwardFilled(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	nowTbl := timeseries.Table{Rows: []timeseries.Row{
		{Time: now, PrecNow: f(0.5)},
	}}
	g := grid.Combine(nowTbl, timeseries.Table{}, 15, 4, now)
	require.NotNil(t, g.PrecNow[0])
	assert.InDelta(t, 0.5, *g.PrecNow[0], 1e-9)
	assert.Nil(t, g.PrecNow[1])
	assert.Nil(t, g.PrecNow[2])
	assert.Nil(t, g.PrecNow[3])
}

func TestCombine_ForecastColumnsAreForwardFilled(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	foreTbl := timeseries.Table{Rows: []timeseries.Row{
		{Time: now, PrecFore: f(1.0), Symbol: "cloudy"},
	}}
	g := grid.Combine(timeseries.Table{}, foreTbl, 15, 4, now)
	for i := 0; i < 4; i++ {
		require.NotNil(t, g.PrecFore[i], "slot %d", i)
		assert.InDelta(t, 1.0, *g.PrecFore[i], 1e-9)
		assert.Equal(t, "cloudy", g.Symbol[i])
	}
}

func TestCombine_ForecastRowBeforeWindowSeedsLeadingSlots(t *testing.T) {
	// At 10:45 the window starts mid-hour; the only forecast row is the
	// hourly entry at 10:00, which must still reach every slot via the
	// forward fill.
	now := time.Date(2026, 7, 31, 10, 45, 0, 0, time.UTC)
	foreTbl := timeseries.Table{Rows: []timeseries.Row{
		{Time: time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC), PrecFore: f(0.7), Symbol: "partlycloudy"},
	}}
	g := grid.Combine(timeseries.Table{}, foreTbl, 15, 4, now)
	for i := 0; i < 4; i++ {
		require.NotNil(t, g.PrecFore[i], "slot %d", i)
		assert.InDelta(t, 0.7, *g.PrecFore[i], 1e-9)
		assert.Equal(t, "partlycloudy", g.Symbol[i])
	}
}

func TestCombine_NowcastRowBeforeWindowDoesNotLeakIn(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 45, 0, 0, time.UTC)
	nowTbl := timeseries.Table{Rows: []timeseries.Row{
		{Time: time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC), PrecNow: f(2.0)},
	}}
	g := grid.Combine(nowTbl, timeseries.Table{}, 15, 4, now)
	for i := 0; i < 4; i++ {
		assert.Nil(t, g.PrecNow[i], "slot %d", i)
	}
}

func TestCombine_MaxResampleWithinBucket(t *testing.T) {
	now := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	foreTbl := timeseries.Table{Rows: []timeseries.Row{
		{Time: now, PrecFore: f(0.3)},
		{Time: now.Add(5 * time.Minute), PrecFore: f(0.9)},
	}}
	g := grid.Combine(timeseries.Table{}, foreTbl, 15, 2, now)
	require.NotNil(t, g.PrecFore[0])
	assert.InDelta(t, 0.9, *g.PrecFore[0], 1e-9)
}
