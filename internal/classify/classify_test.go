package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aapris/weatherlamp/internal/classify"
	"github.com/aapris/weatherlamp/internal/colormap"
)

func f(v float64) *float64 { return &v }

func TestClassify_NowcastLadder(t *testing.T) {
	cases := []struct {
		name string
		rate float64
		want colormap.Bucket
	}{
		{"very heavy", 3.1, colormap.VeryHeavyRain},
		{"heavy", 1.6, colormap.HeavyRain},
		{"mid", 0.6, colormap.Rain},
		{"light", 0.1, colormap.LightRain},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := classify.Classify(classify.Row{PrecNow: f(c.rate)})
			assert.Equal(t, c.want, got)
		})
	}
}

func TestClassify_NowcastZeroFallsThroughToSymbol(t *testing.T) {
	got := classify.Classify(classify.Row{PrecNow: f(0.0), Symbol: "clearsky_day"})
	assert.Equal(t, colormap.ClearSky, got)
}

func TestClassify_NowcastZeroWithRainSymbolIsCloudy(t *testing.T) {
	got := classify.Classify(classify.Row{PrecNow: f(0.0), Symbol: "lightrain"})
	assert.Equal(t, colormap.Cloudy, got)
}

func TestClassify_NowcastZeroUnknownSymbolIsUnknown(t *testing.T) {
	got := classify.Classify(classify.Row{PrecNow: f(0.0), Symbol: "bogus"})
	assert.Equal(t, colormap.Unknown, got)
}

func TestClassify_NoNowcastUsesForecastSymbol(t *testing.T) {
	got := classify.Classify(classify.Row{Symbol: "partlycloudy_night"})
	assert.Equal(t, colormap.PartlyCloudy, got)
}

func TestClassify_NoNowcastHeavyRainPrefix(t *testing.T) {
	got := classify.Classify(classify.Row{Symbol: "heavyrainshowers_day"})
	assert.Equal(t, colormap.HeavyRain, got)
}

func TestClassify_NoNowcastLightRainLowProbDowngrades(t *testing.T) {
	got := classify.Classify(classify.Row{Symbol: "lightrain", ProbOfPrec: f(30)})
	assert.Equal(t, colormap.LightRainLT50, got)
}

func TestClassify_NoNowcastLightRainHighProbStaysLightRain(t *testing.T) {
	got := classify.Classify(classify.Row{Symbol: "lightrain", ProbOfPrec: f(80)})
	assert.Equal(t, colormap.LightRain, got)
}

func TestClassify_NoNowcastNoSymbolIsUnknown(t *testing.T) {
	got := classify.Classify(classify.Row{})
	assert.Equal(t, colormap.Unknown, got)
}
