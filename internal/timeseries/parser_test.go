package timeseries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aapris/weatherlamp/internal/timeseries"
)

func TestParseNowcast_OneRowPerEntryNullableRate(t *testing.T) {
	body := []byte(`{"properties":{"timeseries":[
		{"time":"2026-07-31T10:00:00Z","data":{"instant":{"details":{"precipitation_rate":0.4}}}},
		{"time":"2026-07-31T10:05:00Z","data":{"instant":{"details":{}}}}
	]}}`)
	tbl, err := timeseries.ParseNowcast(body)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	require.NotNil(t, tbl.Rows[0].PrecNow)
	assert.InDelta(t, 0.4, *tbl.Rows[0].PrecNow, 1e-9)
	assert.Nil(t, tbl.Rows[1].PrecNow)
}

func TestParseForecast_Next1HoursOneRow(t *testing.T) {
	body := []byte(`{"properties":{"timeseries":[
		{"time":"2026-07-31T10:00:00Z","data":{
			"next_1_hours":{"summary":{"symbol_code":"rainshowers_day"},"details":{"precipitation_amount":1.2,"probability_of_precipitation":80}}
		}}
	]}}`)
	tbl, err := timeseries.ParseForecast(body)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "rainshowers", tbl.Rows[0].Symbol)
	assert.InDelta(t, 1.2, *tbl.Rows[0].PrecFore, 1e-9)
	assert.InDelta(t, 80, *tbl.Rows[0].ProbOfPrec, 1e-9)
}

func TestParseForecast_Next6HoursExpandsToSixHourlyRows(t *testing.T) {
	body := []byte(`{"properties":{"timeseries":[
		{"time":"2026-07-31T12:00:00Z","data":{
			"next_6_hours":{"summary":{"symbol_code":"cloudy"},"details":{"precipitation_amount":6.0}}
		}}
	]}}`)
	tbl, err := timeseries.ParseForecast(body)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 6)
	for i, row := range tbl.Rows {
		assert.Equal(t, "cloudy", row.Symbol)
		require.NotNil(t, row.PrecFore)
		assert.InDelta(t, 1.0, *row.PrecFore, 1e-9)
		assert.Equal(t, i, row.Time.Hour()-12)
	}
}

func TestParseForecast_WindFieldsComeFromInstantDetails(t *testing.T) {
	body := []byte(`{"properties":{"timeseries":[
		{"time":"2026-07-31T10:00:00Z","data":{
			"instant":{"details":{"wind_speed":3.5,"wind_speed_of_gust":8.1}},
			"next_1_hours":{"summary":{"symbol_code":"cloudy"},"details":{"precipitation_amount":0.0}}
		}}
	]}}`)
	tbl, err := timeseries.ParseForecast(body)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	require.NotNil(t, tbl.Rows[0].WindSpeed)
	assert.InDelta(t, 3.5, *tbl.Rows[0].WindSpeed, 1e-9)
	require.NotNil(t, tbl.Rows[0].WindGust)
	assert.InDelta(t, 8.1, *tbl.Rows[0].WindGust, 1e-9)
}

func TestParseForecast_EntryWithNeitherIsSkipped(t *testing.T) {
	body := []byte(`{"properties":{"timeseries":[
		{"time":"2026-07-31T12:00:00Z","data":{"instant":{"details":{"wind_speed":3.0}}}}
	]}}`)
	tbl, err := timeseries.ParseForecast(body)
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
}
