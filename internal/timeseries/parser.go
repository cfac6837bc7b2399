// Package timeseries turns raw upstream JSON into an internal tabular form:
// one row per time, columns present depending on cast type.
package timeseries

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Row is one observation, either a nowcast row (PrecNow only) or a
// forecast row (the rest).
type Row struct {
	Time       time.Time
	PrecNow    *float64
	PrecFore   *float64
	ProbOfPrec *float64
	Symbol     string
	WindSpeed  *float64
	WindGust   *float64
}

// Table is an ordered list of rows, ascending by time.
type Table struct {
	Rows []Row
}

var suffixStrip = regexp.MustCompile(`(?i)_(day|night)$`)

func stripSuffix(symbol string) string {
	return suffixStrip.ReplaceAllString(symbol, "")
}

type rawEnvelope struct {
	Properties struct {
		Timeseries []rawEntry `json:"timeseries"`
	} `json:"properties"`
}

type rawEntry struct {
	Time string `json:"time"`
	Data struct {
		Instant struct {
			Details struct {
				PrecipitationRate *float64 `json:"precipitation_rate"`
				WindSpeed         *float64 `json:"wind_speed"`
				WindSpeedOfGust   *float64 `json:"wind_speed_of_gust"`
			} `json:"details"`
		} `json:"instant"`
		Next1Hours *nextHours `json:"next_1_hours"`
		Next6Hours *nextHours `json:"next_6_hours"`
	} `json:"data"`
}

type nextHours struct {
	Summary struct {
		SymbolCode string `json:"symbol_code"`
	} `json:"summary"`
	Details struct {
		PrecipitationAmount        *float64 `json:"precipitation_amount"`
		ProbabilityOfPrecipitation *float64 `json:"probability_of_precipitation"`
	} `json:"details"`
}

// ParseNowcast converts a raw nowcast API response into a Table of
// {time, prec_now} rows. A missing precipitation_rate yields a null
// PrecNow rather than dropping the row.
func ParseNowcast(body []byte) (Table, error) {
	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Table{}, fmt.Errorf("timeseries: parse nowcast: %w", err)
	}
	rows := make([]Row, 0, len(env.Properties.Timeseries))
	for _, e := range env.Properties.Timeseries {
		t, err := time.Parse(time.RFC3339, e.Time)
		if err != nil {
			continue
		}
		rows = append(rows, Row{Time: t, PrecNow: e.Data.Instant.Details.PrecipitationRate})
	}
	return Table{Rows: rows}, nil
}

// ParseForecast converts a raw locationforecast API response into a Table.
// Entries carrying next_1_hours emit one row; entries carrying only
// next_6_hours expand into six hourly rows, each taking 1/6th of the
// 6-hour precipitation amount. Entries with neither are skipped.
func ParseForecast(body []byte) (Table, error) {
	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Table{}, fmt.Errorf("timeseries: parse forecast: %w", err)
	}

	var rows []Row
	for _, e := range env.Properties.Timeseries {
		t, err := time.Parse(time.RFC3339, e.Time)
		if err != nil {
			continue
		}
		windSpeed := e.Data.Instant.Details.WindSpeed
		windGust := e.Data.Instant.Details.WindSpeedOfGust

		switch {
		case e.Data.Next1Hours != nil:
			nh := e.Data.Next1Hours
			rows = append(rows, Row{
				Time:       t,
				PrecFore:   nh.Details.PrecipitationAmount,
				ProbOfPrec: nh.Details.ProbabilityOfPrecipitation,
				Symbol:     stripSuffix(strings.ToLower(nh.Summary.SymbolCode)),
				WindSpeed:  windSpeed,
				WindGust:   windGust,
			})
		case e.Data.Next6Hours != nil:
			nh := e.Data.Next6Hours
			var perHour *float64
			if nh.Details.PrecipitationAmount != nil {
				v := *nh.Details.PrecipitationAmount / 6
				perHour = &v
			}
			symbol := stripSuffix(strings.ToLower(nh.Summary.SymbolCode))
			for i := range 6 {
				rows = append(rows, Row{
					Time:       t.Add(time.Duration(i) * time.Hour),
					PrecFore:   perHour,
					ProbOfPrec: nh.Details.ProbabilityOfPrecipitation,
					Symbol:     symbol,
					WindSpeed:  windSpeed,
					WindGust:   windGust,
				})
			}
		default:
			continue
		}
	}
	return Table{Rows: rows}, nil
}
