package httpapi

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/aapris/weatherlamp/internal/wl"
)

type wledLED struct {
	Hex string `json:"hex"`
}

type jsonLEDSlot struct {
	Time          *string  `json:"time"`
	YRSymbol      *string  `json:"yr_symbol"`
	WLSymbol      string   `json:"wl_symbol"`
	PrecNow       *float64 `json:"prec_now"`
	PrecFore      *float64 `json:"prec_fore"`
	Precipitation *float64 `json:"precipitation"`
	ProbOfPrec    *float64 `json:"prob_of_prec"`
	WindGust      *float64 `json:"wind_gust"`
	RGB           [3]uint8 `json:"rgb"`
	Hex           string   `json:"hex"`
}

type jsonSegment struct {
	DataStatus wl.DataStatus `json:"data_status"`
	Data       []jsonLEDSlot `json:"data"`
}

func toJSONSlot(s wl.LEDSlot) jsonLEDSlot {
	var timeStr *string
	if s.Time != nil {
		str := s.Time.UTC().Format(time.RFC3339)
		timeStr = &str
	}
	return jsonLEDSlot{
		Time:          timeStr,
		YRSymbol:      s.YRSymbol,
		WLSymbol:      s.WLSymbol,
		PrecNow:       s.PrecNow,
		PrecFore:      s.PrecFore,
		Precipitation: s.Precipitation,
		ProbOfPrec:    s.ProbOfPrec,
		WindGust:      s.WindGust,
		RGB:           [3]uint8{s.RGB.R, s.RGB.G, s.RGB.B},
		Hex:           s.RGB.Hex(),
	}
}

// EncodeJSONWLED renders the compact WLED-JSON format: a list of segments,
// each a list of {hex} objects.
func EncodeJSONWLED(results []wl.SegmentResult) ([]byte, error) {
	out := make([][]wledLED, len(results))
	for i, r := range results {
		leds := make([]wledLED, len(r.Slots))
		for j, s := range r.Slots {
			leds[j] = wledLED{Hex: s.RGB.Hex()}
		}
		out[i] = leds
	}
	return json.Marshal(out)
}

// EncodeJSON renders the verbose format with data_status and full slot
// detail, one object per segment.
func EncodeJSON(results []wl.SegmentResult) ([]byte, error) {
	out := make([]jsonSegment, len(results))
	for i, r := range results {
		slots := make([]jsonLEDSlot, len(r.Slots))
		for j, s := range r.Slots {
			slots[j] = toJSONSlot(s)
		}
		out[i] = jsonSegment{DataStatus: r.DataStatus, Data: slots}
	}
	return json.Marshal(out)
}

// EncodeBin renders the binary format: 3 bytes per LED, all segments
// concatenated in order.
func EncodeBin(results []wl.SegmentResult) []byte {
	n := 0
	for _, r := range results {
		n += len(r.Slots) * 3
	}
	out := make([]byte, 0, n)
	for _, r := range results {
		for _, s := range r.Slots {
			out = append(out, s.RGB.R, s.RGB.G, s.RGB.B)
		}
	}
	return out
}

// EncodeHTML renders a minimal human-readable debug table. Not a styled
// UI — exists so format=html is a valid, non-erroring manual-testing
// choice.
func EncodeHTML(results []wl.SegmentResult) []byte {
	var b strings.Builder
	b.WriteString("<!doctype html><html><body>")
	for i, r := range results {
		fmt.Fprintf(&b, "<h3>segment %d (%s)</h3><table border=1>", i, html.EscapeString(string(r.DataStatus)))
		for _, s := range r.Slots {
			fmt.Fprintf(&b, "<tr><td style=\"background:#%s\">&nbsp;&nbsp;&nbsp;</td><td>%s</td></tr>",
				s.RGB.Hex(), html.EscapeString(s.WLSymbol))
		}
		b.WriteString("</table>")
	}
	b.WriteString("</body></html>")
	return []byte(b.String())
}

// WriteResponse encodes results per opts.Format and writes them to w.
func WriteResponse(w http.ResponseWriter, opts Options, results []wl.SegmentResult) error {
	switch opts.Format {
	case FormatJSONWLED:
		body, err := EncodeJSONWLED(results)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
		_, err = w.Write(body)
		return err
	case FormatJSON:
		body, err := EncodeJSON(results)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
		_, err = w.Write(body)
		return err
	case FormatBin:
		w.Header().Set("Content-Type", "application/octet-stream")
		_, err := w.Write(EncodeBin(results))
		return err
	case FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err := w.Write(EncodeHTML(results))
		return err
	default:
		return validationErr(ErrInvalidFormat, fmt.Sprintf("unknown format %q", opts.Format))
	}
}
