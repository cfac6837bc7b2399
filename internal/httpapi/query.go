// Package httpapi is the thin HTTP-facing layer: query parsing, structured
// validation errors, and the four response encoders. None of this package
// touches the cache or upstream APIs directly — it only shapes the request
// into SegmentSpecs and the orchestrator's output into bytes.
package httpapi

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/aapris/weatherlamp/internal/wl"
)

// MaxForecastDurationHours bounds slot_minutes * led_count per segment.
// Deployment-tunable at build time, not an environment variable.
const MaxForecastDurationHours = 200

// Format is a response encoding choice.
type Format string

const (
	FormatJSONWLED Format = "json_wled"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatBin      Format = "bin"
)

// Options are the sibling query flags alongside "s".
type Options struct {
	Format Format
	Dev    bool
}

var programMinutes = regexp.MustCompile(`^.*?(\d+)min$`)

// ParseRequest parses the "s" query parameter and its sibling flags into
// SegmentSpecs and Options.
func ParseRequest(r *http.Request) ([]wl.SegmentSpec, Options, error) {
	q := r.URL.Query()

	s := q.Get("s")
	if strings.TrimSpace(s) == "" {
		return nil, Options{}, validationErr(ErrMissingSQueryParam, "missing required query parameter 's'")
	}

	format, err := parseFormat(q.Get("format"))
	if err != nil {
		return nil, Options{}, err
	}

	cmName := q.Get("cm")
	if cmName == "" {
		cmName = "plain"
	}
	_, devFlag := q["dev"]
	_, previewFlag := q["cm_preview"]

	tuples := strings.Fields(s)
	specs := make([]wl.SegmentSpec, 0, len(tuples))
	for _, tuple := range tuples {
		spec, err := parseSegment(tuple, cmName, devFlag, previewFlag)
		if err != nil {
			return nil, Options{}, err
		}
		specs = append(specs, spec)
	}

	return specs, Options{Format: format, Dev: devFlag}, nil
}

func parseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "":
		return FormatJSONWLED, nil
	case FormatJSONWLED, FormatJSON, FormatHTML, FormatBin:
		return Format(raw), nil
	default:
		return "", validationErr(ErrInvalidFormat, fmt.Sprintf("unknown format %q", raw))
	}
}

func parseSegment(tuple, cmName string, devFlag, previewFlag bool) (wl.SegmentSpec, error) {
	parts := strings.Split(tuple, ",")
	if len(parts) != 6 {
		return wl.SegmentSpec{}, validationErr(ErrInvalidSegmentFmt, fmt.Sprintf("segment %q must have 6 comma-separated fields", tuple))
	}

	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return wl.SegmentSpec{}, validationErr(ErrInvalidSegmentData, fmt.Sprintf("segment %q: invalid index", tuple))
	}

	programRaw := parts[1]
	var program wl.Program
	if programRaw == "dark" {
		program = wl.Program{Dark: true}
	} else if m := programMinutes.FindStringSubmatch(programRaw); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return wl.SegmentSpec{}, validationErr(ErrInvalidSegmentData, fmt.Sprintf("segment %q: invalid program", tuple))
		}
		program = wl.Program{SlotMinutes: n}
	} else {
		return wl.SegmentSpec{}, validationErr(ErrInvalidSegmentData, fmt.Sprintf("segment %q: program must be 'dark' or match '<N>min'", tuple))
	}

	ledCount, err := strconv.Atoi(parts[2])
	if err != nil || ledCount < 1 {
		return wl.SegmentSpec{}, validationErr(ErrInvalidSegmentData, fmt.Sprintf("segment %q: led_count must be >= 1", tuple))
	}

	reversedRaw, err := strconv.Atoi(parts[3])
	if err != nil || (reversedRaw != 0 && reversedRaw != 1) {
		return wl.SegmentSpec{}, validationErr(ErrInvalidSegmentData, fmt.Sprintf("segment %q: reversed must be 0 or 1", tuple))
	}

	lat, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return wl.SegmentSpec{}, validationErr(ErrInvalidSegmentData, fmt.Sprintf("segment %q: invalid lat", tuple))
	}
	lon, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return wl.SegmentSpec{}, validationErr(ErrInvalidSegmentData, fmt.Sprintf("segment %q: invalid lon", tuple))
	}

	if !program.Dark && float64(program.SlotMinutes*ledCount)/60 > float64(MaxForecastDurationHours) {
		return wl.SegmentSpec{}, validationErr(ErrDurationTooLong, fmt.Sprintf("segment %q exceeds max forecast duration of %d hours", tuple, MaxForecastDurationHours))
	}

	return wl.SegmentSpec{
		Index:     index,
		Program:   program,
		LEDCount:  ledCount,
		Reversed:  reversedRaw == 1,
		Lat:       round3(lat),
		Lon:       round3(lon),
		CMPreview: previewFlag,
		Colormap:  cmName,
		DevMode:   devFlag,
	}, nil
}

func round3(f float64) float64 {
	return float64(int64(f*1000+sign(f)*0.5)) / 1000
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}
