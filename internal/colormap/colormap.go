// Package colormap loads named bucket-to-RGB tables from disk and exposes
// the built-in fallback used whenever a requested colormap cannot be found.
package colormap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aapris/weatherlamp/internal/wl"
)

// Bucket is one of the closed set of precipitation/sky classifications.
type Bucket string

const (
	ClearSky      Bucket = "CLEARSKY"
	PartlyCloudy  Bucket = "PARTLYCLOUDY"
	Cloudy        Bucket = "CLOUDY"
	LightRainLT50 Bucket = "LIGHTRAIN_LT50"
	LightRain     Bucket = "LIGHTRAIN"
	Rain          Bucket = "RAIN"
	HeavyRain     Bucket = "HEAVYRAIN"
	VeryHeavyRain Bucket = "VERYHEAVYRAIN"
	Unknown       Bucket = "UNKNOWN"
)

// Order is the fixed display order used by the colormap preview feature.
// It is a slice, not map iteration order, so preview striding is stable.
var Order = []Bucket{
	ClearSky, PartlyCloudy, Cloudy, LightRainLT50, LightRain, Rain, HeavyRain, VeryHeavyRain,
}

// Colormap maps bucket names to RGB triples.
type Colormap map[Bucket]wl.RGB

// rgbColor is one colormap entry as stored on disk: three 0..255
// components, struct-tag validated.
type rgbColor struct {
	R uint8 `json:"r" validate:"gte=0,lte=255"`
	G uint8 `json:"g" validate:"gte=0,lte=255"`
	B uint8 `json:"b" validate:"gte=0,lte=255"`
}

// weatherColorMap is a whole colormap file: a JSON object keyed by bucket name.
type weatherColorMap struct {
	Buckets map[string]rgbColor `validate:"required,dive"`
}

var validate = validator.New()

// Plain is the built-in fallback colormap, compiled in so the service can
// run with an empty or missing colormap directory.
var Plain = Colormap{
	ClearSky:      wl.RGB{R: 3, G: 3, B: 235},
	PartlyCloudy:  wl.RGB{R: 65, G: 126, B: 205},
	Cloudy:        wl.RGB{R: 180, G: 200, B: 200},
	LightRainLT50: wl.RGB{R: 161, G: 228, B: 74},
	LightRain:     wl.RGB{R: 240, G: 240, B: 42},
	Rain:          wl.RGB{R: 241, G: 155, B: 44},
	HeavyRain:     wl.RGB{R: 236, G: 94, B: 42},
	VeryHeavyRain: wl.RGB{R: 234, G: 57, B: 248},
}

// Table is the process-wide, read-only-after-startup set of named
// colormaps.
type Table struct {
	maps map[string]Colormap
}

// Load reads every *.json file in dir as a named colormap. A missing or
// empty dir is not an error: the table always contains "plain".
func Load(dir string) (*Table, error) {
	t := &Table{maps: map[string]Colormap{"plain": Plain}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("colormap: read dir %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		cm, err := loadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("colormap: %s: %w", e.Name(), err)
		}
		t.maps[name] = cm
	}
	return t, nil
}

func loadFile(path string) (Colormap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var parsed map[string]rgbColor
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	wcm := weatherColorMap{Buckets: parsed}
	if err := validate.Struct(wcm); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	cm := make(Colormap, len(parsed))
	for k, v := range parsed {
		cm[Bucket(strings.ToUpper(k))] = wl.RGB{R: v.R, G: v.G, B: v.B}
	}
	return cm, nil
}

// Get returns the named colormap, falling back to "plain" if the name is
// unknown or empty.
func (t *Table) Get(name string) Colormap {
	if name == "" {
		name = "plain"
	}
	if cm, ok := t.maps[name]; ok {
		return cm
	}
	return t.maps["plain"]
}

// RGB looks up a bucket's color. If the colormap has no entry for it, the
// CLOUDY entry is used, and black if CLOUDY is missing too — used for the
// UNKNOWN fail-soft path.
func (cm Colormap) RGB(b Bucket) wl.RGB {
	if v, ok := cm[b]; ok {
		return v
	}
	if v, ok := cm[Cloudy]; ok {
		return v
	}
	return wl.RGB{}
}
