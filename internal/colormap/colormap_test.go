package colormap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aapris/weatherlamp/internal/colormap"
	"github.com/aapris/weatherlamp/internal/wl"
)

func TestLoad_MissingDirStillHasPlain(t *testing.T) {
	tbl, err := colormap.Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, colormap.Plain, tbl.Get("plain"))
}

func TestLoad_ReadsNamedColormap(t *testing.T) {
	dir := t.TempDir()
	body := `{"clearsky":{"r":1,"g":2,"b":3},"cloudy":{"r":4,"g":5,"b":6}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "night.json"), []byte(body), 0o644))

	tbl, err := colormap.Load(dir)
	require.NoError(t, err)

	cm := tbl.Get("night")
	assert.Equal(t, wl.RGB{R: 1, G: 2, B: 3}, cm.RGB(colormap.ClearSky))
	assert.Equal(t, wl.RGB{R: 4, G: 5, B: 6}, cm.RGB(colormap.Cloudy))
}

func TestLoad_InvalidComponentFailsValidation(t *testing.T) {
	dir := t.TempDir()
	body := `{"clearsky":{"r":300,"g":2,"b":3}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(body), 0o644))

	_, err := colormap.Load(dir)
	assert.Error(t, err)
}

func TestGet_UnknownNameFallsBackToPlain(t *testing.T) {
	tbl, err := colormap.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, colormap.Plain, tbl.Get("nonexistent"))
	assert.Equal(t, colormap.Plain, tbl.Get(""))
}

func TestColormap_RGB_FallsBackToCloudyThenBlack(t *testing.T) {
	cm := colormap.Colormap{colormap.Cloudy: wl.RGB{R: 9, G: 9, B: 9}}
	assert.Equal(t, wl.RGB{R: 9, G: 9, B: 9}, cm.RGB(colormap.LightRain))

	empty := colormap.Colormap{}
	assert.Equal(t, wl.RGB{}, empty.RGB(colormap.LightRain))
}

func TestOrder_IsStableAndClosed(t *testing.T) {
	require.Len(t, colormap.Order, 8)
	assert.Equal(t, colormap.ClearSky, colormap.Order[0])
	assert.Equal(t, colormap.VeryHeavyRain, colormap.Order[len(colormap.Order)-1])
}
