package httpapi_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aapris/weatherlamp/internal/cachestore"
	"github.com/aapris/weatherlamp/internal/colormap"
	"github.com/aapris/weatherlamp/internal/fetchcoord"
	"github.com/aapris/weatherlamp/internal/httpapi"
	"github.com/aapris/weatherlamp/internal/orchestrator"
	"github.com/aapris/weatherlamp/internal/segment"
	"github.com/aapris/weatherlamp/internal/timeseries"
	"github.com/aapris/weatherlamp/internal/upstream"
)

func newTestOrchestrator(t *testing.T) *orchestrator.Orchestrator {
	t.Helper()
	store, err := cachestore.New(t.TempDir(), time.Minute, false, 2, 8)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	parsedCache, err := timeseries.NewParsedCache(32)
	require.NoError(t, err)

	cmTable, err := colormap.Load(t.TempDir())
	require.NoError(t, err)

	return &orchestrator.Orchestrator{
		Coordinator: &fetchcoord.Coordinator{
			Cache:           store,
			Upstream:        upstream.New(nil),
			UpstreamTimeout: time.Second,
			Logger:          zerolog.Nop(),
		},
		ParsedCache: parsedCache,
		Assembler:   &segment.Assembler{Colormaps: cmTable},
		Thresholds:  segment.Thresholds{StaleWarning: 30 * time.Minute, Error: 3 * time.Hour},
	}
}

func TestHandler_DarkSegmentEndToEnd(t *testing.T) {
	h := httpapi.NewHandler(newTestOrchestrator(t), zerolog.Nop())
	r := httptest.NewRequest("GET", "/v2?s=0,dark,5,0,60.17,24.94", nil)
	rr := httptest.NewRecorder()
	h(rr, r)

	assert.Equal(t, 200, rr.Code)
	var out [][]map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Len(t, out[0], 5)
	assert.Equal(t, "000000", out[0][0]["hex"])
}

func TestHandler_WeatherSegmentDevModeEndToEnd(t *testing.T) {
	h := httpapi.NewHandler(newTestOrchestrator(t), zerolog.Nop())
	r := httptest.NewRequest("GET", "/v2?s=0,15min,6,0,60.17,24.94&dev&format=json", nil)
	rr := httptest.NewRecorder()
	h(rr, r)

	assert.Equal(t, 200, rr.Code)
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "fresh", out[0]["data_status"])
	data, ok := out[0]["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 6)
}

func TestHandler_MissingSReturns400WithErrorBody(t *testing.T) {
	h := httpapi.NewHandler(newTestOrchestrator(t), zerolog.Nop())
	r := httptest.NewRequest("GET", "/v2", nil)
	rr := httptest.NewRecorder()
	h(rr, r)

	assert.Equal(t, 400, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, httpapi.ErrMissingSQueryParam, body["error_code"])
}

func TestHandler_ColormapPreviewEndToEnd(t *testing.T) {
	h := httpapi.NewHandler(newTestOrchestrator(t), zerolog.Nop())
	r := httptest.NewRequest("GET", "/v2?s=0,15min,8,0,60.17,24.94&cm_preview", nil)
	rr := httptest.NewRecorder()
	h(rr, r)

	assert.Equal(t, 200, rr.Code)
	var out [][]map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Len(t, out[0], 8)
}
