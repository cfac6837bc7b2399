package httpapi_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aapris/weatherlamp/internal/httpapi"
	"github.com/aapris/weatherlamp/internal/wl"
)

func sampleResults() []wl.SegmentResult {
	return []wl.SegmentResult{
		{
			Index:      0,
			DataStatus: wl.DataFresh,
			Slots: []wl.LEDSlot{
				{WLSymbol: "dark", RGB: wl.Black},
				{WLSymbol: "dark", RGB: wl.RGB{R: 1, G: 2, B: 3}},
			},
		},
	}
}

func TestEncodeJSONWLED_IsListOfHexLists(t *testing.T) {
	body, err := httpapi.EncodeJSONWLED(sampleResults())
	require.NoError(t, err)

	var out [][]map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out, 1)
	require.Len(t, out[0], 2)
	assert.Equal(t, "000000", out[0][0]["hex"])
	assert.Equal(t, "010203", out[0][1]["hex"])
}

func TestEncodeJSON_IncludesDataStatus(t *testing.T) {
	body, err := httpapi.EncodeJSON(sampleResults())
	require.NoError(t, err)
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "fresh", out[0]["data_status"])
}

func TestEncodeBin_ThreeBytesPerLED(t *testing.T) {
	body := httpapi.EncodeBin(sampleResults())
	assert.Len(t, body, 6)
	assert.Equal(t, []byte{0, 0, 0, 1, 2, 3}, body)
}

func TestEncodeHTML_ContainsHexAndSymbol(t *testing.T) {
	body := httpapi.EncodeHTML(sampleResults())
	assert.Contains(t, string(body), "#010203")
	assert.Contains(t, string(body), "dark")
}

func TestWriteResponse_SetsContentTypePerFormat(t *testing.T) {
	rr := httptest.NewRecorder()
	require.NoError(t, httpapi.WriteResponse(rr, httpapi.Options{Format: httpapi.FormatBin}, sampleResults()))
	assert.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))
}

func TestWriteResponse_UnknownFormatErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	err := httpapi.WriteResponse(rr, httpapi.Options{Format: "bogus"}, sampleResults())
	assert.Error(t, err)
}
