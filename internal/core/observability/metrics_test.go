package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledSkipsRegistration(t *testing.T) {
	enabled.Store(false)
	Init(prometheus.NewRegistry(), false)
	require.False(t, Enabled())

	// observe calls must be no-ops, not panics, when disabled
	ObserveHTTP("GET", "/v2", 200, 0.01)
	IncFetch("nowcast", "api")
	ObserveCacheOp("lookup", 0.001)
	IncClassificationBucket("CLEARSKY")
	IncSegmentDataStatus("fresh")
}

func TestInitEnabledRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg, true)
	require.True(t, Enabled())

	ObserveHTTP("GET", "/v2", 200, 0.01)
	IncFetch("nowcast", "api")
	ObserveCacheOp("lookup", 0.001)
	IncClassificationBucket("CLEARSKY")
	IncSegmentDataStatus("fresh")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}
