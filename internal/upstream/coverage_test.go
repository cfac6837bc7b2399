package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInNowcastCoverage_Helsinki(t *testing.T) {
	assert.True(t, InNowcastCoverage(60.1699, 24.9384))
}

func TestInNowcastCoverage_NewYorkIsOutside(t *testing.T) {
	assert.False(t, InNowcastCoverage(40.7128, -74.0060))
}

func TestInNowcastCoverage_SouthOfPolygonIsOutside(t *testing.T) {
	assert.False(t, InNowcastCoverage(10.0, 24.9384))
}
