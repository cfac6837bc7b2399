package cachestore

import (
	"fmt"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/aapris/weatherlamp/internal/wl"
)

// Key returns the filename (not a full path) for a cache entry identified
// by cast type and coordinates: "yr-cache-<cast>.<lat>_<lon>.json", mtime
// authoritative for freshness.
func Key(castType wl.CastType, lat, lon float64) string {
	latS := sanitizeCoord(fmt.Sprintf("%.3f", lat))
	lonS := sanitizeCoord(fmt.Sprintf("%.3f", lon))
	return fmt.Sprintf("yr-cache-%s.%s_%s.json", castType, latS, lonS)
}

// HashKey returns a short, collision-resistant key for in-memory indexes
// (the parsed-timeseries LRU) that need a cheap map key rather than a
// filesystem-safe name.
func HashKey(castType wl.CastType, lat, lon float64) uint64 {
	latS := sanitizeCoord(fmt.Sprintf("%.3f", lat))
	lonS := sanitizeCoord(fmt.Sprintf("%.3f", lon))
	return xxhash.Sum64String(fmt.Sprintf("%s|%s|%s", castType, latS, lonS))
}

func sanitizeCoord(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
