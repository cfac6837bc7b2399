// Package config loads the service's configuration from the environment,
// using the same getenv/getint/getfloat/getduration helper family the rest
// of this codebase's config layers use.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the composition root needs to wire up the
// service.
type Config struct {
	Addr         string
	LogLevel     string
	EndpointPath string
	Debug        bool

	DataDir     string
	SaveHistory bool

	CacheTTL                 time.Duration
	StaleWarningThreshold    time.Duration
	ErrorThreshold           time.Duration
	UpstreamTimeout          time.Duration
	CacheFillMaxWorkers      int
	CacheFillQueue           int
	ParsedTimeseriesCacheLen int

	MetricsEnabled bool
}

// FromEnv reads DATA_DIR and SAVE_HISTORY per the external contract, plus
// the rest of the ambient-stack variables this service needs to run.
func FromEnv() Config {
	return Config{
		Addr:         getenv("ADDR", ":8090"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		EndpointPath: getenv("ENDPOINT_PATH", "/v2"),
		Debug:        getbool("DEBUG", false),

		DataDir:     getenv("DATA_DIR", "./data"),
		SaveHistory: getenv("SAVE_HISTORY", "") == "1",

		CacheTTL:                 getduration("CACHE_TTL", 120*time.Second),
		StaleWarningThreshold:    getduration("STALE_WARNING_THRESHOLD", 30*time.Minute),
		ErrorThreshold:           getduration("ERROR_THRESHOLD", 3*time.Hour),
		UpstreamTimeout:          getduration("UPSTREAM_TIMEOUT", 10*time.Second),
		CacheFillMaxWorkers:      getint("CACHE_FILL_MAX_WORKERS", 8),
		CacheFillQueue:           getint("CACHE_FILL_QUEUE", 64),
		ParsedTimeseriesCacheLen: getint("PARSED_TIMESERIES_CACHE_LEN", 256),

		MetricsEnabled: getbool("METRICS_ENABLED", true),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
