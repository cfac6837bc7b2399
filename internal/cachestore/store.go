// Package cachestore is the file-backed cache of raw upstream responses:
// TTL-based freshness, stale retention, and an optional debug history
// archive. All blocking filesystem I/O is dispatched onto a bounded worker
// pool so it never blocks the goroutine driving a request.
package cachestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aapris/weatherlamp/internal/core/observability"
)

// Store is the file-backed cache under DataDir/cache, with an optional
// history archive under DataDir/history.
type Store struct {
	dataDir     string
	saveHistory bool
	ttl         time.Duration

	jobs chan func()
	wg   sync.WaitGroup
}

// Entry is the result of a Lookup.
type Entry struct {
	Present bool
	Age     time.Duration
	Data    []byte
}

// New creates a Store rooted at dataDir, ensuring its cache (and, if
// enabled, history) directories exist. workers/queueSize size the
// offload pool, mirroring the fixed-worker-goroutine cache-fill pool
// pattern used elsewhere in this codebase.
func New(dataDir string, ttl time.Duration, saveHistory bool, workers, queueSize int) (*Store, error) {
	cacheDir := filepath.Join(dataDir, "cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("cachestore: mkdir %s: %w", cacheDir, err)
	}
	if saveHistory {
		if err := os.MkdirAll(filepath.Join(dataDir, "history"), 0o755); err != nil {
			return nil, fmt.Errorf("cachestore: mkdir history: %w", err)
		}
	}

	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}

	s := &Store{
		dataDir:     dataDir,
		saveHistory: saveHistory,
		ttl:         ttl,
		jobs:        make(chan func(), queueSize),
	}
	for range workers {
		s.wg.Add(1)
		go s.worker()
	}
	return s, nil
}

func (s *Store) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		job()
	}
}

// Close drains the worker pool. Safe to call once at shutdown.
func (s *Store) Close() {
	close(s.jobs)
	s.wg.Wait()
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dataDir, "cache", key)
}

// offload runs fn on a pool worker and blocks the caller's goroutine (not
// the scheduler) until it completes, returning fn's error.
func (s *Store) offload(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	defer func() {
		observability.ObserveCacheOp(op, time.Since(start).Seconds())
	}()

	done := make(chan error, 1)
	job := func() { done <- fn() }
	select {
	case s.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Lookup reads a cache entry and reports its age. It does not validate
// JSON shape — Fetch Coordinator decides what freshness means.
func (s *Store) Lookup(ctx context.Context, key string) (Entry, error) {
	var entry Entry
	err := s.offload(ctx, "lookup", func() error {
		p := s.path(key)
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("stat %s: %w", p, err)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		entry = Entry{
			Present: true,
			Age:     time.Since(info.ModTime()),
			Data:    data,
		}
		return nil
	})
	return entry, err
}

// Fresh reports whether age is within the configured TTL.
func (s *Store) Fresh(age time.Duration) bool {
	return age <= s.ttl
}

// Write replaces the cache entry for key with data via a tmp-file + rename,
// so concurrent "last writer wins" refreshes never leave a partially
// written file on disk. If history is enabled, a dated copy is also
// archived (debug-only; core logic must never read it back).
func (s *Store) Write(ctx context.Context, key string, castType string, lat, lon float64, data []byte) error {
	return s.offload(ctx, "write", func() error {
		p := s.path(key)
		tmp := p + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return fmt.Errorf("write tmp %s: %w", tmp, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			return fmt.Errorf("rename %s -> %s: %w", tmp, p, err)
		}
		if s.saveHistory {
			if err := s.appendHistory(castType, lat, lon, data); err != nil {
				return fmt.Errorf("history: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) appendHistory(castType string, lat, lon float64, data []byte) error {
	now := time.Now().UTC()
	dir := filepath.Join(s.dataDir, "history", now.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	ts := now.Format("20060102T150405Z")
	name := fmt.Sprintf("yr-%s-%.3f_%.3f-%s.json", castType, lat, lon, ts)
	p := filepath.Join(dir, name)
	if _, err := os.Stat(p); err == nil {
		return nil // already archived this instant, skip
	}
	return os.WriteFile(p, data, 0o644)
}

// ReadStale reads a cache entry regardless of age and re-validates its JSON
// shape before returning it, used only as an upstream-failure fallback.
func (s *Store) ReadStale(ctx context.Context, key string) ([]byte, bool) {
	entry, err := s.Lookup(ctx, key)
	if err != nil || !entry.Present {
		return nil, false
	}
	if !isValidShape(entry.Data) {
		return nil, false
	}
	return entry.Data, true
}

func isValidShape(data []byte) bool {
	var shape struct {
		Properties struct {
			Timeseries []json.RawMessage `json:"timeseries"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return false
	}
	return len(shape.Properties.Timeseries) > 0
}
