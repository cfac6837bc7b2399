// Package health provides the service's liveness probe.
package health

import "net/http"

// Liveness reports that the process is up. It does not check upstream or
// cache dependencies; a segment assembled with DataStatus error still means
// the process itself is healthy.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
