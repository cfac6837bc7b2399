// Package httpclient configures the process-wide outbound HTTP client
// shared by every upstream weather fetch.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// NewOutbound builds the shared outbound client. Per-call deadlines are
// enforced by the fetch coordinator's context timeout; the client-level
// timeout is only a backstop above it. Connection pool sizing assumes a
// single upstream host serving both cast types.
func NewOutbound() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   15 * time.Second,
	}
}
