// Package http provides a shared HTTP client factory for outbound API calls.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client configured for external API calls.
//
// http.DefaultClient has no timeout, so outbound calls always go through a
// client built here. The transport is set explicitly for connection
// stability and resource management:
//   - Proxy honors the standard environment variables (HTTP_PROXY etc.)
//   - Dialer.Timeout bounds TCP connection establishment
//   - MaxIdleConns/IdleConnTimeout keep a reusable connection pool
//   - TLSHandshakeTimeout bounds the HTTPS handshake
//   - Client.Timeout bounds the whole request and is supplied by the caller
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
