// Package proxy synthesizes the reverse proxy routing configuration.
package proxy

import (
	"fmt"

	"github.com/imamik/dapphost/internal/config"
)

// Header is one extra header attached to a route's responses.
type Header struct {
	Name  string
	Value string
}

// Route maps a public path prefix onto a local upstream, or onto a static
// response when Static is set.
type Route struct {
	// PathPrefix is the public location matched by the proxy.
	PathPrefix string

	// Upstream is the loopback address proxied to; empty for static routes.
	Upstream string

	// Static, when non-empty, makes the route answer 200 with this body
	// and no upstream.
	Static string

	// CORS attaches browser cross-origin headers and an OPTIONS
	// short-circuit. Only the RPC route is browser-facing.
	CORS bool

	// KeepAlive enables HTTP/1.1 upstream connection reuse.
	KeepAlive bool

	// ExtraHeaders are appended to responses for this route.
	ExtraHeaders []Header
}

// DefaultRoutes returns the fixed route table. The order is part of the
// synthesized output and must stay stable.
func DefaultRoutes() []Route {
	return []Route{
		{
			PathPrefix: "/rpc",
			Upstream:   fmt.Sprintf("127.0.0.1:%d", config.RPCPort),
			CORS:       true,
			KeepAlive:  true,
		},
		{
			PathPrefix: "/ipfs/",
			Upstream:   fmt.Sprintf("127.0.0.1:%d", config.GatewayPort),
		},
		{
			PathPrefix: "/ipns/",
			Upstream:   fmt.Sprintf("127.0.0.1:%d", config.GatewayPort),
		},
		{
			PathPrefix: "/healthz",
			Static:     "ok",
		},
	}
}
