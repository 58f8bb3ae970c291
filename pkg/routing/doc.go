// Package routing builds the immutable route table that drives gateway
// configuration synthesis.
//
// A route table is an ordered set of path-prefix routes, each pointing
// at one upstream backend. The table is constructed exactly once at
// startup from the settings' environment snapshot and is never mutated
// afterwards; every later stage (rendering, validation, promotion)
// treats it as a read-only value.
//
// # Upstream Locators
//
// Each route names the environment variable that must carry its
// upstream locator, a URL-shaped string such as
// "https://svc-a.example:443/v1". Parsing strips the scheme and any
// trailing path, then splits the remaining host:port at the last colon:
//
//	loc, err := routing.ParseLocator("https://svc-a.example:443/v1")
//	// loc.Scheme == "https", loc.Host == "svc-a.example", loc.Port == "443"
//
// Bracketed IPv6 literals ("https://[::1]:8443") are supported. Bare
// unbracketed IPv6 literals are rejected with a parse error: splitting
// at the last colon cannot distinguish the port from the final address
// group.
//
// # Fail-Fast Construction
//
// Build fails with *MissingVariableError naming the absent variable the
// moment any route's upstream variable is missing from the environment
// snapshot. There is no defaulting and no placeholder substitution: an
// incomplete table is never produced, so a misconfigured gateway can
// never start with a silently dropped route.
//
// # Relay Routes
//
// A route with class "relay" marks the WebRTC signaling gateway. It
// requires the full set of NAT-traversal parameters (STUN host, TURN
// host, port, user, credential); a partial set is a configuration error
// naming the missing variables.
package routing
