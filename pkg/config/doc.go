// Package config constructs the immutable Settings value that drives an
// edgeboot run.
//
// Settings are assembled exactly once, at process start, and threaded
// into every component as an explicit argument. Nothing downstream of
// this package reads the process environment: the environment variables
// that the route definitions and relay parameters reference are captured
// here into a snapshot, so route-table construction, rendering and
// validation are all testable without touching os.Getenv.
//
// # Loading Sequence
//
// Configuration values are applied in the following order (later
// overrides earlier):
//
//  1. Built-in defaults (defaults.go)
//  2. Values from the optional YAML settings file
//  3. EDGEBOOT_* environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Environment Variable Overrides
//
// Operational settings follow the naming convention EDGEBOOT_FIELD:
//
//   - EDGEBOOT_LISTEN_PORT overrides listen_port
//   - EDGEBOOT_CONFIG_DIRS overrides candidate_dirs (colon-separated)
//   - EDGEBOOT_UPSTREAM_TLS_VERIFY overrides upstream_tls_verify
//   - EDGEBOOT_LOG_LEVEL and EDGEBOOT_LOG_FORMAT override logging
//
// Upstream locators are different: they are domain inputs, one variable
// per logical route, named by each route definition (API_UPSTREAM,
// WEB_UPSTREAM, WS_UPSTREAM, SIGNAL_UPSTREAM by default). The relay
// route additionally requires STUN_HOST, TURN_HOST, TURN_PORT,
// TURN_USER and TURN_CREDENTIAL. Absence of a referenced variable is a
// fatal error raised during route-table construction, never here.
//
// # Route Definitions
//
// The default route set models the standard gateway: an API route
// (prefix-stripped), the web root, a WebSocket route, and the WebRTC
// signaling relay route. A routes list in the settings file replaces
// the default set entirely:
//
//	listen_port: 8443
//	routes:
//	  - name: api
//	    path_prefix: /api/
//	    variable: API_UPSTREAM
//	    class: plain
//	    rewrite: true
//	    read_timeout: 5m
package config
