// Edgeboot is the edge-gateway bootstrap.
//
// It synthesizes reverse-proxy and WebRTC-signaling-relay configuration
// from the runtime environment, validates it out-of-place, promotes it
// atomically, and execs the primary listening process so that the
// external process manager's signals reach the real server directly.
//
// Usage:
//
//	# Full bootstrap: render, validate, promote, exec the listener
//	edgeboot run
//
//	# Render to stdout without touching the authoritative path
//	edgeboot render
//
//	# Validate an already-rendered configuration file
//	edgeboot validate /etc/edgeboot/gateway.conf
//
//	# Show version information
//	edgeboot version
//
// Any fatal condition before the primary process binds exits nonzero
// with a category-specific code (see pkg/cli), so an external
// supervisor can distinguish retryable from non-retryable failures.
package main

func main() {
	Execute()
}
