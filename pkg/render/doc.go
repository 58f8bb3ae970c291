// Package render synthesizes the gateway configuration text from a
// route table and a pristine template.
//
// Render is a pure function: identical inputs produce byte-identical
// output. The synthesizer never edits a previously rendered file; it
// always starts from the pristine template, so re-rendering on every
// restart is naturally idempotent and can never duplicate directives,
// no matter how many times the gateway has been restarted against the
// same template.
//
// # Template Contract
//
// The template is standard text/template syntax executed with
// missingkey=error. The synthesizer supplies these keys:
//
//	ListenPort            listener port number
//	ConnectionUpgradeMap  the $http_upgrade map block (empty when no
//	                      websocket or relay route exists)
//	UpstreamBlocks        one upstream block per route, keepalive pooled
//	LocationBlocks        one location block per route
//	HealthLocation        the fixed /healthz liveness location
//
// When the route table contains a relay route the NAT-traversal keys
// StunHost, TurnHost, TurnPort, TurnUser and TurnCredential are
// supplied as well. A template placeholder with no corresponding key
// is a *TemplateError, raised before anything touches the filesystem.
//
// # Upgrade Handling
//
// Websocket and relay locations forward Connection from the
// $connection_upgrade map: "upgrade" when the inbound request carries
// an Upgrade header, "close" otherwise. The close fallback matters:
// forwarding "upgrade" unconditionally holds idle keep-alive
// connections open on plain requests.
package render
