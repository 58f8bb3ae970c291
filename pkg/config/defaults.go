package config

import "time"

// Default values for settings fields.
const (
	DefaultListenPort   = 8080
	DefaultTemplateName = "gateway.conf.tmpl"
	DefaultOutputName   = "gateway.conf"

	// Timeout triple applied to a route whose definition leaves the
	// corresponding field unset.
	DefaultConnectTimeout = 60 * time.Second
	DefaultSendTimeout    = 60 * time.Second
	DefaultReadTimeout    = 60 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// DefaultCandidateDirs is the ordered template discovery list covering
// the supported base-image layouts.
func DefaultCandidateDirs() []string {
	return []string{
		"/etc/edgeboot",
		"/etc/nginx/conf.d",
		"/usr/local/openresty/nginx/conf",
	}
}

// DefaultRoutes is the standard gateway route set: API (prefix
// stripped), web root, WebSocket, and the WebRTC signaling relay.
func DefaultRoutes() []RouteDef {
	return []RouteDef{
		{Name: "api", PathPrefix: "/api/", Variable: "API_UPSTREAM", Class: ClassPlain, Rewrite: true},
		{Name: "web", PathPrefix: "/", Variable: "WEB_UPSTREAM", Class: ClassPlain},
		{Name: "ws", PathPrefix: "/ws/", Variable: "WS_UPSTREAM", Class: ClassWebsocket, Rewrite: true},
		{Name: "signal", PathPrefix: "/signal/", Variable: "SIGNAL_UPSTREAM", Class: ClassRelay, Rewrite: true},
	}
}

// DefaultSettings returns a Settings populated with defaults. Load
// unmarshals the settings file over this value, so file values override
// defaults field by field.
func DefaultSettings() *Settings {
	return &Settings{
		ListenPort:        DefaultListenPort,
		Routes:            DefaultRoutes(),
		CandidateDirs:     DefaultCandidateDirs(),
		TemplateName:      DefaultTemplateName,
		OutputName:        DefaultOutputName,
		UpstreamTLSVerify: true,
		Primary: Command{
			Path: "nginx",
			Args: []string{"-g", "daemon off;", "-c", ConfigPathToken},
		},
		Logging: LoggingSettings{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
