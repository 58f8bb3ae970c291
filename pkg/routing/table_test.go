package routing

import (
	"errors"
	"testing"
	"time"

	"github.com/signalmesh/edgeboot/pkg/cli"
	"github.com/signalmesh/edgeboot/pkg/config"
)

// testSettings builds a Settings with the default route set and the
// given environment snapshot, bypassing config.Load.
func testSettings(env map[string]string) *config.Settings {
	settings := config.DefaultSettings()
	settings.Env = env
	return settings
}

// fullEnv carries every variable the default route set references.
func fullEnv() map[string]string {
	return map[string]string{
		"API_UPSTREAM":    "https://api.internal:8443",
		"WEB_UPSTREAM":    "https://web.internal:443",
		"WS_UPSTREAM":     "https://events.internal:9443",
		"SIGNAL_UPSTREAM": "https://signal.internal:7443",
		"STUN_HOST":       "stun.example",
		"TURN_HOST":       "turn.example",
		"TURN_PORT":       "3478",
		"TURN_USER":       "gateway",
		"TURN_CREDENTIAL": "s3cret",
	}
}

func TestBuild(t *testing.T) {
	table, err := Build(testSettings(fullEnv()))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	routes := table.Routes()
	if len(routes) != 4 {
		t.Fatalf("expected 4 routes, got %d", len(routes))
	}
	if routes[0].Name != "api" || routes[0].Upstream.HostPort() != "api.internal:8443" {
		t.Errorf("routes[0] = %+v", routes[0])
	}
	if routes[2].Class != ClassWebsocket {
		t.Errorf("routes[2].Class = %q, want websocket", routes[2].Class)
	}
	if !table.HasClass(ClassRelay) {
		t.Error("table should contain a relay route")
	}

	relay := table.Relay()
	if relay == nil {
		t.Fatal("Relay() should not be nil")
	}
	if relay.TurnHost != "turn.example" || relay.TurnPort != "3478" {
		t.Errorf("relay = %+v", relay)
	}
}

// Fail-fast completeness: a missing upstream variable fails table
// construction before any rendering can run, naming the variable.
func TestBuild_MissingVariable(t *testing.T) {
	env := fullEnv()
	delete(env, "WS_UPSTREAM")

	_, err := Build(testSettings(env))
	if err == nil {
		t.Fatal("expected error")
	}

	var missingErr *MissingVariableError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected *MissingVariableError, got %T: %v", err, err)
	}
	if missingErr.Variable != "WS_UPSTREAM" {
		t.Errorf("Variable = %q, want WS_UPSTREAM", missingErr.Variable)
	}
	if missingErr.Route != "ws" {
		t.Errorf("Route = %q, want ws", missingErr.Route)
	}
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("ExitCode = %d, want %d", cli.ExitCode(err), cli.ExitConfig)
	}
}

func TestBuild_MalformedLocator(t *testing.T) {
	env := fullEnv()
	env["API_UPSTREAM"] = "https://"

	_, err := Build(testSettings(env))
	var parseErr *LocatorParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *LocatorParseError, got %T: %v", err, err)
	}
}

func TestBuild_DuplicatePrefix(t *testing.T) {
	settings := testSettings(fullEnv())
	settings.Routes = []config.RouteDef{
		{Name: "a", PathPrefix: "/x/", Variable: "API_UPSTREAM", Class: config.ClassPlain},
		{Name: "b", PathPrefix: "/x/", Variable: "WEB_UPSTREAM", Class: config.ClassPlain},
	}

	_, err := Build(settings)
	if err == nil {
		t.Fatal("expected duplicate prefix error")
	}
	if cli.ExitCode(err) != cli.ExitConfig {
		t.Errorf("ExitCode = %d, want %d", cli.ExitCode(err), cli.ExitConfig)
	}
}

// All relay parameters are required together.
func TestBuild_IncompleteRelay(t *testing.T) {
	env := fullEnv()
	delete(env, "TURN_USER")
	delete(env, "TURN_CREDENTIAL")

	_, err := Build(testSettings(env))
	if err == nil {
		t.Fatal("expected error")
	}

	var relayErr *IncompleteRelayError
	if !errors.As(err, &relayErr) {
		t.Fatalf("expected *IncompleteRelayError, got %T: %v", err, err)
	}
	if len(relayErr.Missing) != 2 {
		t.Errorf("Missing = %v, want 2 entries", relayErr.Missing)
	}
}

// Without a relay route the NAT-traversal variables are not required.
func TestBuild_NoRelayRoute(t *testing.T) {
	settings := testSettings(map[string]string{
		"API_UPSTREAM": "https://api.internal:8443",
	})
	settings.Routes = []config.RouteDef{
		{Name: "api", PathPrefix: "/api/", Variable: "API_UPSTREAM", Class: config.ClassPlain, Rewrite: true},
	}

	table, err := Build(settings)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if table.Relay() != nil {
		t.Error("Relay() should be nil without a relay route")
	}
}

// Unset timeout fields receive defaults at construction; explicit
// values pass through untouched.
func TestBuild_TimeoutDefaults(t *testing.T) {
	settings := testSettings(map[string]string{
		"API_UPSTREAM": "https://api.internal:8443",
		"WS_UPSTREAM":  "https://events.internal:9443",
	})
	settings.Routes = []config.RouteDef{
		{Name: "api", PathPrefix: "/api/", Variable: "API_UPSTREAM", Class: config.ClassPlain},
		{Name: "ws", PathPrefix: "/ws/", Variable: "WS_UPSTREAM", Class: config.ClassWebsocket,
			ReadTimeout: 10 * time.Minute},
	}

	table, err := Build(settings)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	api := table.Routes()[0]
	if api.Timeouts.Connect != config.DefaultConnectTimeout {
		t.Errorf("api connect timeout = %v, want default", api.Timeouts.Connect)
	}
	if api.Timeouts.Read != config.DefaultReadTimeout {
		t.Errorf("api read timeout = %v, want default", api.Timeouts.Read)
	}

	ws := table.Routes()[1]
	if ws.Timeouts.Read != 10*time.Minute {
		t.Errorf("ws read timeout = %v, want 10m", ws.Timeouts.Read)
	}
	if ws.Timeouts.Send != config.DefaultSendTimeout {
		t.Errorf("ws send timeout = %v, want default", ws.Timeouts.Send)
	}
}
