package routing

import (
	"fmt"
	"strings"
	"time"

	"github.com/signalmesh/edgeboot/pkg/cli"
	"github.com/signalmesh/edgeboot/pkg/config"
)

// Class is a route's protocol class. It decides what the synthesizer
// emits for the route beyond the standard proxy header set.
type Class string

const (
	// ClassPlain is ordinary HTTP proxying.
	ClassPlain Class = config.ClassPlain
	// ClassWebsocket adds the conditional Upgrade/Connection mapping.
	ClassWebsocket Class = config.ClassWebsocket
	// ClassRelay is the WebRTC signaling gateway: proxied like a
	// websocket route and additionally fed NAT-traversal parameters.
	ClassRelay Class = config.ClassRelay
)

// Timeouts is the connect/send/read triple applied to a route's
// emitted proxy rule. All fields are set by Build; rendering never
// substitutes values of its own.
type Timeouts struct {
	Connect time.Duration
	Send    time.Duration
	Read    time.Duration
}

// Route is one entry of the route table.
type Route struct {
	Name       string
	PathPrefix string
	Upstream   Locator
	Class      Class
	Rewrite    bool
	Timeouts   Timeouts
}

// RelayParams carries the NAT-traversal parameters for the signaling
// relay. All fields are required together.
type RelayParams struct {
	StunHost       string
	TurnHost       string
	TurnPort       string
	TurnUser       string
	TurnCredential string
}

// Table is the immutable route table. Built once at startup; callers
// must not modify the slice returned by Routes.
type Table struct {
	routes []Route
	relay  *RelayParams
}

// Routes returns the routes in definition order.
func (t *Table) Routes() []Route { return t.routes }

// Relay returns the NAT-traversal parameters, or nil when the table
// has no relay-class route.
func (t *Table) Relay() *RelayParams { return t.relay }

// HasClass reports whether any route has the given class.
func (t *Table) HasClass(c Class) bool {
	for _, route := range t.routes {
		if route.Class == c {
			return true
		}
	}
	return false
}

// MissingVariableError reports a route whose upstream environment
// variable is absent. Fatal before any synthesis happens.
type MissingVariableError struct {
	Variable string
	Route    string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing required environment variable %s for route %q", e.Variable, e.Route)
}

// ExitCode classifies missing variables as configuration errors.
func (e *MissingVariableError) ExitCode() int { return cli.ExitConfig }

// IncompleteRelayError reports a relay route whose NAT-traversal
// parameter set is only partially present.
type IncompleteRelayError struct {
	Missing []string
}

func (e *IncompleteRelayError) Error() string {
	return fmt.Sprintf("relay route requires all NAT-traversal parameters, missing: %s",
		strings.Join(e.Missing, ", "))
}

// ExitCode classifies incomplete relay parameters as configuration
// errors.
func (e *IncompleteRelayError) ExitCode() int { return cli.ExitConfig }

// Build constructs the route table from the settings' route
// definitions and environment snapshot.
//
// Build fails on the first route whose upstream variable is absent
// (naming the variable), on any malformed locator, and on duplicate
// path prefixes. If the table contains a relay-class route the full
// RelayParams set is resolved here as well; a partial set fails with
// the missing variable names. No route is ever defaulted or dropped.
func Build(settings *config.Settings) (*Table, error) {
	routes := make([]Route, 0, len(settings.Routes))
	seen := make(map[string]string, len(settings.Routes))

	for _, def := range settings.Routes {
		if prior, dup := seen[def.PathPrefix]; dup {
			return nil, cli.NewConfigError("routes",
				fmt.Sprintf("duplicate path prefix %q (routes %q and %q)", def.PathPrefix, prior, def.Name))
		}
		seen[def.PathPrefix] = def.Name

		raw, ok := settings.Env[def.Variable]
		if !ok {
			return nil, &MissingVariableError{Variable: def.Variable, Route: def.Name}
		}
		locator, err := ParseLocator(raw)
		if err != nil {
			return nil, err
		}

		routes = append(routes, Route{
			Name:       def.Name,
			PathPrefix: def.PathPrefix,
			Upstream:   locator,
			Class:      Class(def.Class),
			Rewrite:    def.Rewrite,
			Timeouts: Timeouts{
				Connect: defaultTimeout(def.ConnectTimeout, config.DefaultConnectTimeout),
				Send:    defaultTimeout(def.SendTimeout, config.DefaultSendTimeout),
				Read:    defaultTimeout(def.ReadTimeout, config.DefaultReadTimeout),
			},
		})
	}

	table := &Table{routes: routes}

	if table.HasClass(ClassRelay) {
		relay, err := buildRelayParams(settings.Env)
		if err != nil {
			return nil, err
		}
		table.relay = relay
	}

	return table, nil
}

// defaultTimeout fills an unset timeout field at construction time.
func defaultTimeout(value, fallback time.Duration) time.Duration {
	if value == 0 {
		return fallback
	}
	return value
}

// buildRelayParams resolves the all-or-nothing NAT-traversal set.
func buildRelayParams(env map[string]string) (*RelayParams, error) {
	var missing []string
	get := func(name string) string {
		value, ok := env[name]
		if !ok || value == "" {
			missing = append(missing, name)
		}
		return value
	}

	params := &RelayParams{
		StunHost:       get(config.EnvStunHost),
		TurnHost:       get(config.EnvTurnHost),
		TurnPort:       get(config.EnvTurnPort),
		TurnUser:       get(config.EnvTurnUser),
		TurnCredential: get(config.EnvTurnCredential),
	}
	if len(missing) > 0 {
		return nil, &IncompleteRelayError{Missing: missing}
	}
	return params, nil
}
