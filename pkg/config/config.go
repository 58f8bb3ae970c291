package config

import "time"

// Route protocol classes. The class decides what the synthesizer emits
// for a route beyond the standard proxy header set.
const (
	ClassPlain     = "plain"
	ClassWebsocket = "websocket"
	ClassRelay     = "relay"
)

// Environment variables carrying the NAT-traversal parameters for the
// signaling relay route. All five are required together whenever the
// route table contains a relay-class route.
const (
	EnvStunHost       = "STUN_HOST"
	EnvTurnHost       = "TURN_HOST"
	EnvTurnPort       = "TURN_PORT"
	EnvTurnUser       = "TURN_USER"
	EnvTurnCredential = "TURN_CREDENTIAL"
)

// ConfigPathToken is the placeholder in primary, auxiliary and check
// command arguments that is replaced with the authoritative config path
// at run time.
const ConfigPathToken = "{config}"

// Command describes an external process invocation.
type Command struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

// ExpandArgs returns the command arguments with every occurrence of
// ConfigPathToken replaced by configPath. The receiver is not modified.
func (c Command) ExpandArgs(configPath string) []string {
	expanded := make([]string, len(c.Args))
	for i, arg := range c.Args {
		if arg == ConfigPathToken {
			expanded[i] = configPath
		} else {
			expanded[i] = arg
		}
	}
	return expanded
}

// RouteDef defines one logical route of the gateway: the externally
// visible path prefix, the environment variable that must carry the
// upstream locator, and how the route is proxied.
type RouteDef struct {
	// Name identifies the route in logs and in generated upstream
	// block names. Must be unique.
	Name string `yaml:"name"`

	// PathPrefix is the externally visible prefix the route matches.
	PathPrefix string `yaml:"path_prefix"`

	// Variable names the environment variable carrying the upstream
	// locator for this route. The variable is required: its absence is
	// a fatal startup error naming the variable.
	Variable string `yaml:"variable"`

	// Class is one of plain, websocket or relay.
	Class string `yaml:"class"`

	// Rewrite strips the matched prefix before forwarding upstream, so
	// the backend receives prefix-agnostic paths.
	Rewrite bool `yaml:"rewrite"`

	// Timeout triple for the emitted proxy rule. Zero values receive
	// defaults during route-table construction, never later.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SendTimeout    time.Duration `yaml:"send_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
}

// LoggingSettings controls the structured logger.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Settings is the single immutable configuration value for a run.
// Construct it with Load; do not mutate it afterwards.
type Settings struct {
	// ListenPort is the port the primary listener binds.
	ListenPort int `yaml:"listen_port"`

	// Routes is the ordered route definition set. A routes list in the
	// settings file replaces the default set entirely.
	Routes []RouteDef `yaml:"routes"`

	// CandidateDirs is the ordered list of directories probed for the
	// pristine template. The first directory containing TemplateName
	// selects the deployment variant; if none does, startup fails.
	CandidateDirs []string `yaml:"candidate_dirs"`

	// TemplateName is the pristine template file name within the
	// selected candidate directory.
	TemplateName string `yaml:"template_name"`

	// OutputName is the authoritative rendered config file name within
	// the selected candidate directory.
	OutputName string `yaml:"output_name"`

	// UpstreamTLSVerify controls certificate verification toward
	// https upstreams. A deployment using self-signed internal
	// certificates sets this to false explicitly; it is never disabled
	// implicitly.
	UpstreamTLSVerify bool `yaml:"upstream_tls_verify"`

	// Primary is the listening process that replaces this one via
	// exec once configuration is promoted.
	Primary Command `yaml:"primary"`

	// Auxiliary commands are started best-effort before the primary
	// exec. A failed auxiliary start is logged, never fatal.
	Auxiliary []Command `yaml:"auxiliary"`

	// CheckCommand, when set, is run against the temporary rendering
	// during validation (e.g. ["nginx", "-t", "-c", "{config}"]).
	CheckCommand []string `yaml:"check_command"`

	Logging LoggingSettings `yaml:"logging"`

	// Env is the captured snapshot of every environment variable the
	// route definitions and relay parameters reference. Only variables
	// present in the environment appear in the map.
	Env map[string]string `yaml:"-"`
}
