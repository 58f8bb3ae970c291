package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signalmesh/edgeboot/pkg/cli"
)

// LookupFunc resolves one environment variable, os.LookupEnv-shaped.
// Tests supply a map-backed lookup instead of the process environment.
type LookupFunc func(name string) (string, bool)

// MapLookup returns a LookupFunc backed by a map. Intended for tests.
func MapLookup(env map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}
}

// Load builds the immutable Settings value for this run.
//
// The loading sequence is defaults, then the optional YAML settings
// file at path (empty path skips the file), then EDGEBOOT_* environment
// overrides, then validation. Finally the environment variables that
// the route definitions and relay parameters reference are captured
// into the Env snapshot; downstream packages read only the snapshot.
func Load(path string, lookup LookupFunc) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, cli.NewConfigError("", fmt.Sprintf("failed to read settings file %q: %v", path, err))
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, cli.NewConfigError("", fmt.Sprintf("failed to parse settings file %q: %v", path, err))
		}
	}

	if err := applyEnvOverrides(settings, lookup); err != nil {
		return nil, err
	}

	if err := validate(settings); err != nil {
		return nil, err
	}

	captureEnv(settings, lookup)
	return settings, nil
}

// applyEnvOverrides applies EDGEBOOT_* operational overrides.
// Environment variables always take precedence over file values.
func applyEnvOverrides(settings *Settings, lookup LookupFunc) error {
	if val, ok := lookup("EDGEBOOT_LISTEN_PORT"); ok {
		port, err := strconv.Atoi(val)
		if err != nil {
			return cli.NewConfigError("EDGEBOOT_LISTEN_PORT", fmt.Sprintf("not a number: %q", val))
		}
		settings.ListenPort = port
	}
	if val, ok := lookup("EDGEBOOT_CONFIG_DIRS"); ok {
		dirs := make([]string, 0, 4)
		for _, dir := range strings.Split(val, ":") {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
		settings.CandidateDirs = dirs
	}
	if val, ok := lookup("EDGEBOOT_TEMPLATE_NAME"); ok {
		settings.TemplateName = val
	}
	if val, ok := lookup("EDGEBOOT_OUTPUT_NAME"); ok {
		settings.OutputName = val
	}
	if val, ok := lookup("EDGEBOOT_UPSTREAM_TLS_VERIFY"); ok {
		verify, err := strconv.ParseBool(val)
		if err != nil {
			return cli.NewConfigError("EDGEBOOT_UPSTREAM_TLS_VERIFY", fmt.Sprintf("not a boolean: %q", val))
		}
		settings.UpstreamTLSVerify = verify
	}
	if val, ok := lookup("EDGEBOOT_LOG_LEVEL"); ok {
		settings.Logging.Level = val
	}
	if val, ok := lookup("EDGEBOOT_LOG_FORMAT"); ok {
		settings.Logging.Format = val
	}
	return nil
}

// validate checks the structural shape of the settings. Route-table
// invariants (duplicate prefixes, missing upstream variables) belong to
// routing.Build; this only rejects settings that are malformed on
// their face.
func validate(settings *Settings) error {
	if settings.ListenPort < 1 || settings.ListenPort > 65535 {
		return cli.NewConfigError("listen_port", fmt.Sprintf("port %d out of range 1-65535", settings.ListenPort))
	}
	if len(settings.Routes) == 0 {
		return cli.NewConfigError("routes", "at least one route is required")
	}
	if len(settings.CandidateDirs) == 0 {
		return cli.NewConfigError("candidate_dirs", "at least one candidate directory is required")
	}
	if settings.TemplateName == "" {
		return cli.NewConfigError("template_name", "field is required")
	}
	if settings.OutputName == "" {
		return cli.NewConfigError("output_name", "field is required")
	}
	if settings.Primary.Path == "" {
		return cli.NewConfigError("primary.path", "field is required")
	}

	for i, route := range settings.Routes {
		field := fmt.Sprintf("routes[%d]", i)
		if route.Name == "" {
			return cli.NewConfigError(field+".name", "field is required")
		}
		if !strings.HasPrefix(route.PathPrefix, "/") {
			return cli.NewConfigError(field+".path_prefix", fmt.Sprintf("must start with /, got %q", route.PathPrefix))
		}
		if route.Variable == "" {
			return cli.NewConfigError(field+".variable", "field is required")
		}
		switch route.Class {
		case ClassPlain, ClassWebsocket, ClassRelay:
		default:
			return cli.NewConfigError(field+".class", fmt.Sprintf("unknown class %q (want plain, websocket or relay)", route.Class))
		}
	}

	switch settings.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return cli.NewConfigError("logging.level", fmt.Sprintf("unknown level %q", settings.Logging.Level))
	}
	switch settings.Logging.Format {
	case "json", "text":
	default:
		return cli.NewConfigError("logging.format", fmt.Sprintf("unknown format %q", settings.Logging.Format))
	}

	return nil
}

// captureEnv snapshots every environment variable the routes and relay
// parameters reference. Absent variables are simply not in the map;
// whether absence is fatal is decided during route-table construction.
func captureEnv(settings *Settings, lookup LookupFunc) {
	env := make(map[string]string)
	for _, route := range settings.Routes {
		if value, ok := lookup(route.Variable); ok {
			env[route.Variable] = value
		}
	}
	for _, name := range []string{EnvStunHost, EnvTurnHost, EnvTurnPort, EnvTurnUser, EnvTurnCredential} {
		if value, ok := lookup(name); ok {
			env[name] = value
		}
	}
	settings.Env = env
}
