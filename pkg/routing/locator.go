package routing

import (
	"fmt"
	"strings"

	"github.com/signalmesh/edgeboot/pkg/cli"
)

// Locator identifies one upstream backend as scheme, host and port.
// It is the parsed form of a URL-shaped locator string; any path
// component of the original string is discarded.
type Locator struct {
	Scheme string
	Host   string
	Port   string
}

// HostPort returns the locator in "host:port" form, the shape consumed
// by upstream binding directives. Bracketed IPv6 hosts keep their
// brackets.
func (l Locator) HostPort() string {
	if l.Port == "" {
		return l.Host
	}
	return l.Host + ":" + l.Port
}

// String returns the locator in "scheme://host:port" form.
func (l Locator) String() string {
	return l.Scheme + "://" + l.HostPort()
}

// LocatorParseError reports a malformed upstream locator string. It is
// fatal: a locator that cannot be parsed is never defaulted or skipped.
type LocatorParseError struct {
	Input  string
	Reason string
}

func (e *LocatorParseError) Error() string {
	return fmt.Sprintf("invalid upstream locator %q: %s", e.Input, e.Reason)
}

// ExitCode classifies locator parse failures as configuration errors.
func (e *LocatorParseError) ExitCode() int { return cli.ExitConfig }

// ParseLocator parses a URL-shaped upstream locator string. The scheme
// prefix (if any) is stripped, the substring up to the first "/" is
// taken as the authority, and the authority is split into host and port
// at the last colon. When no scheme is present the locator defaults to
// "https": upstreams are reached over an encrypted transport unless the
// locator says otherwise.
//
// IPv6 hosts must be bracketed ("[::1]:8443"). A bare IPv6 literal is
// ambiguous under last-colon splitting and is rejected rather than
// silently mis-split.
func ParseLocator(raw string) (Locator, error) {
	if raw == "" {
		return Locator{}, &LocatorParseError{Input: raw, Reason: "empty locator"}
	}

	scheme := "https"
	rest := raw
	if idx := strings.Index(rest, "://"); idx >= 0 {
		scheme = rest[:idx]
		rest = rest[idx+len("://"):]
		if scheme == "" {
			return Locator{}, &LocatorParseError{Input: raw, Reason: "empty scheme"}
		}
	}

	// Drop the path: everything from the first "/" on.
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		rest = rest[:idx]
	}
	if rest == "" {
		return Locator{}, &LocatorParseError{Input: raw, Reason: "empty host"}
	}

	host, port, err := splitHostPort(rest)
	if err != nil {
		return Locator{}, &LocatorParseError{Input: raw, Reason: err.Error()}
	}
	if host == "" {
		return Locator{}, &LocatorParseError{Input: raw, Reason: "empty host"}
	}

	return Locator{Scheme: scheme, Host: host, Port: port}, nil
}

// splitHostPort splits an authority at the last colon. Bracketed IPv6
// authorities are handled explicitly; an unbracketed authority with
// more than one colon is a bare IPv6 literal and is rejected.
func splitHostPort(authority string) (host, port string, err error) {
	if strings.HasPrefix(authority, "[") {
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated bracket in host")
		}
		host = authority[:end+1]
		rest := authority[end+1:]
		if rest == "" {
			return host, "", nil
		}
		if !strings.HasPrefix(rest, ":") {
			return "", "", fmt.Errorf("unexpected characters after bracketed host")
		}
		return host, rest[1:], nil
	}

	idx := strings.LastIndexByte(authority, ':')
	if idx < 0 {
		return authority, "", nil
	}
	if strings.IndexByte(authority[:idx], ':') >= 0 {
		return "", "", fmt.Errorf("bare IPv6 literals are not supported, bracket the host")
	}
	host = authority[:idx]
	port = authority[idx+1:]
	if port == "" {
		return "", "", fmt.Errorf("empty port after colon")
	}
	return host, port, nil
}
