package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/signalmesh/edgeboot/pkg/config"
	"github.com/signalmesh/edgeboot/pkg/routing"
)

// upstreamName returns the generated upstream block name for a route.
func upstreamName(route routing.Route) string {
	return "edge_" + route.Name
}

// nginxDuration formats a timeout for a proxy directive. Whole seconds
// render as "Ns", everything else as milliseconds.
func nginxDuration(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
	return fmt.Sprintf("%dms", int64(d/time.Millisecond))
}

// connectionUpgradeMap emits the conditional Upgrade/Connection map.
// Present only when the table has a websocket or relay route: an
// inbound Upgrade header forwards "Connection: upgrade", its absence
// forwards "Connection: close" so plain requests cannot pin idle
// keep-alive connections upstream.
func connectionUpgradeMap(table *routing.Table) string {
	if !table.HasClass(routing.ClassWebsocket) && !table.HasClass(routing.ClassRelay) {
		return ""
	}
	return strings.Join([]string{
		"    map $http_upgrade $connection_upgrade {",
		"        default upgrade;",
		"        ''      close;",
		"    }",
	}, "\n")
}

// upstreamBlocks emits one upstream binding per route, in table order,
// with keep-alive pooling enabled for every protocol class.
func upstreamBlocks(table *routing.Table) string {
	var b strings.Builder
	for i, route := range table.Routes() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "    upstream %s {\n", upstreamName(route))
		fmt.Fprintf(&b, "        server %s;\n", route.Upstream.HostPort())
		b.WriteString("        keepalive 32;\n")
		b.WriteString("    }\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// locationBlocks emits one location per route, in table order.
func locationBlocks(settings *config.Settings, table *routing.Table) string {
	var b strings.Builder
	for i, route := range table.Routes() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(locationBlock(settings, route))
	}
	return strings.TrimRight(b.String(), "\n")
}

func locationBlock(settings *config.Settings, route routing.Route) string {
	var b strings.Builder
	fmt.Fprintf(&b, "        location %s {\n", route.PathPrefix)

	// A trailing slash on the proxy_pass URI makes the server strip
	// the matched prefix before forwarding, so the backend receives
	// prefix-agnostic paths.
	target := fmt.Sprintf("%s://%s", route.Upstream.Scheme, upstreamName(route))
	if route.Rewrite {
		target += "/"
	}
	fmt.Fprintf(&b, "            proxy_pass %s;\n", target)
	b.WriteString("            proxy_http_version 1.1;\n")

	// Standard proxy header set, emitted for every protocol class.
	b.WriteString("            proxy_set_header Host $host;\n")
	b.WriteString("            proxy_set_header X-Real-IP $remote_addr;\n")
	b.WriteString("            proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;\n")
	b.WriteString("            proxy_set_header X-Forwarded-Proto $scheme;\n")

	switch route.Class {
	case routing.ClassWebsocket, routing.ClassRelay:
		b.WriteString("            proxy_set_header Upgrade $http_upgrade;\n")
		b.WriteString("            proxy_set_header Connection $connection_upgrade;\n")
	default:
		// Clearing Connection keeps the upstream keepalive pool usable.
		b.WriteString("            proxy_set_header Connection \"\";\n")
	}

	fmt.Fprintf(&b, "            proxy_connect_timeout %s;\n", nginxDuration(route.Timeouts.Connect))
	fmt.Fprintf(&b, "            proxy_send_timeout %s;\n", nginxDuration(route.Timeouts.Send))
	fmt.Fprintf(&b, "            proxy_read_timeout %s;\n", nginxDuration(route.Timeouts.Read))

	if route.Upstream.Scheme == "https" {
		if settings.UpstreamTLSVerify {
			b.WriteString("            proxy_ssl_verify on;\n")
		} else {
			b.WriteString("            proxy_ssl_verify off;\n")
		}
		b.WriteString("            proxy_ssl_server_name on;\n")
	}

	b.WriteString("        }\n")
	return b.String()
}

// healthLocation emits the fixed liveness endpoint. It is served by the
// primary listener itself, so it answers only once the port is bound.
func healthLocation() string {
	return strings.Join([]string{
		"        location = /healthz {",
		"            access_log off;",
		"            default_type text/plain;",
		"            return 200 \"ok\\n\";",
		"        }",
	}, "\n")
}
