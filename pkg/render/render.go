package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/signalmesh/edgeboot/pkg/cli"
	"github.com/signalmesh/edgeboot/pkg/config"
	"github.com/signalmesh/edgeboot/pkg/routing"
)

// GatewayConfig is one rendered configuration artifact. Validated is
// set by the promotion path once the structural checks have passed;
// the supervisor refuses to start anything while it is false.
type GatewayConfig struct {
	Text      string
	Validated bool
}

// TemplateError reports a template that could not be rendered, most
// commonly a placeholder with no corresponding value. Fatal before any
// file write.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template render error: %v", e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// ExitCode classifies render failures as template errors.
func (e *TemplateError) ExitCode() int { return cli.ExitRender }

// Render synthesizes the gateway configuration from the pristine
// template text. Pure and deterministic: the same settings, table and
// template always produce byte-identical output.
func Render(settings *config.Settings, table *routing.Table, templateText string) (*GatewayConfig, error) {
	tmpl, err := template.New("gateway").Option("missingkey=error").Parse(templateText)
	if err != nil {
		return nil, &TemplateError{Err: err}
	}

	data := map[string]any{
		"ListenPort":           settings.ListenPort,
		"ConnectionUpgradeMap": connectionUpgradeMap(table),
		"UpstreamBlocks":       upstreamBlocks(table),
		"LocationBlocks":       locationBlocks(settings, table),
		"HealthLocation":       healthLocation(),
	}
	if relay := table.Relay(); relay != nil {
		data["StunHost"] = relay.StunHost
		data["TurnHost"] = relay.TurnHost
		data["TurnPort"] = relay.TurnPort
		data["TurnUser"] = relay.TurnUser
		data["TurnCredential"] = relay.TurnCredential
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &TemplateError{Err: err}
	}

	return &GatewayConfig{Text: buf.String()}, nil
}
