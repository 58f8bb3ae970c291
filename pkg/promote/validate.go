package promote

import (
	"fmt"
	"os"
	"strings"

	"github.com/signalmesh/edgeboot/pkg/cli"
)

// ValidationError reports a structurally invalid rendered config.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %s", e.Detail)
}

// ExitCode classifies validation failures.
func (e *ValidationError) ExitCode() int { return cli.ExitValidation }

// requiredFragments must all appear in a rendered gateway config. Their
// absence means the synthesizer was fed an unusable template.
var requiredFragments = []string{
	"listen ",
	"location = /healthz",
	"proxy_pass ",
}

// Validate structurally checks rendered configuration text in
// isolation. It never reads the file backing the live listener; callers
// hand it the candidate text (or use ValidateFile on a temporary
// artifact).
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Detail: "empty configuration"}
	}
	if idx := strings.Index(text, "{{"); idx >= 0 {
		return &ValidationError{Detail: fmt.Sprintf("unrendered template placeholder at byte %d", idx)}
	}

	depth := 0
	for lineNo, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, r := range trimmed {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					return &ValidationError{Detail: fmt.Sprintf("unbalanced closing brace on line %d", lineNo+1)}
				}
			}
		}
		switch trimmed[len(trimmed)-1] {
		case ';', '{', '}':
		default:
			return &ValidationError{Detail: fmt.Sprintf("unterminated directive on line %d: %q", lineNo+1, trimmed)}
		}
	}
	if depth != 0 {
		return &ValidationError{Detail: fmt.Sprintf("unbalanced braces: %d unclosed", depth)}
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(text, fragment) {
			return &ValidationError{Detail: fmt.Sprintf("missing required directive %q", strings.TrimSpace(fragment))}
		}
	}
	return nil
}

// ValidateFile validates a rendered config file in isolation.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ValidationError{Detail: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	return Validate(string(data))
}
