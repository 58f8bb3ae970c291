package cli

import (
	"errors"
	"fmt"
	"testing"
)

type codedError struct{ code int }

func (e *codedError) Error() string { return "coded" }
func (e *codedError) ExitCode() int { return e.code }

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"uncategorized error", errors.New("boom"), ExitFailure},
		{"config error", NewConfigError("listen_port", "out of range"), ExitConfig},
		{"categorized error", &codedError{code: ExitValidation}, ExitValidation},
		{"wrapped categorized error", fmt.Errorf("outer: %w", &codedError{code: ExitDiscovery}), ExitDiscovery},
		{"command error wrapping categorized", NewCommandError("run", &codedError{code: ExitRender}), ExitRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "routes.api.path_prefix",
		Message: "missing required field",
	}

	expected := "config error in routes.api.path_prefix: missing required field"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	bare := &ConfigError{Message: "settings file unreadable"}
	if bare.Error() != "config error: settings file unreadable" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("run", underlyingErr)

	expected := "command run failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}
