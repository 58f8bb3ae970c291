package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the fatal error taxonomy. An external supervisor can
// use these to decide whether a restart is worth attempting.
const (
	// ExitFailure is the generic nonzero exit.
	ExitFailure = 1
	// ExitConfig covers configuration errors: missing route variables,
	// malformed locators, invalid settings.
	ExitConfig = 2
	// ExitRender covers template render errors.
	ExitRender = 3
	// ExitValidation covers structural validation failures.
	ExitValidation = 4
	// ExitDiscovery covers config path discovery failures.
	ExitDiscovery = 5
)

// exitCoder is implemented by error types that know their exit
// category.
type exitCoder interface {
	ExitCode() int
}

// ExitCode returns the exit code for err, walking the wrapped error
// chain for a categorized error. A nil error maps to 0; an
// uncategorized error maps to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitFailure
}

// ConfigError represents an error in settings construction.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// ExitCode classifies settings errors as configuration errors.
func (e *ConfigError) ExitCode() int { return ExitConfig }

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}
