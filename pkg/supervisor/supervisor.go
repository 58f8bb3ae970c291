package supervisor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"github.com/signalmesh/edgeboot/pkg/cli"
	"github.com/signalmesh/edgeboot/pkg/config"
	"github.com/signalmesh/edgeboot/pkg/render"
)

// State identifies a phase of the startup attempt.
type State int

const (
	StateInit State = iota
	StateSynthesizing
	StateValidating
	StateFailed
	StatePromoted
	StateStartingAuxiliary
	StateExecPrimary
)

var stateNames = map[State]string{
	StateInit:              "init",
	StateSynthesizing:      "synthesizing",
	StateValidating:        "validating",
	StateFailed:            "failed",
	StatePromoted:          "promoted",
	StateStartingAuxiliary: "starting-auxiliary",
	StateExecPrimary:       "exec-primary",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Bootstrap is one startup attempt. Synthesize and Promote are the
// upstream pipeline stages; the supervisor owns only their sequencing
// and the process handoff.
type Bootstrap struct {
	Logger *slog.Logger

	// Synthesize renders the gateway configuration.
	Synthesize func() (*render.GatewayConfig, error)

	// Promote validates the rendering out-of-place and installs it at
	// ConfigPath. It must set the config's Validated flag on success.
	Promote func(*render.GatewayConfig) error

	// Auxiliary commands are started fire-and-forget before the exec.
	Auxiliary []config.Command

	// Primary is the listening process that replaces this one.
	Primary config.Command

	// ConfigPath is the promoted authoritative config path,
	// substituted for the {config} token in command arguments.
	ConfigPath string

	// execFunc defaults to syscall.Exec. Injectable for testing: a
	// test can capture the argv instead of replacing the test process.
	execFunc func(argv0 string, argv []string, envv []string) error

	state State
}

// State returns the current state of the attempt.
func (b *Bootstrap) State() State { return b.state }

func (b *Bootstrap) transition(next State) {
	b.logger().Debug("bootstrap state change",
		"from", b.state.String(),
		"to", next.String(),
	)
	b.state = next
}

func (b *Bootstrap) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Bootstrap) fail(err error) error {
	b.transition(StateFailed)
	b.logger().Error("bootstrap failed",
		"state", b.state.String(),
		"error", err,
	)
	return err
}

// Run executes the attempt. On success the process image is replaced
// by the primary command and Run never returns; any returned error is
// terminal for this attempt.
func (b *Bootstrap) Run() error {
	b.transition(StateSynthesizing)
	cfg, err := b.Synthesize()
	if err != nil {
		return b.fail(err)
	}

	b.transition(StateValidating)
	if err := b.Promote(cfg); err != nil {
		return b.fail(err)
	}

	// Fail-closed guard: nothing starts unless the promotion path has
	// marked the rendering as validated.
	if !cfg.Validated {
		return b.fail(fmt.Errorf("refusing to start: configuration was not validated"))
	}
	b.transition(StatePromoted)

	b.transition(StateStartingAuxiliary)
	for _, aux := range b.Auxiliary {
		b.startAuxiliary(aux)
	}

	b.transition(StateExecPrimary)
	if err := b.execPrimary(); err != nil {
		return b.fail(err)
	}
	// Reached only with an injected exec function: a real exec never
	// returns on success.
	return nil
}

// startAuxiliary launches one auxiliary command, fire-and-forget. A
// failure to start is logged and otherwise ignored: auxiliaries never
// gate the primary exec.
func (b *Bootstrap) startAuxiliary(aux config.Command) {
	args := aux.ExpandArgs(b.ConfigPath)
	cmd := exec.Command(aux.Path, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		b.logger().Warn("auxiliary command failed to start",
			"command", aux.Path,
			"error", err,
		)
		return
	}
	b.logger().Info("auxiliary command started",
		"command", aux.Path,
		"pid", cmd.Process.Pid,
	)
	// Not waited on: the auxiliary outlives this process image.
	_ = cmd.Process.Release()
}

// execPrimary replaces the current process image with the primary
// listening process. Only returns on failure.
func (b *Bootstrap) execPrimary() error {
	path, err := exec.LookPath(b.Primary.Path)
	if err != nil {
		return cli.NewCommandError(b.Primary.Path, err)
	}

	argv := append([]string{path}, b.Primary.ExpandArgs(b.ConfigPath)...)
	b.logger().Info("handing off to primary process",
		"path", path,
		"args", argv[1:],
	)

	execFunction := b.execFunc
	if execFunction == nil {
		execFunction = syscall.Exec
	}
	if err := execFunction(path, argv, os.Environ()); err != nil {
		return cli.NewCommandError(b.Primary.Path, fmt.Errorf("exec failed: %w", err))
	}
	// Unreachable: exec does not return on success.
	return nil
}
