package supervisor

import (
	"errors"
	"testing"

	"github.com/signalmesh/edgeboot/pkg/cli"
	"github.com/signalmesh/edgeboot/pkg/config"
	"github.com/signalmesh/edgeboot/pkg/render"
)

// execRecorder captures the exec call instead of replacing the test
// process.
type execRecorder struct {
	called bool
	argv0  string
	argv   []string
	err    error
}

func (r *execRecorder) exec(argv0 string, argv []string, envv []string) error {
	r.called = true
	r.argv0 = argv0
	r.argv = argv
	return r.err
}

func validatingPromote(cfg *render.GatewayConfig) error {
	cfg.Validated = true
	return nil
}

func testBootstrap(rec *execRecorder) *Bootstrap {
	return &Bootstrap{
		Synthesize: func() (*render.GatewayConfig, error) {
			return &render.GatewayConfig{Text: "server {}"}, nil
		},
		Promote:    validatingPromote,
		Primary:    config.Command{Path: "sh", Args: []string{"-c", "true", config.ConfigPathToken}},
		ConfigPath: "/etc/edgeboot/gateway.conf",
		execFunc:   rec.exec,
	}
}

func TestRun_ExecsPrimary(t *testing.T) {
	rec := &execRecorder{}
	b := testBootstrap(rec)

	if err := b.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !rec.called {
		t.Fatal("exec function was not called")
	}
	if b.State() != StateExecPrimary {
		t.Errorf("State = %v, want exec-primary", b.State())
	}
	// The {config} token is expanded with the authoritative path.
	found := false
	for _, arg := range rec.argv {
		if arg == "/etc/edgeboot/gateway.conf" {
			found = true
		}
	}
	if !found {
		t.Errorf("argv %v should carry the expanded config path", rec.argv)
	}
}

func TestRun_SynthesisFailureIsTerminal(t *testing.T) {
	rec := &execRecorder{}
	b := testBootstrap(rec)
	synthErr := errors.New("bad template")
	b.Synthesize = func() (*render.GatewayConfig, error) { return nil, synthErr }

	err := b.Run()
	if !errors.Is(err, synthErr) {
		t.Fatalf("Run() = %v, want synthesis error", err)
	}
	if b.State() != StateFailed {
		t.Errorf("State = %v, want failed", b.State())
	}
	if rec.called {
		t.Error("exec must never run after a synthesis failure")
	}
}

func TestRun_PromotionFailureIsTerminal(t *testing.T) {
	rec := &execRecorder{}
	b := testBootstrap(rec)
	promoteErr := errors.New("validation rejected")
	b.Promote = func(*render.GatewayConfig) error { return promoteErr }

	err := b.Run()
	if !errors.Is(err, promoteErr) {
		t.Fatalf("Run() = %v, want promotion error", err)
	}
	if b.State() != StateFailed {
		t.Errorf("State = %v, want failed", b.State())
	}
	if rec.called {
		t.Error("exec must never run after a promotion failure")
	}
}

// Fail-closed: a promote implementation that reports success without
// marking the config validated is refused.
func TestRun_RefusesUnvalidatedConfig(t *testing.T) {
	rec := &execRecorder{}
	b := testBootstrap(rec)
	b.Promote = func(*render.GatewayConfig) error { return nil }

	err := b.Run()
	if err == nil {
		t.Fatal("expected refusal")
	}
	if rec.called {
		t.Error("exec must never run for an unvalidated config")
	}
}

// A failed auxiliary start is logged, never fatal.
func TestRun_AuxiliaryFailureTolerated(t *testing.T) {
	rec := &execRecorder{}
	b := testBootstrap(rec)
	b.Auxiliary = []config.Command{
		{Path: "/nonexistent/turnserver", Args: []string{"--no-cli"}},
	}

	if err := b.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !rec.called {
		t.Error("primary exec should proceed despite the auxiliary failure")
	}
}

func TestRun_ExecFailure(t *testing.T) {
	rec := &execRecorder{err: errors.New("exec format error")}
	b := testBootstrap(rec)

	err := b.Run()
	if err == nil {
		t.Fatal("expected error")
	}
	var cmdErr *cli.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *cli.CommandError, got %T: %v", err, err)
	}
	if b.State() != StateFailed {
		t.Errorf("State = %v, want failed", b.State())
	}
}

func TestRun_UnresolvablePrimary(t *testing.T) {
	rec := &execRecorder{}
	b := testBootstrap(rec)
	b.Primary = config.Command{Path: "definitely-not-a-real-binary-name"}

	if err := b.Run(); err == nil {
		t.Fatal("expected lookup error")
	}
	if rec.called {
		t.Error("exec function must not be called when lookup fails")
	}
}

func TestStateString(t *testing.T) {
	if StateInit.String() != "init" {
		t.Errorf("StateInit = %q", StateInit.String())
	}
	if StateExecPrimary.String() != "exec-primary" {
		t.Errorf("StateExecPrimary = %q", StateExecPrimary.String())
	}
	if State(99).String() != "state(99)" {
		t.Errorf("unknown state = %q", State(99).String())
	}
}
