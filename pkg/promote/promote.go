package promote

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/google/uuid"

	"github.com/signalmesh/edgeboot/pkg/config"
	"github.com/signalmesh/edgeboot/pkg/render"
)

// Promoter validates rendered configuration out-of-place and installs
// it atomically.
type Promoter struct {
	// CheckCommand, when non-empty, is run against the temporary
	// artifact after the structural checks pass. The config.ConfigPathToken
	// argument is replaced with the temporary path.
	CheckCommand []string

	Logger *slog.Logger
}

// Promote writes cfg to a temporary file beside paths.Authoritative,
// validates the temporary artifact, and atomically renames it onto the
// authoritative path. On any failure the previously authoritative file
// is left untouched and the temporary file is removed.
//
// On success cfg.Validated is set, which is the supervisor's
// precondition for starting anything.
func (p *Promoter) Promote(cfg *render.GatewayConfig, paths Paths) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	temporaryPath := fmt.Sprintf("%s.%s.tmp", paths.Authoritative, uuid.NewString())
	if err := os.WriteFile(temporaryPath, []byte(cfg.Text), 0644); err != nil {
		return &ValidationError{Detail: fmt.Sprintf("cannot write temporary artifact: %v", err)}
	}

	if err := p.validateTemporary(cfg.Text, temporaryPath); err != nil {
		os.Remove(temporaryPath)
		return err
	}

	if err := os.Rename(temporaryPath, paths.Authoritative); err != nil {
		os.Remove(temporaryPath)
		return &ValidationError{Detail: fmt.Sprintf("cannot promote validated config: %v", err)}
	}

	cfg.Validated = true
	logger.Info("configuration promoted",
		"path", paths.Authoritative,
		"bytes", len(cfg.Text),
	)
	return nil
}

// validateTemporary runs the structural checks on the rendered text and
// the optional external check command on the temporary artifact.
func (p *Promoter) validateTemporary(text, temporaryPath string) error {
	if err := Validate(text); err != nil {
		return err
	}
	if len(p.CheckCommand) == 0 {
		return nil
	}

	args := make([]string, 0, len(p.CheckCommand)-1)
	for _, arg := range p.CheckCommand[1:] {
		if arg == config.ConfigPathToken {
			arg = temporaryPath
		}
		args = append(args, arg)
	}

	output, err := exec.Command(p.CheckCommand[0], args...).CombinedOutput()
	if err != nil {
		return &ValidationError{
			Detail: fmt.Sprintf("check command %s failed: %v: %s", p.CheckCommand[0], err, output),
		}
	}
	return nil
}
