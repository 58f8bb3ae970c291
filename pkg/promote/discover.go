package promote

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signalmesh/edgeboot/pkg/cli"
)

// Paths locates the selected deployment variant's files.
type Paths struct {
	// Dir is the selected candidate directory.
	Dir string
	// Template is the pristine template path within Dir.
	Template string
	// Authoritative is the rendered config path the primary process
	// reads.
	Authoritative string
}

// PathNotFoundError reports that no candidate directory contains the
// pristine template.
type PathNotFoundError struct {
	Name       string
	Candidates []string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("config template %q not found in any candidate directory: %s",
		e.Name, strings.Join(e.Candidates, ", "))
}

// ExitCode classifies discovery failures.
func (e *PathNotFoundError) ExitCode() int { return cli.ExitDiscovery }

// Discover probes candidateDirs in order and selects the first one
// containing templateName. A directory that exists but lacks the
// template does not match; there is no default path fallback.
func Discover(candidateDirs []string, templateName, outputName string) (Paths, error) {
	for _, dir := range candidateDirs {
		templatePath := filepath.Join(dir, templateName)
		info, err := os.Stat(templatePath)
		if err != nil || info.IsDir() {
			continue
		}
		return Paths{
			Dir:           dir,
			Template:      templatePath,
			Authoritative: filepath.Join(dir, outputName),
		}, nil
	}
	return Paths{}, &PathNotFoundError{Name: templateName, Candidates: candidateDirs}
}
