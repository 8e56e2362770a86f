package project

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/relkit/internal/bump"
	relerrors "github.com/ariel-frischer/relkit/internal/errors"
)

// bumpTool is the external tool that rewrites the version field in the
// project descriptor. relkit only decides the bump; the file mutation is
// delegated.
const bumpTool = "uv"

// lookPath is swapped in tests to simulate a missing tool.
var lookPath = exec.LookPath

// CheckBumpTool verifies the external version-bumping tool is installed.
func CheckBumpTool() error {
	if _, err := lookPath(bumpTool); err != nil {
		return relerrors.NewPreconditionError(
			fmt.Sprintf("the '%s' command-line tool is required to bump the project version", bumpTool),
			"Install it via 'pip install uv'.")
	}
	return nil
}

// BumpVersion applies one bump level to the project descriptor in dir by
// invoking the external tool. In dry-run mode the tool is asked for a trial
// run and the descriptor is left untouched. The tool's output is returned
// for display; a non-zero exit surfaces as an ExternalToolError with the
// tool's stderr preserved.
func BumpVersion(dir string, level bump.Level, dryRun bool) (string, error) {
	if err := CheckBumpTool(); err != nil {
		return "", err
	}

	args := []string{"version", "--bump", level.String()}
	if dryRun {
		args = append(args, "--dry-run")
	}

	cmd := exec.Command(bumpTool, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", relerrors.NewExternalError(
			fmt.Sprintf("%s version --bump %s failed: %s", bumpTool, level, msg))
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		output = strings.TrimSpace(stderr.String())
	}
	return output, nil
}
