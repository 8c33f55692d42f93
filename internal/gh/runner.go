package gh

import (
	"context"
	"os/exec"
	"strings"

	"github.com/agentstation/gardener/pkg/errors"
)

// Runner executes an external command and returns its stdout. Tests swap in
// a fixture-backed implementation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands through os/exec.
type execRunner struct{}

// Run executes the command and returns stdout. A non-zero exit becomes a
// ProcessError carrying the command line, captured stderr, and exit code.
func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		procErr := &errors.ProcessError{
			Operation: "run " + name,
			Command:   name + " " + strings.Join(args, " "),
			Err:       err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			procErr.Output = strings.TrimSpace(string(exitErr.Stderr))
			procErr.ExitCode = exitErr.ExitCode()
		}
		return nil, procErr
	}
	return out, nil
}
