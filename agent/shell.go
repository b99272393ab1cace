package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

const waitDelay = 500 * time.Millisecond

// DefaultShellArgv returns the interpreter prefix for a GOOS value. The
// command string is appended as the final argument.
func DefaultShellArgv(goos string) []string {
	if goos == "windows" {
		return []string{"powershell", "-NoProfile", "-Command"}
	}
	return []string{"sh", "-c"}
}

type ExecShellRunner struct {
	argv []string
}

var _ Shell = (*ExecShellRunner)(nil)

func NewExecShellRunner(argv []string) *ExecShellRunner {
	return &ExecShellRunner{argv: append([]string(nil), argv...)}
}

// Run executes command through the platform shell. A non-zero exit status
// is not an error; failure to start, or hitting the context deadline, is.
func (r *ExecShellRunner) Run(ctx context.Context, workDir string, command string) (ShellResult, error) {
	if len(r.argv) == 0 {
		return ShellResult{}, errors.New("no shell configured")
	}

	start := time.Now()

	args := append(append([]string(nil), r.argv[1:]...), command)
	cmd := exec.CommandContext(ctx, r.argv[0], args...)
	cmd.Dir = workDir
	cmd.WaitDelay = waitDelay

	var outb, errb bytes.Buffer
	cmd.Stdout = &outb
	cmd.Stderr = &errb

	err := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return ShellResult{}, fmt.Errorf("command timed out after %s", time.Since(start).Round(time.Millisecond))
		}
		return ShellResult{}, ctxErr
	}

	exit := 0
	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			return ShellResult{}, err
		}
		exit = ee.ExitCode()
	}

	return ShellResult{
		Stdout:   outb.String(),
		Stderr:   errb.String(),
		ExitCode: exit,
		Duration: time.Since(start),
	}, nil
}
