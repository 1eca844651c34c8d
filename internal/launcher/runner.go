package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner starts a script process and waits for it.
type Runner interface {
	Run(ctx context.Context, args ...string) error
}

// ExitError reports a child that ran but exited with a non-zero code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExecRunner runs scripts as subcommands of an executable.
type ExecRunner struct {
	// Executable is the program to run; empty means the current executable.
	Executable string
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run starts the executable with args and waits for it to exit.
func (r ExecRunner) Run(ctx context.Context, args ...string) error {
	exe := r.Executable
	if exe == "" {
		self, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolve executable: %w", err)
		}
		exe = self
	}
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return &ExitError{Code: ee.ExitCode(), Err: err}
		}
		return fmt.Errorf("start %s: %w", exe, err)
	}
	return nil
}
