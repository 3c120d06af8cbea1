package toolbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// ExecResult captures one run of a shell command.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	// Killed is set when the context ended before the command did.
	Killed bool
}

// Execute runs command through the host shell (sh -c, or cmd /C on Windows)
// and returns what it wrote to stdout. It blocks until the command exits,
// however long that takes. A non-zero exit status is not an error; only a
// failure to start the shell is, reported as ErrSpawn.
func Execute(command string) (string, error) {
	return ExecuteContext(context.Background(), command)
}

// ExecuteContext is Execute bounded by ctx. If ctx ends first the process is
// killed and the context error is returned with any output read so far.
func ExecuteContext(ctx context.Context, command string) (string, error) {
	res, err := Run(ctx, command)
	if res == nil {
		return "", err
	}
	return res.Stdout, err
}

// Run executes command like ExecuteContext and returns the full result.
func Run(ctx context.Context, command string) (*ExecResult, error) {
	cmd := shellCommand(ctx, command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Killed = true
		res.ExitCode = -1
		return res, fmt.Errorf("running %q: %w", command, ctxErr)
	}

	// The shell exited but a background child kept the pipes open.
	if errors.Is(err, exec.ErrWaitDelay) {
		res.ExitCode = cmd.ProcessState.ExitCode()
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = 127
	return res, fmt.Errorf("%w %q: %w", ErrSpawn, command, err)
}

// waitDelay bounds how long Run waits for output pipes after the shell is
// killed, since grandchildren may still hold them open.
const waitDelay = 2 * time.Second

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}
	cmd.WaitDelay = waitDelay
	return cmd
}
