package cli

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/xhanalabs/xl/pkg/models"
)

func resetExecFlags(t *testing.T) {
	t.Helper()
	origTimeout, origStderr := execTimeout, execStderr
	t.Cleanup(func() { execTimeout, execStderr = origTimeout, origStderr })
	execTimeout, execStderr = 0, false
}

func TestExecCmd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}
	h := withServices(t, testConfig())
	resetExecFlags(t)

	out, _, err := runCmd(t, execCmd, "echo", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello\n" {
		t.Errorf("output = %q, want hello", out)
	}
	if len(h.entries) != 1 || h.entries[0].Result != "hello\n" {
		t.Errorf("unexpected history %+v", h.entries)
	}
}

func TestExecCmd_ExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}
	withServices(t, testConfig())
	resetExecFlags(t)

	out, _, err := runCmd(t, execCmd, "echo partial; exit 3")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.Code)
	}
	if out != "partial\n" {
		t.Errorf("output = %q, want partial", out)
	}
}

func TestExecCmd_Stderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}
	withServices(t, testConfig())
	resetExecFlags(t)
	execStderr = true

	_, stderr, err := runCmd(t, execCmd, "echo oops >&2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stderr) != "oops" {
		t.Errorf("stderr = %q, want oops", stderr)
	}
}

func TestExecCmd_ConfigTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}
	cfg := testConfig()
	cfg.Exec = models.ExecConfig{Timeout: 100 * time.Millisecond}
	withServices(t, cfg)
	resetExecFlags(t)

	start := time.Now()
	_, _, err := runCmd(t, execCmd, "sleep 5")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 4*time.Second {
		t.Error("command was not killed at the timeout")
	}
}
