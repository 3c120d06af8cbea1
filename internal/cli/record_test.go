package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestFinish_RecordsEntry(t *testing.T) {
	h := withServices(t, testConfig())

	err := finish(randomIntCmd, []string{"1", "6"}, "4", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(h.entries))
	}
	e := h.entries[0]
	if e.Command != "random int" {
		t.Errorf("command = %q, want random int", e.Command)
	}
	if e.Result != "4" || e.Error != "" {
		t.Errorf("unexpected entry %+v", e)
	}
	if _, err := uuid.Parse(e.RunID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", e.RunID, err)
	}
	if e.Time.IsZero() {
		t.Error("expected time to be set")
	}
}

func TestFinish_PassesErrorThrough(t *testing.T) {
	h := withServices(t, testConfig())
	want := errors.New("bad input")

	err := finish(kvCmd, []string{"x"}, "", want)
	if !errors.Is(err, want) {
		t.Fatalf("expected error to pass through, got %v", err)
	}
	if len(h.entries) != 1 || h.entries[0].Error != "bad input" {
		t.Errorf("unexpected entries %+v", h.entries)
	}
}

func TestFinish_Skipped(t *testing.T) {
	t.Run("no-history flag", func(t *testing.T) {
		h := withServices(t, testConfig())
		noHistory = true
		_ = finish(timestampCmd, nil, "12:00:00.000", nil)
		if len(h.entries) != 0 {
			t.Errorf("expected no entries, got %d", len(h.entries))
		}
	})

	t.Run("disabled in config", func(t *testing.T) {
		cfg := testConfig()
		cfg.History.Enabled = false
		h := withServices(t, cfg)
		_ = finish(timestampCmd, nil, "12:00:00.000", nil)
		if len(h.entries) != 0 {
			t.Errorf("expected no entries, got %d", len(h.entries))
		}
	})

	t.Run("nil history", func(t *testing.T) {
		withServices(t, testConfig())
		History = nil
		if err := finish(timestampCmd, nil, "", nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestFinish_WriteFailureWarns(t *testing.T) {
	h := withServices(t, testConfig())
	h.writeErr = errors.New("disk full")

	_, stderr, err := runCmd(t, timestampCmd)
	if err != nil {
		t.Fatalf("write failure must not fail the command: %v", err)
	}
	if !strings.Contains(stderr, "warning: failed to record history: disk full") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCommandName(t *testing.T) {
	if got := commandName(labelsGetCmd); got != "labels get" {
		t.Errorf("commandName = %q, want labels get", got)
	}
	if got := commandName(rootCmd); got != "xl" {
		t.Errorf("commandName(root) = %q, want xl", got)
	}
}
