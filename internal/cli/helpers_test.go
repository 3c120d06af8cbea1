package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/internal/observability"
	"github.com/xhanalabs/xl/pkg/models"
)

// fakeHistory records entries in memory.
type fakeHistory struct {
	entries  []models.HistoryEntry
	writeErr error
}

func (f *fakeHistory) Write(entry models.HistoryEntry) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeHistory) Read(filter observability.HistoryFilter) ([]models.HistoryEntry, error) {
	var out []models.HistoryEntry
	for _, e := range f.entries {
		if filter.Command != "" && e.Command != filter.Command {
			continue
		}
		if filter.Since != nil && e.Time.Before(*filter.Since) {
			continue
		}
		out = append(out, e)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[len(out)-filter.Limit:]
	}
	return out, nil
}

func (f *fakeHistory) Close() error { return nil }

// withServices installs cfg and a fresh fake history for the duration of t.
func withServices(t *testing.T, cfg *models.Config) *fakeHistory {
	t.Helper()

	origConfig, origHistory, origNoHistory := Config, History, noHistory
	t.Cleanup(func() {
		Config, History, noHistory = origConfig, origHistory, origNoHistory
	})

	h := &fakeHistory{}
	Config = cfg
	History = h
	noHistory = false
	return h
}

func testConfig() *models.Config {
	return &models.Config{
		Random:  models.RandomConfig{Alphabet: models.DefaultAlphabet},
		KV:      models.KVConfig{ElementSeparator: "=", ItemSeparator: "&"},
		History: models.HistoryConfig{Enabled: true},
		Log:     models.LogConfig{Level: "info"},
	}
}

// runCmd calls cmd.RunE with stdout and stderr captured.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})

	err := cmd.RunE(cmd, args)
	return stdout.String(), stderr.String(), err
}
