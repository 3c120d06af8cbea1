package observability

import (
	"fmt"
	"time"
)

// Usage holds statistics derived from the history log.
type Usage struct {
	Invocations int            `json:"invocations" yaml:"invocations"`
	Failures    int            `json:"failures" yaml:"failures"`
	ByCommand   map[string]int `json:"by_command" yaml:"by_command"`
	Oldest      *time.Time     `json:"oldest,omitempty" yaml:"oldest,omitempty"`
	Newest      *time.Time     `json:"newest,omitempty" yaml:"newest,omitempty"`
}

// UsageCalculator derives usage statistics from the history log.
type UsageCalculator interface {
	Calculate(since time.Time) (*Usage, error)
}

// usageCalculator implements UsageCalculator by reading from a HistoryLog.
type usageCalculator struct {
	history HistoryLog
}

// NewUsageCalculator creates a UsageCalculator that reads from the given HistoryLog.
func NewUsageCalculator(history HistoryLog) UsageCalculator {
	return &usageCalculator{history: history}
}

// Calculate reads all entries since the given time and aggregates them.
func (uc *usageCalculator) Calculate(since time.Time) (*Usage, error) {
	entries, err := uc.history.Read(HistoryFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading history for usage: %w", err)
	}

	u := &Usage{ByCommand: make(map[string]int)}
	u.Invocations = len(entries)

	for i, entry := range entries {
		if i == 0 {
			t := entry.Time
			u.Oldest = &t
		}
		t := entry.Time
		u.Newest = &t

		u.ByCommand[entry.Command]++
		if entry.Error != "" {
			u.Failures++
		}
	}

	return u, nil
}
