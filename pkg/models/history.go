package models

import "time"

// HistoryEntry records one CLI invocation in the history log.
type HistoryEntry struct {
	Time    time.Time `json:"time"`
	RunID   string    `json:"run_id"`
	Command string    `json:"command"`
	Args    []string  `json:"args,omitempty"`
	Result  string    `json:"result,omitempty"`
	Error   string    `json:"error,omitempty"`
}
