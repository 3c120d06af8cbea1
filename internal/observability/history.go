package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/xhanalabs/xl/pkg/models"
)

// HistoryFilter specifies criteria for reading history entries.
type HistoryFilter struct {
	Since   *time.Time
	Command string
	// Limit keeps only the newest N matches when positive.
	Limit int
}

// HistoryLog defines the interface for writing and reading history entries.
type HistoryLog interface {
	Write(entry models.HistoryEntry) error
	Read(filter HistoryFilter) ([]models.HistoryEntry, error)
	Close() error
}

// jsonlHistoryLog implements HistoryLog using an append-only JSONL file.
type jsonlHistoryLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLHistoryLog creates a HistoryLog backed by a JSONL file at path.
func NewJSONLHistoryLog(path string) (HistoryLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening history log: %w", err)
	}
	return &jsonlHistoryLog{
		path: path,
		file: f,
	}, nil
}

// Write appends a JSON-encoded entry followed by a newline.
func (l *jsonlHistoryLog) Write(entry models.HistoryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshalling history entry: %w", err)
	}
	data = append(data, '\n')

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("writing history entry: %w", err)
	}
	return nil
}

// Read scans the log line by line and returns the entries matching filter,
// oldest first. Malformed lines are skipped.
func (l *jsonlHistoryLog) Read(filter HistoryFilter) ([]models.HistoryEntry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []models.HistoryEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry models.HistoryEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue // skip malformed lines
		}

		if matchesHistoryFilter(entry, filter) {
			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning history log: %w", err)
	}

	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[len(entries)-filter.Limit:]
	}
	return entries, nil
}

// Close closes the underlying file.
func (l *jsonlHistoryLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing history log: %w", err)
	}
	return nil
}

func matchesHistoryFilter(entry models.HistoryEntry, filter HistoryFilter) bool {
	if filter.Since != nil && entry.Time.Before(*filter.Since) {
		return false
	}
	if filter.Command != "" && entry.Command != filter.Command {
		return false
	}
	return true
}
