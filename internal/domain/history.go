package domain

import (
	"errors"
	"time"
)

// ErrRecordNotFound is returned when a history id does not exist.
var ErrRecordNotFound = errors.New("history record not found")

// HistoryRecord captures one completed improvement request. Records are never
// mutated after creation.
type HistoryRecord struct {
	ID         int64  `json:"id"`
	InputText  string `json:"inputText"`
	OutputText string `json:"outputText"`
	Action     Action `json:"action"`
	Timestamp  string `json:"timestamp"`
}

// HistoryDraft is the caller-supplied part of a new record.
type HistoryDraft struct {
	InputText  string
	OutputText string
	Action     Action
}

// CreatedAt parses the ISO-8601 timestamp. It returns the zero time for
// timestamps written by foreign tools in an unexpected layout.
func (r HistoryRecord) CreatedAt() time.Time {
	if t, err := time.Parse(time.RFC3339Nano, r.Timestamp); err == nil {
		return t
	}
	return time.Time{}
}

// FormatTimestamp renders t the way history timestamps are persisted:
// UTC with millisecond precision and a literal Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(HistoryTimestampFormat)
}
