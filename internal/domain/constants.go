package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultRequestTimeout bounds a single provider call
	DefaultRequestTimeout = 45 * time.Second
	// MaxRequestTimeoutSeconds is the largest accepted timeout setting
	MaxRequestTimeoutSeconds = 300
	// DefaultHTTPClientTimeout is the transport level ceiling for provider HTTP requests
	DefaultHTTPClientTimeout = 5 * time.Minute
	// CopyFeedbackDuration is how long the UI shows the "copied" marker
	CopyFeedbackDuration = 2 * time.Second
)

// History constants
const (
	// DefaultHistoryKey is the storage slot that holds the serialized history
	DefaultHistoryKey = "history_store_v1"
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// HistoryPreviewLength is the number of runes of input shown in list views
	HistoryPreviewLength = 60
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of tokens
	DefaultMaxTokens = 2048
)

// Time formats
const (
	// HistoryTimestampFormat is the persisted ISO-8601 layout (UTC, milliseconds)
	HistoryTimestampFormat = "2006-01-02T15:04:05.000Z"
	// DisplayTimestampFormat is used for human readable listings
	DisplayTimestampFormat = "2006-01-02 15:04:05"
	// GermanDisplayTimestampFormat matches the de-DE locale rendering
	GermanDisplayTimestampFormat = "02.01.2006, 15:04:05"
)
