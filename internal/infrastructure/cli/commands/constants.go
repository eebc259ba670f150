package commands

// Error messages
const (
	ErrClipboardUnavailable = "clipboard unavailable on this system"
	ErrQueryRequired        = "a search query is required"
	ErrInvalidLimit         = "--limit must be > 0"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
	MsgNoHistoryRecorded  = "No history recorded yet."
	MsgNoMatches          = "No matching records."
	MsgHistoryCleared     = "History cleared."
	MsgClearCancelled     = "Clear cancelled."
	MsgCopied             = "Copied to clipboard."
)
