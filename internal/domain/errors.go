package domain

// ErrorCategory is the user-facing taxonomy for failed improvement requests.
type ErrorCategory string

const (
	CategoryNetwork        ErrorCategory = "network"
	CategoryInvalidRequest ErrorCategory = "invalid_request"
	CategoryRateLimit      ErrorCategory = "rate_limit"
	CategoryService        ErrorCategory = "service"
	CategoryTimeout        ErrorCategory = "timeout"
	CategoryUnknown        ErrorCategory = "unknown"
)

var categoryMessages = map[Language]map[ErrorCategory]string{
	LanguageGerman: {
		CategoryNetwork:        "Netzwerkfehler. Bitte überprüfen Sie Ihre Internetverbindung.",
		CategoryInvalidRequest: "Ungültige Anfrage. Der Text konnte nicht verarbeitet werden.",
		CategoryRateLimit:      "Zu viele Anfragen. Bitte warten Sie einen Moment.",
		CategoryService:        "Ein serverseitiger Fehler ist aufgetreten. Bitte versuchen Sie es später erneut.",
		CategoryTimeout:        "Die Anfrage hat zu lange gedauert. Bitte versuchen Sie es erneut.",
		CategoryUnknown:        "Ein unerwarteter Fehler ist aufgetreten. Bitte versuchen Sie es erneut.",
	},
	LanguageEnglish: {
		CategoryNetwork:        "Network error. Please check your internet connection.",
		CategoryInvalidRequest: "Invalid request. The text could not be processed.",
		CategoryRateLimit:      "Too many requests. Please wait a moment.",
		CategoryService:        "A server-side error occurred. Please try again later.",
		CategoryTimeout:        "The request took too long. Please try again.",
		CategoryUnknown:        "An unexpected error occurred. Please try again.",
	},
}

// Message returns the fixed user-facing message for the category.
func (c ErrorCategory) Message(lang Language) string {
	messages, ok := categoryMessages[lang]
	if !ok {
		messages = categoryMessages[DefaultLanguage]
	}
	if msg, ok := messages[c]; ok {
		return msg
	}
	return messages[CategoryUnknown]
}

// ImproveError is returned by the improvement client. Error() is safe to show to
// users; the technical cause is only reachable through Unwrap.
type ImproveError struct {
	Category ErrorCategory
	Message  string
	Err      error
}

// NewImproveError builds an ImproveError with the localized category message.
func NewImproveError(category ErrorCategory, lang Language, cause error) *ImproveError {
	return &ImproveError{
		Category: category,
		Message:  category.Message(lang),
		Err:      cause,
	}
}

func (e *ImproveError) Error() string {
	return e.Message
}

func (e *ImproveError) Unwrap() error {
	return e.Err
}
