package improve

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/doeshing/textpolish/internal/domain"
)

// classificationRule maps a provider failure to a category. Rules are evaluated in
// order and the first match wins.
type classificationRule struct {
	category domain.ErrorCategory
	match    func(err error, msg string) bool
}

var classificationRules = []classificationRule{
	{
		category: domain.CategoryTimeout,
		match: func(err error, msg string) bool {
			if errors.Is(err, context.DeadlineExceeded) {
				return true
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return true
			}
			return containsAny(msg, "deadline exceeded")
		},
	},
	{
		category: domain.CategoryNetwork,
		match: func(err error, msg string) bool {
			var opErr *net.OpError
			if errors.As(err, &opErr) {
				return true
			}
			return containsAny(msg, "network", "fetch failed", "connection refused", "connection reset", "no such host")
		},
	},
	{
		category: domain.CategoryInvalidRequest,
		match:    substring("400"),
	},
	{
		category: domain.CategoryRateLimit,
		match:    substring("429"),
	},
	{
		category: domain.CategoryService,
		match:    substring("500", "502", "503", "504"),
	},
}

// Classify returns the category of a provider error by lower-cased substring match.
func Classify(err error) domain.ErrorCategory {
	if err == nil {
		return domain.CategoryUnknown
	}
	msg := strings.ToLower(err.Error())
	for _, rule := range classificationRules {
		if rule.match(err, msg) {
			return rule.category
		}
	}
	return domain.CategoryUnknown
}

func substring(needles ...string) func(error, string) bool {
	return func(_ error, msg string) bool {
		return containsAny(msg, needles...)
	}
}

func containsAny(msg string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
