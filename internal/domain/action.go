package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Action identifies one of the fixed text improvement operations.
type Action string

const (
	ActionFixGrammar       Action = "FIX_GRAMMAR"
	ActionSummarize        Action = "SUMMARIZE"
	ActionExpand           Action = "EXPAND"
	ActionToneProfessional Action = "TONE_PROFESSIONAL"
	ActionToneCasual       Action = "TONE_CASUAL"
)

// ErrUnknownAction is returned when an identifier does not name a supported action.
var ErrUnknownAction = errors.New("unknown action")

// ModelTier selects which configured model handles an action.
type ModelTier string

const (
	TierLight ModelTier = "light"
	TierHeavy ModelTier = "heavy"
)

// AllActions lists every supported action in catalog order.
func AllActions() []Action {
	return []Action{
		ActionFixGrammar,
		ActionSummarize,
		ActionExpand,
		ActionToneProfessional,
		ActionToneCasual,
	}
}

// Valid reports whether a is one of the supported actions.
func (a Action) Valid() bool {
	for _, known := range AllActions() {
		if a == known {
			return true
		}
	}
	return false
}

// Tier returns the model tier for the action. Rewrites of similar length stay on the
// light tier; summarize and expand need the heavy one.
func (a Action) Tier() ModelTier {
	switch a {
	case ActionSummarize, ActionExpand:
		return TierHeavy
	default:
		return TierLight
	}
}

func (a Action) String() string {
	return string(a)
}

var actionAliases = map[string]Action{
	"grammar":           ActionFixGrammar,
	"fix-grammar":       ActionFixGrammar,
	"fix_grammar":       ActionFixGrammar,
	"summarize":         ActionSummarize,
	"summary":           ActionSummarize,
	"expand":            ActionExpand,
	"professional":      ActionToneProfessional,
	"tone-professional": ActionToneProfessional,
	"tone_professional": ActionToneProfessional,
	"casual":            ActionToneCasual,
	"tone-casual":       ActionToneCasual,
	"tone_casual":       ActionToneCasual,
}

// ParseAction resolves canonical identifiers (case-insensitive) and the short CLI aliases.
func ParseAction(value string) (Action, error) {
	trimmed := strings.TrimSpace(value)
	if candidate := Action(strings.ToUpper(trimmed)); candidate.Valid() {
		return candidate, nil
	}
	if action, ok := actionAliases[strings.ToLower(trimmed)]; ok {
		return action, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, value)
}
