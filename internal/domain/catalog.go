package domain

import "strings"

// Language selects the locale for labels, instructions and user-facing messages.
type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = LanguageGerman

// ParseLanguage normalizes a configured language, falling back to the default.
func ParseLanguage(value string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(value))) {
	case LanguageGerman:
		return LanguageGerman, true
	case LanguageEnglish:
		return LanguageEnglish, true
	default:
		return DefaultLanguage, false
	}
}

// ToneGroupID is the catalog id of the presentation-only tone dropdown.
const ToneGroupID = "TONE_GROUP"

// CatalogEntry is one toolbar entry. Group entries carry SubActions and no Action.
type CatalogEntry struct {
	ID         string
	Action     Action
	Label      string
	Icon       string
	SubActions []CatalogEntry
}

// IsGroup reports whether the entry only groups sub-actions.
func (e CatalogEntry) IsGroup() bool {
	return len(e.SubActions) > 0
}

// Contains reports whether the entry is, or groups, the given action.
func (e CatalogEntry) Contains(action Action) bool {
	if e.Action == action && action != "" {
		return true
	}
	for _, sub := range e.SubActions {
		if sub.Action == action {
			return true
		}
	}
	return false
}

var catalogLabels = map[Language]map[string]string{
	LanguageGerman: {
		string(ActionFixGrammar):       "Grammatik korrigieren",
		string(ActionSummarize):        "Zusammenfassen",
		string(ActionExpand):           "Erweitern",
		ToneGroupID:                    "Ton ändern",
		string(ActionToneProfessional): "Professionell",
		string(ActionToneCasual):       "Locker",
	},
	LanguageEnglish: {
		string(ActionFixGrammar):       "Fix grammar",
		string(ActionSummarize):        "Summarize",
		string(ActionExpand):           "Expand",
		ToneGroupID:                    "Change tone",
		string(ActionToneProfessional): "Professional",
		string(ActionToneCasual):       "Casual",
	},
}

var catalogIcons = map[string]string{
	string(ActionFixGrammar):       "✎",
	string(ActionSummarize):        "≡",
	string(ActionExpand):           "⤢",
	ToneGroupID:                    "♫",
	string(ActionToneProfessional): "◆",
	string(ActionToneCasual):       "☺",
}

// Catalog returns the toolbar registry for the language. The result is freshly
// allocated on every call so callers may not corrupt the shared tables.
func Catalog(lang Language) []CatalogEntry {
	return []CatalogEntry{
		actionEntry(lang, ActionFixGrammar),
		actionEntry(lang, ActionSummarize),
		actionEntry(lang, ActionExpand),
		{
			ID:    ToneGroupID,
			Label: label(lang, ToneGroupID),
			Icon:  catalogIcons[ToneGroupID],
			SubActions: []CatalogEntry{
				actionEntry(lang, ActionToneProfessional),
				actionEntry(lang, ActionToneCasual),
			},
		},
	}
}

// FindAction looks up an action across the nested catalog.
func FindAction(lang Language, action Action) (CatalogEntry, bool) {
	for _, entry := range Catalog(lang) {
		if entry.Action == action && !entry.IsGroup() {
			return entry, true
		}
		for _, sub := range entry.SubActions {
			if sub.Action == action {
				return sub, true
			}
		}
	}
	return CatalogEntry{}, false
}

// ActionLabel returns the localized label, or a localized "unknown" for unsupported ids.
func ActionLabel(lang Language, action Action) string {
	if entry, ok := FindAction(lang, action); ok {
		return entry.Label
	}
	if lang == LanguageEnglish {
		return "Unknown"
	}
	return "Unbekannt"
}

func actionEntry(lang Language, action Action) CatalogEntry {
	return CatalogEntry{
		ID:     string(action),
		Action: action,
		Label:  label(lang, string(action)),
		Icon:   catalogIcons[string(action)],
	}
}

func label(lang Language, id string) string {
	labels, ok := catalogLabels[lang]
	if !ok {
		labels = catalogLabels[DefaultLanguage]
	}
	return labels[id]
}
