package tui

import "github.com/doeshing/textpolish/internal/domain"

type uiText struct {
	title        string
	input        string
	output       string
	history      string
	placeholder  string
	loading      string
	emptyOutput  string
	emptyHistory string
	retryHint    string
	copyHint     string
	copied       string
	clearAllHint string
	noClipboard  string
	emptyInput   string
	help         string
}

var texts = map[domain.Language]uiText{
	domain.LanguageGerman: {
		title:        "Textverbesserung",
		input:        "Eingabe",
		output:       "Ergebnis",
		history:      "Verlauf",
		placeholder:  "Text hier eingeben oder einfügen…",
		loading:      "Wird verarbeitet…",
		emptyOutput:  "Das verbesserte Ergebnis erscheint hier.",
		emptyHistory: "Noch keine Einträge.",
		retryHint:    "r: erneut versuchen",
		copyHint:     "c: kopieren",
		copied:       "Kopiert!",
		clearAllHint: "D: alle löschen",
		noClipboard:  "Zwischenablage nicht verfügbar.",
		emptyInput:   "Bitte zuerst Text eingeben.",
		help:         "tab: Bereich  ctrl+s: ausführen  esc: abbrechen  enter: wählen  d: löschen  ctrl+c: beenden",
	},
	domain.LanguageEnglish: {
		title:        "Text improvement",
		input:        "Input",
		output:       "Result",
		history:      "History",
		placeholder:  "Type or paste text here…",
		loading:      "Working…",
		emptyOutput:  "The improved text appears here.",
		emptyHistory: "No entries yet.",
		retryHint:    "r: retry",
		copyHint:     "c: copy",
		copied:       "Copied!",
		clearAllHint: "D: clear all",
		noClipboard:  "Clipboard unavailable.",
		emptyInput:   "Enter some text first.",
		help:         "tab: focus  ctrl+s: run  esc: cancel  enter: select  d: delete  ctrl+c: quit",
	},
}

func textFor(lang domain.Language) uiText {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[domain.DefaultLanguage]
}
