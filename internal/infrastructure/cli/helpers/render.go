package helpers

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/textpolish/internal/domain"
)

// RenderHistoryLine prints one record as "#id | when | action | preview".
func RenderHistoryLine(out io.Writer, record domain.HistoryRecord, lang domain.Language, now time.Time) {
	fmt.Fprintf(out, "#%d | %s | %s | %s\n",
		record.ID,
		RelativeTime(record, now),
		domain.ActionLabel(lang, record.Action),
		Preview(record.InputText, domain.HistoryPreviewLength))
}

// RenderHistoryRecord prints the full record.
func RenderHistoryRecord(out io.Writer, record domain.HistoryRecord, lang domain.Language) {
	fmt.Fprintf(out, "ID: %d\n", record.ID)
	fmt.Fprintf(out, "Action: %s (%s)\n", domain.ActionLabel(lang, record.Action), record.Action)
	fmt.Fprintf(out, "Created: %s\n", record.Timestamp)
	fmt.Fprintf(out, "\nInput:\n%s\n", record.InputText)
	fmt.Fprintf(out, "\nOutput:\n%s\n", record.OutputText)
}

// RenderCatalog prints the toolbar registry, indenting grouped sub-actions.
func RenderCatalog(out io.Writer, lang domain.Language, selected domain.Action) {
	for _, entry := range domain.Catalog(lang) {
		if entry.IsGroup() {
			fmt.Fprintf(out, "  %s %s\n", entry.Icon, entry.Label)
			for _, sub := range entry.SubActions {
				renderEntry(out, "    ", sub, selected)
			}
			continue
		}
		renderEntry(out, "  ", entry, selected)
	}
}

func renderEntry(out io.Writer, indent string, entry domain.CatalogEntry, selected domain.Action) {
	marker := " "
	if entry.Action == selected {
		marker = "*"
	}
	fmt.Fprintf(out, "%s%s %s %-22s %-18s tier=%s\n", indent, marker, entry.Icon, entry.Action, entry.Label, entry.Action.Tier())
}

// RelativeTime renders the record age, e.g. "3 minutes ago".
func RelativeTime(record domain.HistoryRecord, now time.Time) string {
	created := record.CreatedAt()
	if created.IsZero() {
		return record.Timestamp
	}
	return humanize.RelTime(created, now, "ago", "from now")
}

// Preview flattens text to one line and truncates it to limit runes.
func Preview(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if limit <= 0 || utf8.RuneCountInString(flat) <= limit {
		return flat
	}
	runes := []rune(flat)
	return string(runes[:limit-1]) + "…"
}

// CharCountLabel renders the live character counter.
func CharCountLabel(lang domain.Language, count int) string {
	if lang == domain.LanguageEnglish {
		return fmt.Sprintf("%s characters", humanize.Comma(int64(count)))
	}
	return fmt.Sprintf("%s Zeichen", strings.ReplaceAll(humanize.Comma(int64(count)), ",", "."))
}
