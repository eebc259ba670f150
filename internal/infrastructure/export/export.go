// Package export writes history records as JSON lines, Markdown, or standalone HTML.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/doeshing/textpolish/internal/domain"
)

// Format selects the export layout.
type Format string

const (
	FormatJSONL    Format = "jsonl"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat accepts a format name or common alias.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "jsonl", "json":
		return FormatJSONL, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", value)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON lines.
func FormatFromPath(path string) Format {
	if format, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return format
	}
	return FormatJSONL
}

// Write renders records to w.
func Write(w io.Writer, format Format, records []domain.HistoryRecord, lang domain.Language) error {
	switch format {
	case FormatJSONL:
		return writeJSONL(w, records)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(records, lang))
		return err
	case FormatHTML:
		return writeHTML(w, records, lang)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func writeJSONL(w io.Writer, records []domain.HistoryRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

var headings = map[domain.Language]struct{ title, input, output string }{
	domain.LanguageGerman:  {"Verlauf", "Eingabe", "Ergebnis"},
	domain.LanguageEnglish: {"History", "Input", "Result"},
}

// Markdown renders records newest first, with texts in fenced blocks so they stay verbatim.
func Markdown(records []domain.HistoryRecord, lang domain.Language) string {
	h, ok := headings[lang]
	if !ok {
		h = headings[domain.DefaultLanguage]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", h.title)
	for _, record := range records {
		fmt.Fprintf(&b, "\n## %s · %s\n\n", domain.ActionLabel(lang, record.Action), displayTime(record, lang))
		fmt.Fprintf(&b, "**%s**\n\n%s\n\n", h.input, fenced(record.InputText))
		fmt.Fprintf(&b, "**%s**\n\n%s\n", h.output, fenced(record.OutputText))
	}
	return b.String()
}

func writeHTML(w io.Writer, records []domain.HistoryRecord, lang domain.Language) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(records, lang)), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	title := headings[domain.DefaultLanguage].title
	if h, ok := headings[lang]; ok {
		title = h.title
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(string(lang)), html.EscapeString(title), body.String())
	return err
}

func displayTime(record domain.HistoryRecord, lang domain.Language) string {
	created := record.CreatedAt()
	if created.IsZero() {
		return record.Timestamp
	}
	if lang == domain.LanguageGerman {
		return created.Local().Format(domain.GermanDisplayTimestampFormat)
	}
	return created.Local().Format(domain.DisplayTimestampFormat)
}

// fenced wraps text in a code fence longer than any backtick run inside it.
func fenced(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", max(3, longest+1))
	return fence + "text\n" + text + "\n" + fence
}
