package helpers

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/textpolish/internal/domain"
)

func TestAnalyzeHistory(t *testing.T) {
	records := []domain.HistoryRecord{
		{ID: 3, Action: domain.ActionSummarize, InputText: "abc", OutputText: "a", Timestamp: "2024-05-03T10:00:00.000Z"},
		{ID: 2, Action: domain.ActionFixGrammar, InputText: "äöü", OutputText: "ÄÖÜ.", Timestamp: "2024-05-02T10:00:00.000Z"},
		{ID: 1, Action: domain.ActionFixGrammar, InputText: "x", OutputText: "X.", Timestamp: "garbage"},
	}

	stats := AnalyzeHistory(records)
	if stats.Total != 3 || stats.InputChars != 7 || stats.OutputChars != 7 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if len(stats.Actions) != 2 || stats.Actions[0].Action != domain.ActionFixGrammar || stats.Actions[0].Count != 2 {
		t.Fatalf("unexpected action ranking: %+v", stats.Actions)
	}
	if got := int(stats.Actions[1].Share + 0.5); got != 33 {
		t.Fatalf("summarize share = %.2f", stats.Actions[1].Share)
	}
	if stats.Oldest.Day() != 2 || stats.Newest.Day() != 3 {
		t.Fatalf("unexpected span %v - %v", stats.Oldest, stats.Newest)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{in: "short", limit: 10, want: "short"},
		{in: "line one\n\tline two", limit: 40, want: "line one line two"},
		{in: "Grüße aus Köln", limit: 6, want: "Grüße…"},
		{in: "anything", limit: 0, want: "anything"},
	}
	for _, tt := range tests {
		if got := Preview(tt.in, tt.limit); got != tt.want {
			t.Errorf("Preview(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestCharCountLabel(t *testing.T) {
	if got := CharCountLabel(domain.LanguageGerman, 1234); got != "1.234 Zeichen" {
		t.Fatalf("german label = %q", got)
	}
	if got := CharCountLabel(domain.LanguageEnglish, 1); got != "1 characters" {
		t.Fatalf("english label = %q", got)
	}
}

func TestReadInput(t *testing.T) {
	got, err := ReadInput([]string{"teh", "cat"}, strings.NewReader("ignored"))
	if err != nil || got != "teh cat" {
		t.Fatalf("args input = %q, %v", got, err)
	}
	got, err = ReadInput(nil, strings.NewReader("from pipe\n"))
	if err != nil || got != "from pipe" {
		t.Fatalf("stdin input = %q, %v", got, err)
	}
	got, err = ReadInput([]string{"-"}, strings.NewReader("dash\r\n"))
	if err != nil || got != "dash" {
		t.Fatalf("dash input = %q, %v", got, err)
	}
}

func TestPromptForYesNo(t *testing.T) {
	var out bytes.Buffer
	if !PromptForYesNo(&out, bufio.NewReader(strings.NewReader("ja\n")), "Clear?", false) {
		t.Fatal("expected german affirmative to count as yes")
	}
	if PromptForConfirmation(&out, strings.NewReader("\n"), "Clear?") {
		t.Fatal("empty answer must keep the default no")
	}
	if !strings.Contains(out.String(), "[y/N]") {
		t.Fatalf("prompt = %q", out.String())
	}
}

func TestRenderHistoryLine(t *testing.T) {
	now := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	record := domain.HistoryRecord{ID: 7, Action: domain.ActionToneCasual, InputText: "hello there", Timestamp: "2024-05-17T09:58:00.000Z"}

	var out bytes.Buffer
	RenderHistoryLine(&out, record, domain.LanguageEnglish, now)
	want := "#7 | 2 minutes ago | Casual | hello there\n"
	if out.String() != want {
		t.Fatalf("line = %q, want %q", out.String(), want)
	}
}
