package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/pkg/logger"
)

func newTestController(improver *stubImprover, history *stubHistory) *Controller {
	return New(improver, history, logger.Nop{}, domain.Config{})
}

func TestSubmitSuccessAppendsOneRecord(t *testing.T) {
	improver := &stubImprover{output: "The cat sat."}
	history := &stubHistory{}
	c := newTestController(improver, history)

	c.SetInput("teh cat sat")
	view, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if view.State != domain.StateSuccess || view.Output != "The cat sat." {
		t.Fatalf("unexpected view %+v", view)
	}
	want := []domain.HistoryRecord{{ID: 1, InputText: "teh cat sat", OutputText: "The cat sat.", Action: domain.ActionFixGrammar}}
	if diff := cmp.Diff(want, view.History); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if improver.calls != 1 {
		t.Fatalf("expected one improve call, got %d", improver.calls)
	}
}

func TestSubmitFailureShowsCategoryMessage(t *testing.T) {
	improver := &stubImprover{err: domain.NewImproveError(domain.CategoryRateLimit, domain.LanguageGerman, errors.New("HTTP 429"))}
	history := &stubHistory{}
	c := newTestController(improver, history)

	c.SetInput("hello")
	view, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if view.State != domain.StateFailed {
		t.Fatalf("state = %s, want failed", view.State)
	}
	if view.Error != "Zu viele Anfragen. Bitte warten Sie einen Moment." {
		t.Fatalf("error = %q", view.Error)
	}
	if view.Output != "" || len(view.History) != 0 || history.adds != 0 {
		t.Fatalf("failed request must not produce output or history: %+v", view)
	}
	if !view.CanRetry {
		t.Fatal("expected retry to be offered")
	}
}

func TestSubmitRejectsBlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		improver := &stubImprover{output: "x"}
		c := newTestController(improver, &stubHistory{})
		c.SetInput(input)

		view, err := c.Submit(context.Background())
		if !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("Submit(%q) error = %v", input, err)
		}
		if view.State != domain.StateIdle || improver.calls != 0 {
			t.Fatalf("blank input must not transition or call the improver: %+v", view)
		}
	}
}

func TestBlankInputFromFailedStaysFailed(t *testing.T) {
	improver := &stubImprover{err: errors.New("boom")}
	c := newTestController(improver, &stubHistory{})
	c.SetInput("text")
	c.Submit(context.Background())

	c.SetInput(" ")
	view, err := c.Submit(context.Background())
	if !errors.Is(err, ErrEmptyInput) || view.State != domain.StateFailed {
		t.Fatalf("expected failed state to persist, got %s / %v", view.State, err)
	}
	if improver.calls != 1 {
		t.Fatalf("improver called %d times", improver.calls)
	}
}

func TestBeginWhileLoadingIsBusy(t *testing.T) {
	c := newTestController(&stubImprover{}, &stubHistory{})
	c.SetInput("text")

	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if view := c.Snapshot(); view.State != domain.StateLoading || view.CanSubmit() {
		t.Fatalf("expected loading with submit disabled, got %+v", view)
	}
	if _, err := c.Begin(); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Begin() error = %v", err)
	}
}

func TestLoadingClearsPreviousOutputAndError(t *testing.T) {
	improver := &stubImprover{err: errors.New("boom")}
	c := newTestController(improver, &stubHistory{})
	c.SetInput("text")
	c.Submit(context.Background())

	if _, err := c.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	view := c.Snapshot()
	if view.Error != "" || view.Output != "" || view.ErrorCategory != "" {
		t.Fatalf("expected cleared output and error, got %+v", view)
	}
}

func TestUnclassifiedErrorBecomesUnknown(t *testing.T) {
	c := newTestController(&stubImprover{err: errors.New("weird")}, &stubHistory{})
	c.SetInput("text")
	view, _ := c.Submit(context.Background())

	if view.ErrorCategory != domain.CategoryUnknown || view.Error != domain.CategoryUnknown.Message(domain.LanguageGerman) {
		t.Fatalf("unexpected error view %+v", view)
	}
}

func TestRetryResubmitsLastRequest(t *testing.T) {
	improver := &stubImprover{err: errors.New("boom")}
	history := &stubHistory{}
	c := newTestController(improver, history)
	c.SelectAction(domain.ActionSummarize)
	c.SetInput("long text")
	c.Submit(context.Background())

	c.SetInput("edited meanwhile")
	improver.err = nil
	improver.output = "short"
	view, err := c.Retry(context.Background())
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if view.State != domain.StateSuccess || view.Input != "long text" {
		t.Fatalf("unexpected view %+v", view)
	}
	if improver.lastInput != "long text" || improver.lastAction != domain.ActionSummarize {
		t.Fatalf("retry sent %q / %s", improver.lastInput, improver.lastAction)
	}
	if history.adds != 1 {
		t.Fatalf("expected one history record, got %d", history.adds)
	}
}

func TestRetryOutsideFailed(t *testing.T) {
	c := newTestController(&stubImprover{output: "ok"}, &stubHistory{})
	if _, err := c.Retry(context.Background()); !errors.Is(err, ErrNothingToRetry) {
		t.Fatalf("Retry() from idle error = %v", err)
	}

	c.SetInput("text")
	c.Submit(context.Background())
	if _, err := c.Retry(context.Background()); !errors.Is(err, ErrNothingToRetry) {
		t.Fatalf("Retry() from success error = %v", err)
	}
}

func TestSelectHistoryItemRestoresWithoutCall(t *testing.T) {
	history := &stubHistory{records: []domain.HistoryRecord{
		{ID: 7, InputText: "X", OutputText: "Y", Action: domain.ActionSummarize},
	}}
	improver := &stubImprover{}
	c := newTestController(improver, history)

	if err := c.SelectHistoryItem(7); err != nil {
		t.Fatalf("SelectHistoryItem() error = %v", err)
	}
	view := c.Snapshot()
	if view.Input != "X" || view.Output != "Y" || view.Action != domain.ActionSummarize || view.State != domain.StateIdle {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.CharCount != 1 {
		t.Fatalf("char count = %d", view.CharCount)
	}
	if improver.calls != 0 {
		t.Fatal("selecting history must not call the improver")
	}
	if err := c.SelectHistoryItem(99); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("SelectHistoryItem(99) error = %v", err)
	}
}

func TestSelectHistoryItemClearsError(t *testing.T) {
	history := &stubHistory{records: []domain.HistoryRecord{{ID: 1, InputText: "a", OutputText: "b", Action: domain.ActionExpand}}}
	c := newTestController(&stubImprover{err: errors.New("boom")}, history)
	c.SetInput("text")
	c.Submit(context.Background())

	c.SelectHistoryItem(1)
	if view := c.Snapshot(); view.Error != "" || view.CanRetry {
		t.Fatalf("expected error cleared, got %+v", view)
	}
}

func TestStaleOutcomeIsDiscarded(t *testing.T) {
	history := &stubHistory{records: []domain.HistoryRecord{{ID: 1, InputText: "old", OutputText: "older", Action: domain.ActionExpand}}}
	improver := &stubImprover{output: "late"}
	c := newTestController(improver, history)
	c.SetInput("text")

	ticket, err := c.Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	c.SelectHistoryItem(1)

	if c.Complete(c.Await(context.Background(), ticket)) {
		t.Fatal("expected stale outcome to be discarded")
	}
	view := c.Snapshot()
	if view.Output != "older" || view.State != domain.StateIdle || history.adds != 0 {
		t.Fatalf("stale outcome leaked into state: %+v", view)
	}
}

func TestAbandonThenResubmit(t *testing.T) {
	improver := &stubImprover{output: "fresh"}
	history := &stubHistory{}
	c := newTestController(improver, history)
	c.SetInput("text")

	first, _ := c.Begin()
	if !c.Abandon() {
		t.Fatal("expected Abandon() to leave loading")
	}
	second, err := c.Begin()
	if err != nil {
		t.Fatalf("Begin() after abandon error = %v", err)
	}

	if c.Complete(Outcome{Ticket: first, Output: "stale"}) {
		t.Fatal("first ticket should be stale")
	}
	if !c.Complete(Outcome{Ticket: second, Output: "fresh"}) {
		t.Fatal("second ticket should complete")
	}
	if view := c.Snapshot(); view.Output != "fresh" || history.adds != 1 {
		t.Fatalf("unexpected view %+v", view)
	}
	if first.RequestID == second.RequestID {
		t.Fatal("request ids must differ")
	}
}

func TestDeleteAndClearKeepCurrentDisplay(t *testing.T) {
	history := &stubHistory{}
	c := newTestController(&stubImprover{output: "out"}, history)
	c.SetInput("in")
	c.Submit(context.Background())
	c.Submit(context.Background())

	before := c.Snapshot()
	c.DeleteHistoryItem(before.History[0].ID)
	after := c.Snapshot()
	if len(after.History) != 1 || after.Output != "out" || after.Input != "in" || after.State != domain.StateSuccess {
		t.Fatalf("unexpected view after delete %+v", after)
	}

	c.ClearHistory()
	cleared := c.Snapshot()
	if len(cleared.History) != 0 || cleared.Output != "out" {
		t.Fatalf("unexpected view after clear %+v", cleared)
	}
}

func TestSelectActionRejectsUnknown(t *testing.T) {
	c := newTestController(&stubImprover{}, &stubHistory{})
	if err := c.SelectAction("TONE_GROUP"); !errors.Is(err, domain.ErrUnknownAction) {
		t.Fatalf("SelectAction() error = %v", err)
	}
	if view := c.Snapshot(); view.Action != domain.ActionFixGrammar {
		t.Fatalf("action changed to %s", view.Action)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	history := &stubHistory{records: []domain.HistoryRecord{{ID: 1, InputText: "a"}}}
	c := newTestController(&stubImprover{}, history)

	view := c.Snapshot()
	view.History[0].InputText = "mutated"
	if c.Snapshot().History[0].InputText != "a" {
		t.Fatal("snapshot aliases controller state")
	}
}

type stubImprover struct {
	output     string
	err        error
	calls      int
	lastInput  string
	lastAction domain.Action
}

func (s *stubImprover) Improve(_ context.Context, text string, action domain.Action) (string, error) {
	s.calls++
	s.lastInput = text
	s.lastAction = action
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

type stubHistory struct {
	records []domain.HistoryRecord
	nextID  int64
	adds    int
}

func (s *stubHistory) All() []domain.HistoryRecord {
	return append([]domain.HistoryRecord(nil), s.records...)
}

func (s *stubHistory) Add(draft domain.HistoryDraft) []domain.HistoryRecord {
	s.adds++
	s.nextID++
	record := domain.HistoryRecord{ID: s.nextID, InputText: draft.InputText, OutputText: draft.OutputText, Action: draft.Action}
	s.records = append([]domain.HistoryRecord{record}, s.records...)
	return s.All()
}

func (s *stubHistory) Delete(id int64) []domain.HistoryRecord {
	var kept []domain.HistoryRecord
	for _, record := range s.records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	s.records = kept
	return s.All()
}

func (s *stubHistory) Clear() []domain.HistoryRecord {
	s.records = nil
	return []domain.HistoryRecord{}
}
