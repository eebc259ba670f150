package history

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/pkg/logger"
)

var frozen = time.Date(2024, 5, 17, 9, 30, 0, 123_000_000, time.UTC)

func newTestStore(kv *stubKV) *Store {
	return NewStore(kv, "", logger.Nop{}, WithClock(func() time.Time { return frozen }))
}

func TestAddPrependsWithDistinctIDsInSameMillisecond(t *testing.T) {
	store := newTestStore(newStubKV())

	var records []domain.HistoryRecord
	for i, input := range []string{"a", "b", "c"} {
		records = store.Add(domain.HistoryDraft{InputText: input, OutputText: input + "!", Action: domain.ActionExpand})
		if len(records) != i+1 {
			t.Fatalf("expected %d records, got %d", i+1, len(records))
		}
	}

	if records[0].InputText != "c" || records[2].InputText != "a" {
		t.Fatalf("expected newest-first order, got %+v", records)
	}
	seen := map[int64]bool{}
	for _, record := range records {
		if seen[record.ID] {
			t.Fatalf("duplicate id %d", record.ID)
		}
		seen[record.ID] = true
	}
	if records[2].ID != frozen.UnixMilli() {
		t.Fatalf("first id = %d, want %d", records[2].ID, frozen.UnixMilli())
	}
	if records[0].Timestamp != "2024-05-17T09:30:00.123Z" {
		t.Fatalf("timestamp = %q", records[0].Timestamp)
	}
}

func TestAddAvoidsIDsAlreadyPersisted(t *testing.T) {
	kv := newStubKV()
	future := frozen.UnixMilli() + 500
	kv.data[domain.DefaultHistoryKey] = []byte(`[{"id":` + strconv.FormatInt(future, 10) + `,"inputText":"x","outputText":"y","action":"EXPAND","timestamp":"t"}]`)

	records := newTestStore(kv).Add(domain.HistoryDraft{InputText: "new", OutputText: "out", Action: domain.ActionFixGrammar})
	if records[0].ID != future+1 {
		t.Fatalf("expected id %d, got %d", future+1, records[0].ID)
	}
}

func TestRoundTripThroughSlot(t *testing.T) {
	kv := newStubKV()
	store := newTestStore(kv)
	store.Add(domain.HistoryDraft{InputText: "one", OutputText: "1", Action: domain.ActionSummarize})
	store.Add(domain.HistoryDraft{InputText: "two", OutputText: "2", Action: domain.ActionToneCasual})
	written := store.Delete(store.All()[1].ID)

	reread := NewStore(kv, "", logger.Nop{}).All()
	if diff := cmp.Diff(written, reread); diff != "" {
		t.Fatalf("round trip mismatch (-written +reread):\n%s", diff)
	}
}

func TestDeleteUnknownIDLeavesCollectionUntouched(t *testing.T) {
	kv := newStubKV()
	store := newTestStore(kv)
	before := store.Add(domain.HistoryDraft{InputText: "keep", OutputText: "me", Action: domain.ActionExpand})
	writes := kv.writes

	after := store.Delete(42)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("unexpected change (-before +after):\n%s", diff)
	}
	if kv.writes != writes {
		t.Fatal("expected no write for an unknown id")
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	store := newTestStore(newStubKV())
	store.Add(domain.HistoryDraft{InputText: "a", OutputText: "1", Action: domain.ActionExpand})
	records := store.Add(domain.HistoryDraft{InputText: "b", OutputText: "2", Action: domain.ActionExpand})
	target := records[0].ID

	store.Delete(target)
	for _, record := range store.All() {
		if record.ID == target {
			t.Fatalf("record %d still present", target)
		}
	}
	if _, err := store.Find(target); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("Find() error = %v", err)
	}
}

func TestAddRefusesInvalidDraft(t *testing.T) {
	kv := newStubKV()
	store := newTestStore(kv)
	before := store.Add(domain.HistoryDraft{InputText: "a", OutputText: "1", Action: domain.ActionExpand})
	stored := string(kv.data[domain.DefaultHistoryKey])

	drafts := []domain.HistoryDraft{
		{InputText: "   ", OutputText: "x", Action: domain.ActionExpand},
		{InputText: "text", OutputText: "x", Action: domain.Action("SHOUT")},
		{InputText: "text", OutputText: "x"},
	}
	for _, draft := range drafts {
		if diff := cmp.Diff(before, store.Add(draft)); diff != "" {
			t.Fatalf("Add(%+v) mismatch:\n%s", draft, diff)
		}
	}
	if got := string(kv.data[domain.DefaultHistoryKey]); got != stored {
		t.Fatalf("slot rewritten for refused drafts: %s", got)
	}
	if got := store.All(); len(got) != 1 {
		t.Fatalf("All() = %d records, want 1", len(got))
	}
}

func TestClearRemovesSlot(t *testing.T) {
	kv := newStubKV()
	store := newTestStore(kv)
	store.Add(domain.HistoryDraft{InputText: "a", OutputText: "1", Action: domain.ActionExpand})

	if got := store.Clear(); len(got) != 0 {
		t.Fatalf("Clear() returned %d records", len(got))
	}
	if _, ok := kv.data[domain.DefaultHistoryKey]; ok {
		t.Fatal("expected slot to be removed")
	}
	if got := store.All(); len(got) != 0 {
		t.Fatalf("All() after Clear() = %+v", got)
	}
}

func TestReadFailuresDegradeToEmpty(t *testing.T) {
	tests := []struct {
		name string
		kv   *stubKV
	}{
		{name: "absent slot", kv: newStubKV()},
		{name: "malformed json", kv: &stubKV{data: map[string][]byte{domain.DefaultHistoryKey: []byte("{nope")}}},
		{name: "backend error", kv: &stubKV{data: map[string][]byte{}, getErr: errors.New("disk gone")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestStore(tt.kv).All()
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil collection, got %#v", got)
			}
		})
	}
}

func TestWriteFailureReturnsPreMutationCollection(t *testing.T) {
	kv := newStubKV()
	store := newTestStore(kv)
	before := store.Add(domain.HistoryDraft{InputText: "a", OutputText: "1", Action: domain.ActionExpand})

	kv.setErr = errors.New("quota exceeded")
	if diff := cmp.Diff(before, store.Add(domain.HistoryDraft{InputText: "b", OutputText: "2", Action: domain.ActionExpand})); diff != "" {
		t.Fatalf("Add() on failure mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(before, store.Delete(before[0].ID)); diff != "" {
		t.Fatalf("Delete() on failure mismatch:\n%s", diff)
	}

	kv.removeErr = errors.New("locked")
	if got := store.Clear(); len(got) != 1 {
		t.Fatalf("Clear() on failure should return stored records, got %d", len(got))
	}
}

func TestSearch(t *testing.T) {
	store := newTestStore(newStubKV())
	store.Add(domain.HistoryDraft{InputText: "Hello World", OutputText: "Hallo Welt", Action: domain.ActionFixGrammar})
	store.Add(domain.HistoryDraft{InputText: "quarterly report", OutputText: "Q3 summary", Action: domain.ActionSummarize})
	store.Add(domain.HistoryDraft{InputText: "world peace", OutputText: "peace", Action: domain.ActionExpand})

	got := store.Search("WORLD", 0)
	if len(got) != 2 || got[0].InputText != "world peace" {
		t.Fatalf("Search(WORLD) = %+v", got)
	}
	if got := store.Search("welt", 1); len(got) != 1 {
		t.Fatalf("Search(welt) = %+v", got)
	}
	if got := store.Search("world", 1); len(got) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
}

func TestPrependAndWithoutDoNotAlias(t *testing.T) {
	base := []domain.HistoryRecord{{ID: 1}, {ID: 2}}
	grown := Prepend(base, domain.HistoryRecord{ID: 3})
	grown[1].InputText = "changed"
	if base[0].InputText != "" {
		t.Fatal("Prepend aliased its input")
	}

	shrunk, removed := Without(base, 1)
	if !removed || len(shrunk) != 1 || shrunk[0].ID != 2 {
		t.Fatalf("Without() = %+v, %v", shrunk, removed)
	}
	if len(base) != 2 {
		t.Fatal("Without mutated its input")
	}
}

type stubKV struct {
	data      map[string][]byte
	writes    int
	getErr    error
	setErr    error
	removeErr error
}

func newStubKV() *stubKV {
	return &stubKV{data: map[string][]byte{}}
}

func (s *stubKV) Get(key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *stubKV) Set(key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.writes++
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *stubKV) Remove(key string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.data, key)
	return nil
}

func (s *stubKV) Close() error { return nil }
