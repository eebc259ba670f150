package history

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

// Store keeps the newest-first history list under a single key-value slot.
// Every mutation reads the whole list, rewrites it, and returns the result.
// Persistence failures are logged and degrade to the pre-mutation list.
type Store struct {
	kv     ports.KeyValueStore
	key    string
	logger ports.Logger
	now    func() time.Time

	mu     sync.Mutex
	lastID int64
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the wall clock used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a history store over kv. An empty key selects the default slot.
func NewStore(kv ports.KeyValueStore, key string, logger ports.Logger, opts ...Option) *Store {
	if key == "" {
		key = domain.DefaultHistoryKey
	}
	s := &Store{kv: kv, key: key, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot name.
func (s *Store) Key() string {
	return s.key
}

// All returns the persisted collection, or an empty one if the slot is absent or unreadable.
func (s *Store) All() []domain.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add creates a record from draft, prepends it and persists the list. Drafts with
// blank input or an unknown action are refused and the collection is returned as is.
func (s *Store) Add(draft domain.HistoryDraft) []domain.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load()
	if strings.TrimSpace(draft.InputText) == "" || !draft.Action.Valid() {
		s.logger.Warn("refusing invalid history draft", map[string]interface{}{
			"key":    s.key,
			"action": string(draft.Action),
		})
		return current
	}
	now := s.now()
	record := domain.HistoryRecord{
		ID:         s.nextID(now, current),
		InputText:  draft.InputText,
		OutputText: draft.OutputText,
		Action:     draft.Action,
		Timestamp:  domain.FormatTimestamp(now),
	}

	updated := Prepend(current, record)
	if err := s.persist(updated); err != nil {
		s.logger.Error("failed to save history record", err, map[string]interface{}{
			"key": s.key,
			"id":  record.ID,
		})
		return current
	}
	s.lastID = record.ID
	return updated
}

// Delete removes the record with id. Deleting an unknown id is a no-op.
func (s *Store) Delete(id int64) []domain.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load()
	updated, removed := Without(current, id)
	if !removed {
		return current
	}
	if err := s.persist(updated); err != nil {
		s.logger.Error("failed to delete history record", err, map[string]interface{}{
			"key": s.key,
			"id":  id,
		})
		return current
	}
	return updated
}

// Clear removes the slot entirely and, like the other mutators, returns the resulting
// collection: empty on success, the unchanged collection if removal failed.
func (s *Store) Clear() []domain.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(s.key); err != nil {
		s.logger.Error("failed to clear history", err, map[string]interface{}{"key": s.key})
		return s.load()
	}
	return []domain.HistoryRecord{}
}

// Find returns the record with id.
func (s *Store) Find(id int64) (domain.HistoryRecord, error) {
	for _, record := range s.All() {
		if record.ID == id {
			return record, nil
		}
	}
	return domain.HistoryRecord{}, domain.ErrRecordNotFound
}

// Search returns up to limit records whose input or output contains query
// (case-insensitive), newest first. A non-positive limit returns all matches.
func (s *Store) Search(query string, limit int) []domain.HistoryRecord {
	needle := strings.ToLower(strings.TrimSpace(query))
	var matches []domain.HistoryRecord
	for _, record := range s.All() {
		if needle != "" &&
			!strings.Contains(strings.ToLower(record.InputText), needle) &&
			!strings.Contains(strings.ToLower(record.OutputText), needle) {
			continue
		}
		matches = append(matches, record)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches
}

// Prepend returns a new slice with record in front of records.
func Prepend(records []domain.HistoryRecord, record domain.HistoryRecord) []domain.HistoryRecord {
	out := make([]domain.HistoryRecord, 0, len(records)+1)
	out = append(out, record)
	return append(out, records...)
}

// Without returns a new slice lacking the record with id, and whether one was removed.
func Without(records []domain.HistoryRecord, id int64) ([]domain.HistoryRecord, bool) {
	out := make([]domain.HistoryRecord, 0, len(records))
	removed := false
	for _, record := range records {
		if record.ID == id {
			removed = true
			continue
		}
		out = append(out, record)
	}
	return out, removed
}

func (s *Store) load() []domain.HistoryRecord {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Error("failed to read history", err, map[string]interface{}{"key": s.key})
		return []domain.HistoryRecord{}
	}
	if !ok || len(data) == 0 {
		return []domain.HistoryRecord{}
	}
	var records []domain.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Error("failed to parse history", err, map[string]interface{}{"key": s.key})
		return []domain.HistoryRecord{}
	}
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	return records
}

func (s *Store) persist(records []domain.HistoryRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(s.key, data)
}

// nextID uses epoch milliseconds like the persisted format always has, bumped past
// both the last issued id and every stored id so same-millisecond adds never collide.
func (s *Store) nextID(now time.Time, existing []domain.HistoryRecord) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for _, record := range existing {
		if record.ID >= id {
			id = record.ID + 1
		}
	}
	return id
}

var _ ports.HistoryStore = (*Store)(nil)
