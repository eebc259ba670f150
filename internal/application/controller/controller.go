package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

var (
	// ErrEmptyInput rejects a submission whose trimmed input is empty.
	ErrEmptyInput = errors.New("input is empty")
	// ErrBusy rejects a submission while another request is loading.
	ErrBusy = errors.New("a request is already in progress")
	// ErrNothingToRetry is returned by retry outside the failed state.
	ErrNothingToRetry = errors.New("no failed request to retry")
)

// Ticket identifies one issued request. Only the ticket with the latest sequence
// number may complete; older ones are discarded as stale.
type Ticket struct {
	Seq       uint64
	RequestID string
	Input     string
	Action    domain.Action
}

// Outcome is the result of running a ticket against the improver.
type Outcome struct {
	Ticket Ticket
	Output string
	Err    error
}

// Controller owns the request lifecycle and the display state. The history list it
// holds is replaced wholesale by whatever the history store returns.
type Controller struct {
	improver ports.Improver
	history  ports.HistoryStore
	logger   ports.Logger
	lang     domain.Language

	mu          sync.Mutex
	state       domain.RequestState
	input       string
	output      string
	errMessage  string
	errCategory domain.ErrorCategory
	action      domain.Action
	records     []domain.HistoryRecord
	seq         uint64
	last        *Ticket
}

// New creates a controller in the idle state with the persisted history loaded.
func New(improver ports.Improver, history ports.HistoryStore, logger ports.Logger, cfg domain.Config) *Controller {
	return &Controller{
		improver: improver,
		history:  history,
		logger:   logger,
		lang:     cfg.GetLanguage(),
		state:    domain.StateIdle,
		action:   cfg.GetDefaultAction(),
		records:  history.All(),
	}
}

// Language returns the display language.
func (c *Controller) Language() domain.Language {
	return c.lang
}

// SetInput replaces the current input text.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// SelectAction changes the action used by the next submission.
func (c *Controller) SelectAction(action domain.Action) error {
	if !action.Valid() {
		return domain.ErrUnknownAction
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.action = action
	return nil
}

// Begin moves to loading and issues a ticket for the current input and action.
func (c *Controller) Begin() (Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked(c.input, c.action)
}

// BeginRetry re-issues the last submitted input and action after a failure.
func (c *Controller) BeginRetry() (Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != domain.StateFailed || c.last == nil {
		return Ticket{}, ErrNothingToRetry
	}
	c.input = c.last.Input
	c.action = c.last.Action
	return c.beginLocked(c.last.Input, c.last.Action)
}

func (c *Controller) beginLocked(input string, action domain.Action) (Ticket, error) {
	if c.state == domain.StateLoading {
		return Ticket{}, ErrBusy
	}
	if strings.TrimSpace(input) == "" {
		return Ticket{}, ErrEmptyInput
	}

	c.seq++
	ticket := Ticket{
		Seq:       c.seq,
		RequestID: uuid.NewString(),
		Input:     input,
		Action:    action,
	}
	c.state = domain.StateLoading
	c.output = ""
	c.errMessage = ""
	c.errCategory = ""
	c.last = &ticket

	c.logger.Debug("request started", map[string]interface{}{
		"request_id": ticket.RequestID,
		"action":     string(action),
		"chars":      utf8.RuneCountInString(input),
	})
	return ticket, nil
}

// Await runs the ticket against the improver. It does not touch controller state,
// so it may run on any goroutine.
func (c *Controller) Await(ctx context.Context, ticket Ticket) Outcome {
	output, err := c.improver.Improve(ctx, ticket.Input, ticket.Action)
	return Outcome{Ticket: ticket, Output: output, Err: err}
}

// Complete applies an outcome. It returns false when the outcome is stale because
// the request was abandoned or superseded.
func (c *Controller) Complete(outcome Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	fields := map[string]interface{}{
		"request_id": outcome.Ticket.RequestID,
		"seq":        outcome.Ticket.Seq,
	}
	if c.state != domain.StateLoading || outcome.Ticket.Seq != c.seq {
		c.logger.Debug("discarding stale response", fields)
		return false
	}

	if outcome.Err != nil {
		var improveErr *domain.ImproveError
		if !errors.As(outcome.Err, &improveErr) {
			improveErr = domain.NewImproveError(domain.CategoryUnknown, c.lang, outcome.Err)
		}
		c.state = domain.StateFailed
		c.output = ""
		c.errMessage = improveErr.Message
		c.errCategory = improveErr.Category
		fields["category"] = string(improveErr.Category)
		c.logger.Info("request failed", fields)
		return true
	}

	c.state = domain.StateSuccess
	c.output = outcome.Output
	c.records = c.history.Add(domain.HistoryDraft{
		InputText:  outcome.Ticket.Input,
		OutputText: outcome.Output,
		Action:     outcome.Ticket.Action,
	})
	c.logger.Info("request succeeded", fields)
	return true
}

// Submit runs a full request synchronously.
func (c *Controller) Submit(ctx context.Context) (domain.View, error) {
	ticket, err := c.Begin()
	if err != nil {
		return c.Snapshot(), err
	}
	c.Complete(c.Await(ctx, ticket))
	return c.Snapshot(), nil
}

// Retry re-runs the failed request synchronously.
func (c *Controller) Retry(ctx context.Context) (domain.View, error) {
	ticket, err := c.BeginRetry()
	if err != nil {
		return c.Snapshot(), err
	}
	c.Complete(c.Await(ctx, ticket))
	return c.Snapshot(), nil
}

// Abandon leaves the loading state; a late response for the abandoned request is
// discarded and records no history.
func (c *Controller) Abandon() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.abandonLocked()
}

func (c *Controller) abandonLocked() bool {
	if c.state != domain.StateLoading {
		return false
	}
	c.seq++
	c.state = domain.StateIdle
	c.logger.Debug("request abandoned", map[string]interface{}{"seq": c.seq - 1})
	return true
}

// SelectHistoryItem restores a record's input, output and action and returns to idle.
func (c *Controller) SelectHistoryItem(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, record := range c.records {
		if record.ID != id {
			continue
		}
		c.abandonLocked()
		c.state = domain.StateIdle
		c.input = record.InputText
		c.output = record.OutputText
		c.action = record.Action
		c.errMessage = ""
		c.errCategory = ""
		return nil
	}
	return domain.ErrRecordNotFound
}

// DeleteHistoryItem removes one record. Input, output and error are untouched.
func (c *Controller) DeleteHistoryItem(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = c.history.Delete(id)
}

// ClearHistory removes every record.
func (c *Controller) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = c.history.Clear()
}

// Snapshot returns a copy of the display state.
func (c *Controller) Snapshot() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]domain.HistoryRecord, len(c.records))
	copy(records, c.records)
	return domain.View{
		State:         c.state,
		Input:         c.input,
		Output:        c.output,
		Error:         c.errMessage,
		ErrorCategory: c.errCategory,
		Action:        c.action,
		History:       records,
		CharCount:     utf8.RuneCountInString(c.input),
		CanRetry:      c.state == domain.StateFailed && c.last != nil,
	}
}
