package domain

import "strings"

// RequestState is the lifecycle state of the current improvement request.
type RequestState string

const (
	StateIdle    RequestState = "idle"
	StateLoading RequestState = "loading"
	StateSuccess RequestState = "success"
	StateFailed  RequestState = "failed"
)

// View is an immutable snapshot of everything the presentation layer renders.
type View struct {
	State         RequestState
	Input         string
	Output        string
	Error         string
	ErrorCategory ErrorCategory
	Action        Action
	History       []HistoryRecord
	CharCount     int
	CanRetry      bool
}

// CanSubmit mirrors the submit guard so surfaces can disable their trigger.
func (v View) CanSubmit() bool {
	return v.State != StateLoading && strings.TrimSpace(v.Input) != ""
}
