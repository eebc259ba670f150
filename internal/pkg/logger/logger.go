package logger

import (
	"io"
	"log"
	"os"
)

// StdLogger is a lightweight implementation backed by Go's log package.
// Warnings and errors are always written; debug and info only when verbose.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return NewWriter(os.Stderr, verbose)
}

// NewWriter creates a StdLogger writing to w.
func NewWriter(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, out: log.New(w, "", log.LstdFlags)}
}

// Verbose reports whether debug output is enabled.
func (l *StdLogger) Verbose() bool {
	return l.verbose
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.print("[DEBUG]", msg, nil, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.print("[INFO]", msg, nil, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.print("[WARN]", msg, nil, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.print("[ERROR]", msg, err, fields)
}

func (l *StdLogger) print(level, msg string, err error, fields map[string]interface{}) {
	args := []interface{}{level, msg}
	if err != nil {
		args = append(args, err)
	}
	if len(fields) > 0 {
		args = append(args, fields)
	}
	l.out.Println(args...)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string, map[string]interface{})        {}
func (Nop) Info(string, map[string]interface{})         {}
func (Nop) Warn(string, map[string]interface{})         {}
func (Nop) Error(string, error, map[string]interface{}) {}
