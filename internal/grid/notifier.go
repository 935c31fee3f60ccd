// Package grid implements the inline-edit contract shared by every list
// view of the back office: an edit lands in the local row immediately, is
// persisted remotely, and rolls back when the remote write fails. The
// package also carries the notification surface those edits report
// through and the idempotent creation guard for parent entities.
package grid

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/backoffice/internal/logging"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single user-visible toast.
type Notification struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

// Notifier receives user-visible outcomes of grid operations.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

// Recorder is an in-memory Notifier. Views show its tail; tests inspect it.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Success(msg string) { r.record(LevelSuccess, msg) }
func (r *Recorder) Warning(msg string) { r.record(LevelWarning, msg) }
func (r *Recorder) Error(msg string)   { r.record(LevelError, msg) }

func (r *Recorder) record(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: msg,
		At:      time.Now(),
	})
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.list...)
}

// NewLogNotifier routes notifications into the structured log.
func NewLogNotifier(log logging.Logger) Notifier {
	return &logNotifier{log: log}
}

type logNotifier struct {
	log logging.Logger
}

func (n *logNotifier) Success(msg string) { n.log.Info(context.Background(), msg) }
func (n *logNotifier) Warning(msg string) { n.log.Warn(context.Background(), msg) }
func (n *logNotifier) Error(msg string)   { n.log.Error(context.Background(), msg) }

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Warning(string) {}
func (nopNotifier) Error(string)   {}
