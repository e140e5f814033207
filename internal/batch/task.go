// Package batch runs style and conversion tasks over many documents and
// collects one aggregate result. A failing task never stops the others.
package batch

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mgpai22/subkit/internal/styling"
	"github.com/mgpai22/subkit/internal/subtitle"
)

var ErrInvalidTransition = errors.New("invalid task status transition")

type TaskType string

const (
	TaskStyleApply    TaskType = "style_apply"
	TaskFormatConvert TaskType = "format_convert"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusFailed, StatusCancelled},
}

func canTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Settings for one task. OutputFormat defaults to the document's own format
// for style tasks and is required for conversions.
type Settings struct {
	OutputFormat subtitle.Format
	OutputPath   string
	Overwrite    bool
	CustomStyle  styling.Override
	PresetID     string
	ScriptTags   styling.ScriptTags
}

// Task is one unit of batch work. Status fields are guarded so a host may
// cancel from another goroutine while the batch runs.
type Task struct {
	ID       string
	Type     TaskType
	Document *subtitle.Document
	Settings Settings
	Created  time.Time

	mu              sync.Mutex
	status          Status
	err             string
	started         time.Time
	completed       time.Time
	cancelRequested bool
	result          *subtitle.Document
	output          string
}

func NewTask(taskType TaskType, doc *subtitle.Document, settings Settings) *Task {
	return &Task{
		ID:       uuid.NewString(),
		Type:     taskType,
		Document: doc,
		Settings: settings,
		Created:  time.Now(),
		status:   StatusPending,
	}
}

// FileName names the task in error entries.
func (t *Task) FileName() string {
	if t.Document != nil && t.Document.Name != "" {
		return t.Document.Name
	}
	return t.ID
}

func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Err is the failure message of a failed task.
func (t *Task) Err() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Task) Started() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *Task) Completed() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed
}

// Result returns the produced document and its serialized text once the
// task has completed.
func (t *Task) Result() (*subtitle.Document, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.output
}

// Cancel stops a pending task from starting. A processing task cannot be
// interrupted; it ends cancelled once its current step returns and its
// output is dropped.
func (t *Task) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.status {
	case StatusPending:
		t.status = StatusCancelled
		t.completed = time.Now()
		return nil
	case StatusProcessing:
		t.cancelRequested = true
		return nil
	default:
		return fmt.Errorf("%w: cannot cancel %s task", ErrInvalidTransition, t.status)
	}
}

func (t *Task) setStatus(to Status) error {
	if !canTransition(t.status, to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, t.status, to)
	}
	t.status = to
	return nil
}

func (t *Task) begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == "" {
		t.status = StatusPending
	}
	if err := t.setStatus(StatusProcessing); err != nil {
		return err
	}
	t.started = time.Now()
	return nil
}

func (t *Task) finish(result *subtitle.Document, output string, err error) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed = time.Now()
	switch {
	case t.cancelRequested:
		t.status = StatusCancelled
	case err != nil:
		t.status = StatusFailed
		t.err = err.Error()
	default:
		t.status = StatusCompleted
		t.result = result
		t.output = output
	}
	return t.status
}

func (t *Task) cancelPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelRequested
}
