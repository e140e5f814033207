package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mgpai22/subkit/internal/logging"
	"github.com/mgpai22/subkit/internal/styling"
	"github.com/mgpai22/subkit/internal/subtitle"
)

var errCancelled = errors.New("task cancelled")

// TaskError wraps whatever made a single task fail, including panics.
type TaskError struct {
	TaskID   string
	FileName string
	Err      error
	Stack    []byte
}

func (e *TaskError) Error() string {
	return e.Err.Error()
}

func (e *TaskError) Unwrap() error { return e.Err }

// Result aggregates one batch run. Errors hold one "{file}: {message}" entry
// per failed task, in task order.
type Result struct {
	Total       int
	Successful  int
	Failed      int
	Cancelled   int
	Errors      []string
	Duration    time.Duration
	OutputFiles []string
}

// Config for a Processor. The zero value runs sequentially, knows only the
// builtin presets and writes nothing.
type Config struct {
	// values above 1 run that many tasks at once
	Concurrency int
	Presets     *styling.Registry
	Sink        Sink
	Logger      *logging.Logger
}

type Processor struct {
	concurrency int
	presets     *styling.Registry
	sink        Sink
	logger      *logging.Logger
}

func NewProcessor(cfg Config) (*Processor, error) {
	p := &Processor{
		concurrency: cfg.Concurrency,
		presets:     cfg.Presets,
		sink:        cfg.Sink,
		logger:      cfg.Logger,
	}
	if p.concurrency < 1 {
		p.concurrency = 1
	}
	if p.presets == nil {
		presets, err := styling.NewRegistry(styling.BuiltinPresets()...)
		if err != nil {
			return nil, fmt.Errorf("failed to load builtin presets: %w", err)
		}
		p.presets = presets
	}
	if p.logger == nil {
		p.logger = logging.Nop()
	}
	return p, nil
}

type outcome struct {
	status Status
	err    error
	path   string
}

// ProcessBatch runs every task and always returns a result. Cancelling ctx
// cancels the tasks that have not started yet.
func (p *Processor) ProcessBatch(ctx context.Context, tasks []*Task) *Result {
	start := time.Now()
	outcomes := make([]outcome, len(tasks))

	if p.concurrency == 1 {
		for i, task := range tasks {
			outcomes[i] = p.run(ctx, task)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(p.concurrency)
		for i, task := range tasks {
			g.Go(func() error {
				outcomes[i] = p.run(ctx, task)
				return nil
			})
		}
		_ = g.Wait()
	}

	result := &Result{
		Total:       len(tasks),
		Errors:      []string{},
		OutputFiles: []string{},
	}
	for i, o := range outcomes {
		switch o.status {
		case StatusCompleted:
			result.Successful++
			if o.path != "" {
				result.OutputFiles = append(result.OutputFiles, o.path)
			}
		case StatusCancelled:
			result.Cancelled++
		default:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", taskName(tasks[i], i), o.err))
		}
	}
	result.Duration = time.Since(start)

	p.logger.Infow("Batch complete",
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed,
		"cancelled", result.Cancelled,
		"duration", result.Duration,
	)
	return result
}

func taskName(task *Task, index int) string {
	if task == nil {
		return fmt.Sprintf("task %d", index+1)
	}
	return task.FileName()
}

func (p *Processor) run(ctx context.Context, task *Task) outcome {
	if task == nil {
		return outcome{status: StatusFailed, err: errors.New("task is nil")}
	}
	if ctx.Err() != nil {
		_ = task.Cancel()
	}
	if err := task.begin(); err != nil {
		if task.Status() == StatusCancelled {
			return outcome{status: StatusCancelled}
		}
		return outcome{status: StatusFailed, err: err}
	}

	log := p.logger.With("task", task.ID, "file", task.FileName(), "type", task.Type)
	log.Debugw("Task started")

	doc, content, path, err := p.execute(ctx, task)
	if errors.Is(err, errCancelled) {
		err = nil
	}
	status := task.finish(doc, content, err)

	switch status {
	case StatusFailed:
		log.Warnw("Task failed", "error", err)
		return outcome{status: status, err: err}
	case StatusCancelled:
		log.Infow("Task cancelled")
		return outcome{status: status}
	default:
		log.Debugw("Task completed", "output", path)
		return outcome{status: status, path: path}
	}
}

// execute turns panics into a *TaskError so one task cannot bring the
// batch down.
func (p *Processor) execute(ctx context.Context, task *Task) (doc *subtitle.Document, content, path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TaskError{
				TaskID:   task.ID,
				FileName: task.FileName(),
				Err:      fmt.Errorf("panic: %v", r),
				Stack:    debug.Stack(),
			}
		}
	}()

	doc, content, path, err = p.process(ctx, task)
	if err != nil {
		var te *TaskError
		if !errors.As(err, &te) && !errors.Is(err, errCancelled) {
			err = &TaskError{TaskID: task.ID, FileName: task.FileName(), Err: err}
		}
	}
	return doc, content, path, err
}

func (p *Processor) process(ctx context.Context, task *Task) (*subtitle.Document, string, string, error) {
	doc := task.Document
	if doc == nil {
		return nil, "", "", errors.New("task has no document")
	}
	settings := task.Settings
	format := settings.OutputFormat

	switch task.Type {
	case TaskStyleApply:
		if format == "" {
			format = doc.Format
		}
		styled, err := p.style(doc, settings)
		if err != nil {
			return nil, "", "", err
		}
		doc = styled
	case TaskFormatConvert:
		if format == "" {
			return nil, "", "", errors.New("no output format set")
		}
		doc = doc.Clone()
	default:
		return nil, "", "", fmt.Errorf("unknown task type %q", task.Type)
	}

	content, err := subtitle.ExportFile(doc, format)
	if err != nil {
		return nil, "", "", err
	}

	if settings.OutputPath == "" || p.sink == nil {
		return doc, content, "", nil
	}
	if task.cancelPending() {
		return nil, "", "", errCancelled
	}
	out := Output{
		Path:      settings.OutputPath,
		Format:    format,
		Content:   content,
		Overwrite: settings.Overwrite,
	}
	if err := p.sink.Write(ctx, out); err != nil {
		return nil, "", "", fmt.Errorf("failed to write output: %w", err)
	}
	return doc, content, settings.OutputPath, nil
}

// style applies the preset first, then the custom override on top, then the
// preset's script tags with the task's tags layered over them.
func (p *Processor) style(doc *subtitle.Document, settings Settings) (*subtitle.Document, error) {
	var override styling.Override
	var tags styling.ScriptTags
	if settings.PresetID != "" {
		preset, ok := p.presets.Get(settings.PresetID)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", settings.PresetID)
		}
		override = preset.Style
		tags = preset.ScriptTags
	}
	override = override.Merge(settings.CustomStyle)
	tags = tags.Merge(settings.ScriptTags)

	styled, err := styling.Apply(doc, override)
	if err != nil {
		return nil, err
	}
	if tags.IsZero() {
		return styled, nil
	}
	return styling.ApplyScriptTags(styled, tags)
}
