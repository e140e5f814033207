package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mgpai22/subkit/internal/subtitle"
)

var ErrOutputExists = errors.New("output file already exists")

// Output is one serialized document ready to be stored.
type Output struct {
	Path      string
	Format    subtitle.Format
	Content   string
	Overwrite bool
}

// Sink stores task output. Implementations must be safe for concurrent use.
type Sink interface {
	Write(ctx context.Context, out Output) error
}

// FileSink writes outputs to the local filesystem.
type FileSink struct{}

func (FileSink) Write(ctx context.Context, out Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !out.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	if err := os.MkdirAll(filepath.Dir(out.Path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.OpenFile(out.Path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrOutputExists, out.Path)
		}
		return err
	}
	if _, err := f.WriteString(out.Content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// MemorySink keeps outputs in memory, keyed by path.
type MemorySink struct {
	mu    sync.Mutex
	files map[string]string
}

func (m *MemorySink) Write(ctx context.Context, out Output) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string]string)
	}
	if _, ok := m.files[out.Path]; ok && !out.Overwrite {
		return fmt.Errorf("%w: %s", ErrOutputExists, out.Path)
	}
	m.files[out.Path] = out.Content
	return nil
}

func (m *MemorySink) Get(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	return content, ok
}

// Paths lists stored paths in sorted order.
func (m *MemorySink) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
