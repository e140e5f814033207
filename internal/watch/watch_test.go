package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, cfg Config) <-chan string {
	t.Helper()
	seen := make(chan string, 16)
	w, err := New(cfg, func(ctx context.Context, path string) error {
		seen <- filepath.Base(path)
		if filepath.Base(path) == "broken.srt" {
			return errors.New("cannot parse")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	})
	return seen
}

func waitFor(t *testing.T, seen <-chan string, want string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-seen:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestWatcherHandlesNewSubtitleFiles(t *testing.T) {
	dir := t.TempDir()
	seen := startWatcher(t, Config{Dir: dir, Debounce: 50 * time.Millisecond})

	// let the watcher settle before creating files
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.srt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "movie.srt"), []byte("1\n00:00:01,000 --> 00:00:02,000\nHi\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	waitFor(t, seen, "movie.srt")
}

func TestWatcherProcessesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "old.ass"), []byte("[Script Info]\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	seen := startWatcher(t, Config{Dir: dir, Debounce: 50 * time.Millisecond, ProcessExisting: true})
	waitFor(t, seen, "old.ass")
}

func TestNewRejectsBadInput(t *testing.T) {
	handler := func(ctx context.Context, path string) error { return nil }

	if _, err := New(Config{Dir: filepath.Join(t.TempDir(), "missing")}, handler); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(t.TempDir(), "a.srt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := New(Config{Dir: file}, handler); err == nil {
		t.Error("expected error for a file path")
	}
	if _, err := New(Config{Dir: t.TempDir()}, nil); err == nil {
		t.Error("expected error for nil handler")
	}
}

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"b.srt": now.Add(-time.Second),
		"a.srt": now.Add(-time.Second),
		"c.srt": now,
	}
	got := settled(pending, now, 500*time.Millisecond)
	if len(got) != 2 || got[0] != "a.srt" || got[1] != "b.srt" {
		t.Errorf("settled = %v", got)
	}
}
