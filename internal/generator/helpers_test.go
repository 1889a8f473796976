package generator

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

type logEntry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg})
}

func (l *recordingLogger) has(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.entries {
		if entry.level == level && entry.msg == msg {
			return true
		}
	}
	return false
}

func (l *recordingLogger) Trace(msg string, _ ...any) { l.record("trace", msg) }
func (l *recordingLogger) Debug(msg string, _ ...any) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record("error", msg) }
func (l *recordingLogger) Fatal(msg string, _ ...any) { l.record("fatal", msg) }

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *recordingLogger) WithFields(map[string]any) interfaces.Logger { return l }

type recordingWriter struct {
	paths      []string
	categories []WriteCategory
	removed    []string
}

func (w *recordingWriter) EnsureDir(context.Context, string) error { return nil }

func (w *recordingWriter) WriteFile(_ context.Context, req WriteRequest) error {
	if _, err := io.Copy(io.Discard, req.Content); err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	w.paths = append(w.paths, req.Path)
	w.categories = append(w.categories, req.Category)
	return nil
}

func (w *recordingWriter) Remove(_ context.Context, path string) (bool, error) {
	w.removed = append(w.removed, path)
	return false, nil
}
