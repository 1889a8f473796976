package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// OpenAppendOnly opens path for appending, creating the file and its parent
// directory when needed.
func OpenAppendOnly(path string) (*os.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("console: log file path is required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("console: create log dir %s: %w", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("console: open log file %s: %w", path, err)
	}
	return file, nil
}

// NewFileProvider opens an append-only log file and returns a provider that
// writes colored, leveled entries into it. The caller owns the returned
// closer.
func NewFileProvider(path string, opts Options) (interfaces.LoggerProvider, io.Closer, error) {
	file, err := OpenAppendOnly(path)
	if err != nil {
		return nil, nil, err
	}
	opts.Writer = file
	return NewProvider(opts), file, nil
}
