package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WriteCategory labels an artifact for logging and reporting.
type WriteCategory string

const (
	categoryPage     WriteCategory = "page"
	categoryManifest WriteCategory = "manifest"
	categoryAsset    WriteCategory = "asset"
)

// WriteRequest describes a file write routed through the artifact writer.
// Path is relative to the output directory and uses forward slashes.
type WriteRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    WriteCategory
	ContentType string
	Checksum    string
}

// ArtifactWriter persists build outputs.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteRequest) error
	// Remove deletes path and reports whether it existed.
	Remove(ctx context.Context, path string) (bool, error)
}

func newWriteRequest(path string, category WriteCategory, contentType string, data []byte) WriteRequest {
	return WriteRequest{
		Path:        path,
		Content:     bytes.NewReader(data),
		Size:        int64(len(data)),
		Category:    category,
		ContentType: contentType,
		Checksum:    computeHash(data),
	}
}

// FileSystemWriter writes artifacts below a root directory. Each file is
// written to a temporary sibling and renamed into place, so readers never
// observe a partially written page and a failed write keeps the previous one.
type FileSystemWriter struct {
	root string
}

var _ ArtifactWriter = (*FileSystemWriter)(nil)

// NewFileSystemWriter returns a writer rooted at dir.
func NewFileSystemWriter(dir string) *FileSystemWriter {
	return &FileSystemWriter{root: dir}
}

func (w *FileSystemWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := joinOutputPath(w.root, path)
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *FileSystemWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}

	target := joinOutputPath(w.root, req.Path)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := io.Copy(tmp, req.Content); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func (w *FileSystemWriter) Remove(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	err := os.Remove(joinOutputPath(w.root, path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
