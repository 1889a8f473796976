package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystemWriterReplacesAtomically(t *testing.T) {
	root := filepath.Join(t.TempDir(), "dist")
	writer := NewFileSystemWriter(root)
	ctx := context.Background()

	if err := writer.EnsureDir(ctx, ""); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	for _, body := range []string{"first", "second"} {
		if err := writer.WriteFile(ctx, newWriteRequest("nested/page.html", categoryPage, "text/html", []byte(body))); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(root, "nested", "page.html"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected latest content, got %q", data)
	}

	entries, err := os.ReadDir(filepath.Join(root, "nested"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestFileSystemWriterRemove(t *testing.T) {
	root := t.TempDir()
	writer := NewFileSystemWriter(root)
	ctx := context.Background()

	if err := writer.WriteFile(ctx, newWriteRequest("staff.html", categoryPage, "text/html", []byte("x"))); err != nil {
		t.Fatalf("write: %v", err)
	}
	removed, err := writer.Remove(ctx, "staff.html")
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v %v", removed, err)
	}
	removed, err = writer.Remove(ctx, "staff.html")
	if err != nil || removed {
		t.Fatalf("expected missing file to report false, got %v %v", removed, err)
	}
}

func TestFileSystemWriterRejectsEmptyRequest(t *testing.T) {
	writer := NewFileSystemWriter(t.TempDir())
	if err := writer.WriteFile(context.Background(), WriteRequest{Path: "x.html"}); err == nil {
		t.Fatal("expected error for missing content")
	}
}
