package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

var ErrSourceMissing = errors.New("markdown: source file not found")

// Document is a parsed checklist source.
type Document struct {
	Path        string
	FrontMatter FrontMatter
	Body        []byte
	Items       []Item
	Checksum    string
}

// LoadOptions tune how a document is parsed.
type LoadOptions struct {
	// Variant is the checklist name used to derive a fallback title.
	Variant      string
	DefaultTitle string
	Inline       interfaces.InlineRenderer
}

// Loader reads checklist sources from a filesystem.
type Loader struct {
	fs fs.FS
}

// NewLoader returns a loader rooted at filesystem. A nil filesystem reads
// paths from the operating system as given.
func NewLoader(filesystem fs.FS) *Loader {
	return &Loader{fs: filesystem}
}

// LoadDocument reads and parses a single file from the operating system.
func LoadDocument(path string, opts LoadOptions) (*Document, error) {
	return NewLoader(nil).LoadFile(context.Background(), path, opts)
}

// LoadFile reads path, parses its front matter and checklist items.
func (l *Loader) LoadFile(ctx context.Context, path string, opts LoadOptions) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := l.read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("markdown loader read %s: %w", path, err)
	}

	return Parse(path, data, opts)
}

// Parse builds a Document from raw source bytes.
func Parse(path string, source []byte, opts LoadOptions) (*Document, error) {
	frontMatter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	variant := opts.Variant
	if variant == "" {
		variant = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		variant = strings.TrimSuffix(variant, "-onboarding")
	}
	frontMatter = frontMatter.WithDefaultTitle(variant, opts.DefaultTitle)

	items, err := ParseItems(body, opts.Inline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sum := sha256.Sum256(source)
	return &Document{
		Path:        path,
		FrontMatter: frontMatter,
		Body:        body,
		Items:       items,
		Checksum:    hex.EncodeToString(sum[:]),
	}, nil
}

func (l *Loader) read(path string) ([]byte, error) {
	if l == nil || l.fs == nil {
		return os.ReadFile(path)
	}
	return fs.ReadFile(l.fs, filepath.ToSlash(filepath.Clean(path)))
}
