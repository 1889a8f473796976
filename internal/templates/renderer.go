package templates

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// Safe marks a value as trusted HTML so the renderer does not escape it.
type Safe string

// Renderer implements interfaces.TemplateRenderer on top of a pongo2
// template set. Named templates resolve against the configured filesystem.
type Renderer struct {
	set *pongo2.TemplateSet
}

var _ interfaces.TemplateRenderer = (*Renderer)(nil)

// NewRenderer builds a renderer reading named templates from fsys. A nil
// filesystem selects the embedded assets.
func NewRenderer(fsys fs.FS) *Renderer {
	if fsys == nil {
		fsys = Files()
	}
	return &Renderer{
		set: pongo2.NewSet("checklist", fsLoader{fsys: fsys}),
	}
}

// Render executes the named template.
func (r *Renderer) Render(name string, data map[string]any, out ...io.Writer) (string, error) {
	tpl, err := r.set.FromFile(name)
	if err != nil {
		return "", fmt.Errorf("templates: load %s: %w", name, err)
	}
	return execute(tpl, name, data, out...)
}

// RenderString compiles templateContent and executes it.
func (r *Renderer) RenderString(templateContent string, data map[string]any, out ...io.Writer) (string, error) {
	tpl, err := r.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("templates: compile: %w", err)
	}
	return execute(tpl, "inline", data, out...)
}

func execute(tpl *pongo2.Template, name string, data map[string]any, out ...io.Writer) (string, error) {
	ctx := toContext(data)

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("templates: execute %s: %w", name, err)
	}
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", fmt.Errorf("templates: write %s: %w", name, err)
		}
	}
	return buf.String(), nil
}

func toContext(data map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		if safe, ok := value.(Safe); ok {
			ctx[key] = pongo2.AsSafeValue(string(safe))
			continue
		}
		ctx[key] = value
	}
	return ctx
}

// fsLoader resolves pongo2 template names against an fs.FS so includes and
// extends work for both embedded and on-disk templates.
type fsLoader struct {
	fsys fs.FS
}

func (l fsLoader) Abs(base, name string) string {
	name = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	if base == "" {
		return name
	}
	return path.Join(path.Dir(base), name)
}

func (l fsLoader) Get(name string) (io.Reader, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
