package interfaces

import "io"

// TemplateRenderer renders page templates. Variables are supplied as a flat
// map; values wrapped by the renderer's safe marker bypass HTML escaping.
type TemplateRenderer interface {
	// Render executes the named template registered with the renderer.
	Render(name string, data map[string]any, out ...io.Writer) (string, error)
	// RenderString compiles and executes an ad-hoc template source.
	RenderString(templateContent string, data map[string]any, out ...io.Writer) (string, error)
}

// InlineRenderer converts a single line of Markdown into inline HTML without
// the surrounding block element.
type InlineRenderer interface {
	RenderInline(markdown string) (string, error)
}
