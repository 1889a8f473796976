package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// GoldmarkInline renders single checklist lines to inline HTML. Only the
// paragraph block parser is registered, so a label such as "1. Sign the
// contract" stays text instead of turning into a list.
type GoldmarkInline struct {
	engine goldmark.Markdown
}

var _ interfaces.InlineRenderer = (*GoldmarkInline)(nil)

// NewInlineRenderer builds the goldmark engine used for item labels and
// sub-instructions. Links open in a new tab and raw inline HTML is kept.
func NewInlineRenderer() *GoldmarkInline {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
		parser.WithASTTransformers(util.Prioritized(linkTargetTransformer{}, 100)),
	)

	engine := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &GoldmarkInline{engine: engine}
}

// RenderInline converts one line of Markdown and strips the paragraph
// wrapper goldmark emits around it.
func (g *GoldmarkInline) RenderInline(markdown string) (string, error) {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := g.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown inline render: %w", err)
	}

	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out, nil
}

type linkTargetTransformer struct{}

func (linkTargetTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.Kind() {
		case ast.KindLink, ast.KindAutoLink:
			node.SetAttributeString("target", []byte("_blank"))
		}
		return ast.WalkContinue, nil
	})
}
