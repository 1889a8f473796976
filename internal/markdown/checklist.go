package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

var (
	// "- [ ] Collect badge" at column 0 opens an item.
	itemPattern = regexp.MustCompile(`^[-*] \[[ xX]\][ \t]*(.*)$`)
	// "  - Visit reception" indented under an item adds a sub-instruction.
	subItemPattern = regexp.MustCompile(`^[ \t]+[-*+](?:[ \t]+(.*))?$`)
	fencePattern   = regexp.MustCompile("^[ \t]*(```|~~~)")
)

// Item is a top-level checklist entry. Its position in the document is its
// only identity.
type Item struct {
	Label     string
	LabelHTML string
	SubItems  []SubItem
}

// SubItem is one nested instruction beneath an item.
type SubItem struct {
	Text string
	HTML string
}

// ParseItems scans body line by line. Headings, prose, blank lines and fenced
// code are skipped; indented bullets seen before the first item are dropped.
// Labels and sub-instructions are passed through inline for formatting; a
// nil inline selects the goldmark renderer.
func ParseItems(body []byte, inline interfaces.InlineRenderer) ([]Item, error) {
	if inline == nil {
		inline = NewInlineRenderer()
	}

	var (
		items   []Item
		current *Item
		fence   string
	)

	lines := strings.Split(string(body), "\n")
	for lineNo, line := range lines {
		line = strings.TrimRight(line, "\r")

		if match := fencePattern.FindStringSubmatch(line); match != nil {
			switch {
			case fence == "":
				fence = match[1]
			case fence == match[1]:
				fence = ""
			}
			continue
		}
		if fence != "" || strings.TrimSpace(line) == "" {
			continue
		}

		if match := itemPattern.FindStringSubmatch(line); match != nil {
			label := strings.TrimSpace(match[1])
			rendered, err := inline.RenderInline(label)
			if err != nil {
				return nil, fmt.Errorf("markdown: line %d: %w", lineNo+1, err)
			}
			items = append(items, Item{Label: label, LabelHTML: rendered})
			current = &items[len(items)-1]
			continue
		}

		if current == nil {
			continue
		}
		if match := subItemPattern.FindStringSubmatch(line); match != nil {
			text := strings.TrimSpace(match[1])
			if text == "" {
				continue
			}
			rendered, err := inline.RenderInline(text)
			if err != nil {
				return nil, fmt.Errorf("markdown: line %d: %w", lineNo+1, err)
			}
			current.SubItems = append(current.SubItems, SubItem{Text: text, HTML: rendered})
		}
	}

	return items, nil
}
