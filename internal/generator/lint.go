package generator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrChecklistMismatch reports a page whose checklist entries do not match
// the parsed document, typically a template without a content placeholder.
var ErrChecklistMismatch = errors.New("generator: rendered checklist does not match document")

// verifyChecklistMarkup parses the final page and checks it holds exactly
// want checklist-item elements numbered 1..want in order.
func verifyChecklistMarkup(page string, want int) error {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return fmt.Errorf("generator: parse rendered html: %w", err)
	}

	var steps []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && hasClass(node, "checklist-item") {
			steps = append(steps, attr(node, "data-step"))
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	if len(steps) != want {
		return fmt.Errorf("%w: expected %d items, found %d", ErrChecklistMismatch, want, len(steps))
	}
	for i, step := range steps {
		if step != strconv.Itoa(i+1) {
			return fmt.Errorf("%w: item %d has data-step %q", ErrChecklistMismatch, i+1, step)
		}
	}
	return nil
}

func hasClass(node *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(node, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
