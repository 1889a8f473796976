package generator

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-checklist/internal/markdown"
)

// RenderedPage captures the rendered HTML output for a checklist variant.
type RenderedPage struct {
	Variant   string
	Source    string
	Output    string
	Manifest  string
	HTML      string
	ItemCount int
	Checksum  string
	Duration  time.Duration
}

// renderChecklistMarkup emits one checklist-item block per item, numbered
// from 1 in document order, with sub-instructions nested in the item content.
func renderChecklistMarkup(items []markdown.Item) string {
	lines := make([]string, 0, len(items)*6)
	for i, item := range items {
		lines = append(lines,
			`<div class="checklist-item" data-step="`+strconv.Itoa(i+1)+`">`,
			`    <div class="checkbox"></div>`,
			`    <div class="item-content">`,
			`        <div class="item-text">`+item.LabelHTML+`</div>`,
		)
		for _, sub := range item.SubItems {
			lines = append(lines, `        <div class="sub-item">`+sub.HTML+`</div>`)
		}
		lines = append(lines,
			`    </div>`,
			`</div>`,
		)
	}
	return strings.Join(lines, "\n")
}
