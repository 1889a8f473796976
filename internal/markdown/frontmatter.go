package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
)

var (
	ErrFrontMatterMissing = errors.New("markdown: front matter block not found")
	ErrFrontMatterInvalid = errors.New("markdown: front matter is invalid")
)

// FrontMatter carries the page level metadata of a checklist document.
type FrontMatter struct {
	Title       string
	Subtitle    string
	Description string
	Raw         map[string]any
}

// Keys returns the front-matter keys in a stable order.
func (fm FrontMatter) Keys() []string {
	keys := make([]string, 0, len(fm.Raw))
	for key := range fm.Raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Subtitle    string         `yaml:"subtitle"`
	Description string         `yaml:"description"`
	Custom      map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into its metadata block and the Markdown
// body. A document without a front-matter block is rejected.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return FrontMatter{}, nil, ErrFrontMatterMissing
		}
		return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrFrontMatterInvalid, err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

func envelopeToFrontMatter(env frontMatterEnvelope) FrontMatter {
	raw := make(map[string]any, len(env.Custom)+3)
	for key, value := range env.Custom {
		raw[key] = value
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Subtitle != "" {
		raw["subtitle"] = env.Subtitle
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}

	return FrontMatter{
		Title:       strings.TrimSpace(env.Title),
		Subtitle:    strings.TrimSpace(env.Subtitle),
		Description: strings.TrimSpace(env.Description),
		Raw:         raw,
	}
}

// WithDefaultTitle fills an empty title. When fallback is empty the title is
// derived from the variant name, so "staff" becomes "Staff Onboarding".
func (fm FrontMatter) WithDefaultTitle(variant, fallback string) FrontMatter {
	if fm.Title != "" {
		return fm
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		fm.Title = fallback
		return fm
	}
	fm.Title = strings.TrimSpace(humanize(variant) + " Onboarding")
	return fm
}

func humanize(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	for i, field := range fields {
		r, size := utf8.DecodeRuneInString(field)
		fields[i] = string(unicode.ToUpper(r)) + field[size:]
	}
	return strings.Join(fields, " ")
}
