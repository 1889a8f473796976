package markdown

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: \"Staff Onboarding\"\nsubtitle: Hello\ndescription: First week\nowner: it\n---\n- [ ] item\n")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter returned error: %v", err)
	}
	if fm.Title != "Staff Onboarding" || fm.Subtitle != "Hello" || fm.Description != "First week" {
		t.Fatalf("unexpected front matter: %+v", fm)
	}
	if fm.Raw["owner"] != "it" {
		t.Fatalf("expected custom key preserved, got %v", fm.Raw["owner"])
	}
	if keys := fm.Keys(); len(keys) != 4 || keys[0] != "description" || keys[3] != "title" {
		t.Fatalf("unexpected keys %v", keys)
	}
	if strings.TrimSpace(string(body)) != "- [ ] item" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontMatterMissing(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("- [ ] item\n"))
	if !errors.Is(err, ErrFrontMatterMissing) {
		t.Fatalf("expected ErrFrontMatterMissing, got %v", err)
	}
}

func TestParseFrontMatterInvalid(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	if !errors.Is(err, ErrFrontMatterInvalid) {
		t.Fatalf("expected ErrFrontMatterInvalid, got %v", err)
	}
}

func TestWithDefaultTitle(t *testing.T) {
	cases := []struct {
		name     string
		fm       FrontMatter
		variant  string
		fallback string
		want     string
	}{
		{"keeps title", FrontMatter{Title: "Mine"}, "staff", "Other", "Mine"},
		{"configured fallback", FrontMatter{}, "staff", "Team Onboarding", "Team Onboarding"},
		{"derived", FrontMatter{}, "staff", "", "Staff Onboarding"},
		{"derived multiword", FrontMatter{}, "summer-student", "", "Summer Student Onboarding"},
		{"derived multibyte", FrontMatter{}, "élève", "", "Élève Onboarding"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fm.WithDefaultTitle(tc.variant, tc.fallback).Title; got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
