package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-checklist/internal/markdown"
)

func TestBuildWebManifestIsDeterministic(t *testing.T) {
	job, err := newVariantJob(Variant{Name: "staff", Output: "onboarding/staff.html"})
	if err != nil {
		t.Fatalf("newVariantJob: %v", err)
	}
	fm := markdown.FrontMatter{Title: "Staff Onboarding", Description: "Week one"}
	logo := &logoAsset{Name: "logo.png", MIME: "image/png"}

	first := buildWebManifest(job, fm, ManifestConfig{}, logo)
	second := buildWebManifest(job, fm, ManifestConfig{}, logo)
	if first.ID != second.ID || first.ID == "" {
		t.Fatalf("expected stable id, got %q and %q", first.ID, second.ID)
	}
	if first.Display != "standalone" {
		t.Fatalf("expected default display, got %q", first.Display)
	}
	if first.StartURL != "./staff.html" {
		t.Fatalf("unexpected start url %q", first.StartURL)
	}
	if first.Icons[0].Src != "../logo.png" {
		t.Fatalf("expected icon path relative to nested manifest, got %q", first.Icons[0].Src)
	}

	payload, err := encodeWebManifest(first)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(string(payload), "{\n  \"id\": ") {
		t.Fatalf("expected id to lead the manifest, got %q", payload[:20])
	}
}

func TestEncodeWebManifestValidatesSchema(t *testing.T) {
	job, _ := newVariantJob(Variant{Name: "staff"})
	manifest := buildWebManifest(job, markdown.FrontMatter{Title: "Staff"}, ManifestConfig{Display: "window"}, nil)

	_, err := encodeWebManifest(manifest)
	if !errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("expected ErrManifestInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "/display") {
		t.Fatalf("expected issue location in error, got %v", err)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("Søknad", 3); got != "Søk" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateRunes("short", 10); got != "short" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
