package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-checklist/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if len(cfg.Build.Variants) != 2 {
		t.Fatalf("expected two default variants, got %d", len(cfg.Build.Variants))
	}
	if cfg.Build.Variants[0].Source != "staff-onboarding.md" || cfg.Build.Variants[0].Output != "staff.html" {
		t.Fatalf("unexpected staff variant: %+v", cfg.Build.Variants[0])
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"output dir", func(c *runtimeconfig.Config) { c.Build.OutputDir = " " }, runtimeconfig.ErrOutputDirRequired},
		{"no variants", func(c *runtimeconfig.Config) { c.Build.Variants = nil }, runtimeconfig.ErrVariantsRequired},
		{"variant source", func(c *runtimeconfig.Config) { c.Build.Variants[0].Source = "" }, runtimeconfig.ErrVariantInvalid},
		{"duplicate", func(c *runtimeconfig.Config) { c.Build.Variants[1].Name = "Staff" }, runtimeconfig.ErrVariantDuplicate},
		{"logging level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"logging format", func(c *runtimeconfig.Config) { c.Logging.Format = "xml" }, runtimeconfig.ErrLoggingFormatInvalid},
		{"scheme", func(c *runtimeconfig.Config) { c.Dispatch.Scheme = "9bad" }, runtimeconfig.ErrSchemeInvalid},
		{"debounce", func(c *runtimeconfig.Config) { c.Watch.Debounce = -time.Second }, runtimeconfig.ErrDebounceInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadReadsFileAndVariants(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checklists.yaml")
	content := strings.Join([]string{
		"build:",
		"  output_dir: public",
		"  variants:",
		"    - name: contractor",
		"      source: contractor.md",
		"      default_title: Contractor Onboarding",
		"watch:",
		"  debounce: 1s",
		"dispatch:",
		"  scheme: welcome",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Build.OutputDir != "public" {
		t.Fatalf("expected output dir public, got %q", cfg.Build.OutputDir)
	}
	if len(cfg.Build.Variants) != 1 || cfg.Build.Variants[0].Name != "contractor" {
		t.Fatalf("unexpected variants: %+v", cfg.Build.Variants)
	}
	if cfg.Build.Variants[0].DefaultTitle != "Contractor Onboarding" {
		t.Fatalf("expected default title decoded, got %q", cfg.Build.Variants[0].DefaultTitle)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Fatalf("expected 1s debounce, got %s", cfg.Watch.Debounce)
	}
	if cfg.Dispatch.Scheme != "welcome" {
		t.Fatalf("expected scheme welcome, got %q", cfg.Dispatch.Scheme)
	}
	if cfg.Build.LogoPath != "doc/logo.png" {
		t.Fatalf("expected default logo path to survive, got %q", cfg.Build.LogoPath)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("CHECKLISTS_BUILD_OUTPUT_DIR", "site")
	t.Setenv("CHECKLISTS_LOGGING_LEVEL", "debug")

	dir := t.TempDir()
	path := filepath.Join(dir, "checklists.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  format: json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Build.OutputDir != "site" {
		t.Fatalf("expected env override, got %q", cfg.Build.OutputDir)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := runtimeconfig.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestBuildConfigResolve(t *testing.T) {
	build := runtimeconfig.BuildConfig{RootDir: "/srv/onboarding"}
	if got := build.Resolve("doc/logo.png"); got != filepath.Join("/srv/onboarding", "doc/logo.png") {
		t.Fatalf("unexpected resolved path %q", got)
	}
	if got := build.Resolve("/abs/template.html"); got != "/abs/template.html" {
		t.Fatalf("expected absolute path unchanged, got %q", got)
	}
	if got := build.Resolve(""); got != "" {
		t.Fatalf("expected empty path unchanged, got %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := runtimeconfig.ExpandHome("~/Library/Logs/x.log")
	if err != nil {
		t.Fatalf("ExpandHome returned error: %v", err)
	}
	if got != filepath.Join(home, "Library/Logs/x.log") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got, _ := runtimeconfig.ExpandHome("relative.log"); got != "relative.log" {
		t.Fatalf("expected relative path unchanged, got %q", got)
	}
}
