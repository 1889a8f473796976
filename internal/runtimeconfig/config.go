package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrOutputDirRequired    = errors.New("checklist config: build output directory is required")
	ErrVariantsRequired     = errors.New("checklist config: at least one checklist variant is required")
	ErrVariantInvalid       = errors.New("checklist config: checklist variant is invalid")
	ErrVariantDuplicate     = errors.New("checklist config: checklist variant names must be unique")
	ErrLoggingLevelInvalid  = errors.New("checklist config: logging level is invalid")
	ErrLoggingFormatInvalid = errors.New("checklist config: logging format is invalid")
	ErrSchemeInvalid        = errors.New("checklist config: dispatch scheme is invalid")
	ErrDebounceInvalid      = errors.New("checklist config: watch debounce must be zero or positive")
)

var schemePattern = regexp.MustCompile(`^[a-z][a-z0-9+.-]*$`)

// Config aggregates the settings of the builder, the watcher and the URL
// dispatcher.
type Config struct {
	Build    BuildConfig
	Manifest ManifestConfig
	Watch    WatchConfig
	Dispatch DispatchConfig
	Logging  LoggingConfig
}

// BuildConfig locates checklist sources and the output directory. Relative
// paths resolve against RootDir.
type BuildConfig struct {
	RootDir   string
	OutputDir string
	// TemplatePath points at a custom page template. Empty selects the
	// embedded default template.
	TemplatePath string
	// LogoPath is optional; a missing logo only produces a warning.
	LogoPath string
	Variants []VariantConfig
}

// VariantConfig describes one checklist page.
type VariantConfig struct {
	Name         string `mapstructure:"name"`
	Source       string `mapstructure:"source"`
	Output       string `mapstructure:"output"`
	DefaultTitle string `mapstructure:"default_title"`
}

// ManifestConfig controls the optional web app manifest written per variant.
type ManifestConfig struct {
	Enabled         bool
	Display         string
	ThemeColor      string
	BackgroundColor string
}

// WatchConfig configures the file-change watcher.
type WatchConfig struct {
	Paths []string
	// Command is the argv re-invoked on change. Empty re-runs this binary's
	// build subcommand.
	Command  []string
	Debounce time.Duration
}

// DispatchConfig configures the URL scheme handler.
type DispatchConfig struct {
	Scheme        string
	LogFile       string
	HelperProcess string
	HelperBundle  string
}

// LoggingConfig captures logger options.
type LoggingConfig struct {
	Level  string
	Format string
}

// DefaultConfig mirrors the conventional project layout: two Markdown
// sources at the root, assets under doc/ and output under dist/.
func DefaultConfig() Config {
	return Config{
		Build: BuildConfig{
			RootDir:   ".",
			OutputDir: "dist",
			LogoPath:  "doc/logo.png",
			Variants: []VariantConfig{
				{Name: "staff", Source: "staff-onboarding.md", Output: "staff.html", DefaultTitle: "Staff Onboarding"},
				{Name: "student", Source: "student-onboarding.md", Output: "student.html", DefaultTitle: "Student Onboarding"},
			},
		},
		Manifest: ManifestConfig{
			Enabled:         true,
			Display:         "standalone",
			ThemeColor:      "#1f3a5f",
			BackgroundColor: "#ffffff",
		},
		Watch: WatchConfig{
			Paths:    []string{"."},
			Debounce: 200 * time.Millisecond,
		},
		Dispatch: DispatchConfig{
			Scheme:        "onboarding",
			LogFile:       "~/Library/Logs/onboarding-url-handler.log",
			HelperProcess: "ISS Helper",
			HelperBundle:  "/Applications/ISS Helper.app",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Build.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if len(c.Build.Variants) == 0 {
		return ErrVariantsRequired
	}
	seen := map[string]struct{}{}
	for i := range c.Build.Variants {
		variant := c.Build.Variants[i]
		err := validation.ValidateStruct(&variant,
			validation.Field(&variant.Name, validation.Required),
			validation.Field(&variant.Source, validation.Required),
		)
		if err != nil {
			return fmt.Errorf("%w: variant %d: %v", ErrVariantInvalid, i, err)
		}
		key := strings.ToLower(strings.TrimSpace(variant.Name))
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q", ErrVariantDuplicate, variant.Name)
		}
		seen[key] = struct{}{}
	}

	if err := validation.Validate(strings.ToLower(strings.TrimSpace(c.Logging.Level)),
		validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal"),
	); err != nil {
		return fmt.Errorf("%w: %q", ErrLoggingLevelInvalid, c.Logging.Level)
	}
	if err := validation.Validate(strings.ToLower(strings.TrimSpace(c.Logging.Format)),
		validation.In("", "console", "json", "pretty"),
	); err != nil {
		return fmt.Errorf("%w: %q", ErrLoggingFormatInvalid, c.Logging.Format)
	}
	if err := validation.Validate(c.Dispatch.Scheme,
		validation.Required,
		validation.Match(schemePattern),
	); err != nil {
		return fmt.Errorf("%w: %q", ErrSchemeInvalid, c.Dispatch.Scheme)
	}
	if c.Watch.Debounce < 0 {
		return ErrDebounceInvalid
	}
	return nil
}
