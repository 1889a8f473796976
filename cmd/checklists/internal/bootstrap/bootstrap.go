package bootstrap

import (
	"fmt"
	"strings"

	buildcmd "github.com/goliatone/go-checklist/internal/commands/build"
	"github.com/goliatone/go-checklist/internal/generator"
	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/internal/logging/gologger"
	"github.com/goliatone/go-checklist/internal/runtimeconfig"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// Options captures configuration for the checklists CLI bootstrap.
type Options struct {
	ConfigPath     string
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module bundles the configured builder and its command handlers.
type Module struct {
	Config   runtimeconfig.Config
	Service  generator.Service
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
	Build    *buildcmd.BuildChecklistsHandler
	Clean    *buildcmd.CleanOutputHandler
}

// BuildModule loads configuration and wires the generator for CLI use.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := runtimeconfig.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	provider := opts.LoggerProvider
	if provider == nil {
		glogProvider, err := gologger.NewProvider(gologger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise logger: %w", err)
		}
		provider = glogProvider
	}

	buildLogger := logging.BuildLogger(provider)
	service := generator.NewService(GeneratorConfig(cfg), generator.Dependencies{
		Logger: buildLogger,
	})

	commandLogger := logging.ModuleLogger(provider, logging.CommandModule("build"))
	return &Module{
		Config:   cfg,
		Service:  service,
		Provider: provider,
		Logger:   logging.ModuleLogger(provider, logging.ModuleCLI),
		Build:    buildcmd.NewBuildChecklistsHandler(service, commandLogger),
		Clean:    buildcmd.NewCleanOutputHandler(service, commandLogger),
	}, nil
}

// GeneratorConfig maps runtime configuration onto the builder configuration,
// resolving relative paths against the build root.
func GeneratorConfig(cfg runtimeconfig.Config) generator.Config {
	build := cfg.Build
	out := generator.Config{
		OutputDir: build.Resolve(build.OutputDir),
		LogoPath:  build.Resolve(build.LogoPath),
		Manifest: generator.ManifestConfig{
			Enabled:         cfg.Manifest.Enabled,
			Display:         cfg.Manifest.Display,
			ThemeColor:      cfg.Manifest.ThemeColor,
			BackgroundColor: cfg.Manifest.BackgroundColor,
		},
	}
	if strings.TrimSpace(build.TemplatePath) != "" {
		out.TemplatePath = build.Resolve(build.TemplatePath)
	}
	out.Variants = make([]generator.Variant, 0, len(build.Variants))
	for _, variant := range build.Variants {
		out.Variants = append(out.Variants, generator.Variant{
			Name:         variant.Name,
			Source:       build.Resolve(variant.Source),
			Output:       variant.Output,
			DefaultTitle: variant.DefaultTitle,
		})
	}
	return out
}

// WatchPaths returns the watched directories resolved against the build root.
func WatchPaths(cfg runtimeconfig.Config) []string {
	paths := make([]string, 0, len(cfg.Watch.Paths))
	for _, path := range cfg.Watch.Paths {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			paths = append(paths, cfg.Build.Resolve(trimmed))
		}
	}
	if len(paths) == 0 {
		paths = append(paths, cfg.Build.Resolve("."))
	}
	return paths
}
