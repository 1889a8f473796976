package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// Module names a logger namespace. Go-logger uses it as the child logger
// name and every entry carries it in the "module" field.
type Module string

const (
	ModuleRoot     Module = "checklist"
	ModuleBuild    Module = "checklist.build"
	ModuleWatch    Module = "checklist.watch"
	ModuleDispatch Module = "checklist.dispatch"
	ModuleCLI      Module = "checklist.cli"
)

// CommandModule is the namespace for the command handlers of one area,
// e.g. checklist.commands.build.
func CommandModule(area string) Module {
	area = strings.TrimSpace(area)
	if area == "" {
		return "checklist.commands"
	}
	return Module("checklist.commands." + area)
}

// ModuleLogger asks provider for the module's logger. A nil provider, or one
// that returns nil, yields a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module Module) interfaces.Logger {
	if strings.TrimSpace(string(module)) == "" {
		module = ModuleRoot
	}
	if provider == nil {
		return NoOp()
	}
	logger := provider.GetLogger(string(module))
	if logger == nil {
		return NoOp()
	}
	return WithFields(logger, map[string]any{"module": string(module)})
}

func BuildLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleBuild)
}

func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleWatch)
}

func DispatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ModuleDispatch)
}

// WithVariantContext binds the variant name and its source and output
// paths. Blank values are left out.
func WithVariantContext(logger interfaces.Logger, variant, source, output string) interfaces.Logger {
	fields := map[string]any{}
	for key, value := range map[string]string{
		"variant":     variant,
		"source_path": source,
		"output_path": output,
	} {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	return WithFields(logger, fields)
}

// NoOp drops every entry.
func NoOp() interfaces.Logger { return noopLogger{} }

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any)                            {}
func (noopLogger) Debug(string, ...any)                            {}
func (noopLogger) Info(string, ...any)                             {}
func (noopLogger) Warn(string, ...any)                             {}
func (noopLogger) Error(string, ...any)                            {}
func (noopLogger) Fatal(string, ...any)                            {}
func (n noopLogger) WithFields(map[string]any) interfaces.Logger   { return n }
func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }
