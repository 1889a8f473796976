package buildcmd

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-checklist/internal/commands"
	"github.com/goliatone/go-checklist/internal/generator"
	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// ErrServiceRequired is returned when a handler runs without a generator.
var ErrServiceRequired = errors.New("buildcmd: generator service is required")

// BuildChecklistsHandler runs generator builds through the shared command handler.
type BuildChecklistsHandler struct {
	inner *commands.Handler[BuildChecklistsCommand]
}

// NewBuildChecklistsHandler constructs a handler wired to the provided generator service.
func NewBuildChecklistsHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildChecklistsCommand]) *BuildChecklistsHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg BuildChecklistsCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		result, err := service.Build(ctx, generator.BuildOptions{
			Variants: normalizeVariants(msg.Variants),
			DryRun:   msg.DryRun,
		})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "build",
				"dry_run":   msg.DryRun,
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[BuildChecklistsCommand]{
		commands.WithLogger[BuildChecklistsCommand](baseLogger),
		commands.WithOperation[BuildChecklistsCommand]("checklist.build"),
		commands.WithMessageFields(func(msg BuildChecklistsCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Variants) > 0 {
				fields["variants"] = strings.Join(normalizeVariants(msg.Variants), ",")
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildChecklistsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildChecklistsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildChecklistsCommand].
func (h *BuildChecklistsHandler) Execute(ctx context.Context, msg BuildChecklistsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanOutputHandler removes generated artifacts.
type CleanOutputHandler struct {
	inner *commands.Handler[CleanOutputCommand]
}

// NewCleanOutputHandler constructs a handler that delegates to generator.Service.Clean.
func NewCleanOutputHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CleanOutputCommand]) *CleanOutputHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, _ CleanOutputCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		return service.Clean(ctx)
	}

	handlerOpts := []commands.HandlerOption[CleanOutputCommand]{
		commands.WithLogger[CleanOutputCommand](baseLogger),
		commands.WithOperation[CleanOutputCommand]("checklist.clean"),
		commands.WithTelemetry(commands.DefaultTelemetry[CleanOutputCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanOutputHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CleanOutputCommand].
func (h *CleanOutputHandler) Execute(ctx context.Context, msg CleanOutputCommand) error {
	return h.inner.Execute(ctx, msg)
}

func normalizeVariants(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, value := range values {
		trimmed := strings.ToLower(strings.TrimSpace(value))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
