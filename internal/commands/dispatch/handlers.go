package dispatchcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-checklist/internal/commands"
	"github.com/goliatone/go-checklist/internal/dispatch"
	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// ErrDispatcherRequired is returned when the handler has no dispatcher.
var ErrDispatcherRequired = errors.New("dispatchcmd: dispatcher is required")

// URLDispatcher is the subset of dispatch.Dispatcher the handler uses.
type URLDispatcher interface {
	DispatchURL(ctx context.Context, raw string) (*dispatch.Result, error)
}

// DispatchURLHandler executes DispatchURLCommand messages.
type DispatchURLHandler struct {
	inner *commands.Handler[DispatchURLCommand]
}

// NewDispatchURLHandler wires the handler to a dispatcher.
func NewDispatchURLHandler(dispatcher URLDispatcher, logger interfaces.Logger, opts ...commands.HandlerOption[DispatchURLCommand]) *DispatchURLHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg DispatchURLCommand) error {
		if dispatcher == nil {
			return ErrDispatcherRequired
		}
		result, err := dispatcher.DispatchURL(ctx, msg.URL)
		if result != nil && msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[DispatchURLCommand]{
		commands.WithLogger[DispatchURLCommand](baseLogger),
		commands.WithOperation[DispatchURLCommand]("checklist.dispatch"),
		commands.WithMessageFields(func(msg DispatchURLCommand) map[string]any {
			return map[string]any{"url": msg.URL}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DispatchURLCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DispatchURLHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DispatchURLCommand].
func (h *DispatchURLHandler) Execute(ctx context.Context, msg DispatchURLCommand) error {
	return h.inner.Execute(ctx, msg)
}
