package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// DefaultTimeout bounds one command run. A full build renders every variant.
const DefaultTimeout = 2 * time.Minute

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a command function behind message validation, a timeout,
// structured logging and go-errors tagging.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    func(T) map[string]any
	telemetry Telemetry[T]
}

// NewHandler wraps fn. The result satisfies command.Commander[T].
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Execute validates msg, then runs the command function.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return invalidMessage.wrap(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		kind, _ := contextKind(err)
		return kind.wrap(err)
	}

	fields := h.describe(msg)
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("checklist.command.started")

	started := time.Now()
	outcome, err := settle(ctx, h.exec(ctx, msg))

	report := Report{
		Command:   command.GetMessageType(msg),
		Operation: h.operation,
		Fields:    fields,
		Elapsed:   time.Since(started),
		Err:       err,
		Outcome:   outcome,
		Logger:    logger,
	}
	if h.telemetry != nil {
		h.telemetry(ctx, msg, report)
	} else if err != nil {
		logger.Error("checklist.command.failed", "error", err)
	}
	return err
}

func (h *Handler[T]) describe(msg T) map[string]any {
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		for key, value := range h.fields(msg) {
			fields[key] = value
		}
	}
	return fields
}

// settle maps the command result onto an outcome. A command that returns
// nil after its context ended still counts as interrupted.
func settle(ctx context.Context, err error) (Outcome, error) {
	if err == nil {
		err = ctx.Err()
		if err == nil {
			return OutcomeSucceeded, nil
		}
	}
	if kind, ok := contextKind(err); ok {
		return OutcomeInterrupted, kind.wrap(err)
	}
	return OutcomeFailed, execFailed.wrap(err)
}

// WithTimeout overrides DefaultTimeout. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger sets the run logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = logging.Ensure(logger)
	}
}

// WithOperation names the operation in every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives log fields from the message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithTelemetry installs fn, called once per run.
func WithTelemetry[T command.Message](fn Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = fn
	}
}
