package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

type testMessage struct{ Name string }

func (testMessage) Type() string { return "checklist.test.message" }

func (testMessage) Validate() error { return nil }

type rejectedMessage struct{}

func (rejectedMessage) Type() string { return "checklist.test.invalid" }

func (rejectedMessage) Validate() error { return errors.New("invalid") }

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg rejectedMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), rejectedMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerReportsInterruptedRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var outcome Outcome
	h := NewHandler(func(context.Context, testMessage) error {
		cancel()
		return nil
	}, WithTelemetry(func(_ context.Context, _ testMessage, report Report) {
		outcome = report.Outcome
	}))

	if err := h.Execute(ctx, testMessage{}); !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if outcome != OutcomeInterrupted {
		t.Fatalf("expected interrupted outcome, got %s", outcome)
	}
}

func TestDefaultTelemetryLogsOutcome(t *testing.T) {
	logger := &capturingLogger{}
	h := NewHandler(func(context.Context, testMessage) error { return errors.New("render failed") },
		WithTelemetry(DefaultTelemetry[testMessage](logger)),
	)
	_ = h.Execute(context.Background(), testMessage{})

	if len(logger.errors) != 1 || logger.errors[0] != "checklist.command.finished" {
		t.Fatalf("expected one finished error entry, got %v", logger.errors)
	}
}

type capturingLogger struct {
	errors []string
}

func (l *capturingLogger) Trace(string, ...any)                          {}
func (l *capturingLogger) Debug(string, ...any)                          {}
func (l *capturingLogger) Info(string, ...any)                           {}
func (l *capturingLogger) Warn(string, ...any)                           {}
func (l *capturingLogger) Error(msg string, _ ...any)                    { l.errors = append(l.errors, msg) }
func (l *capturingLogger) Fatal(string, ...any)                          {}
func (l *capturingLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestHandlerTelemetryReceivesFieldsAndOutcome(t *testing.T) {
	var got []Report
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		if msg.Name == "fail" {
			return errors.New("nope")
		}
		return nil
	},
		WithOperation[testMessage]("test.op"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"name": msg.Name}
		}),
		WithTelemetry(func(_ context.Context, _ testMessage, report Report) {
			got = append(got, report)
		}),
	)

	_ = h.Execute(context.Background(), testMessage{Name: "ok"})
	_ = h.Execute(context.Background(), testMessage{Name: "fail"})

	if len(got) != 2 {
		t.Fatalf("expected two telemetry callbacks, got %d", len(got))
	}
	if got[0].Outcome != OutcomeSucceeded || got[1].Outcome != OutcomeFailed {
		t.Fatalf("unexpected outcomes: %s, %s", got[0].Outcome, got[1].Outcome)
	}
	if got[1].Err == nil {
		t.Fatal("expected failed run to carry its error")
	}
	if got[0].Fields["name"] != "ok" || got[0].Fields["operation"] != "test.op" {
		t.Fatalf("expected message fields in telemetry, got %v", got[0].Fields)
	}
	if got[0].Command != "checklist.test.message" {
		t.Fatalf("expected command type, got %q", got[0].Command)
	}
}
