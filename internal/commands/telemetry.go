package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// Outcome classifies how a command run ended.
type Outcome string

const (
	OutcomeSucceeded   Outcome = "succeeded"
	OutcomeFailed      Outcome = "failed"
	OutcomeInterrupted Outcome = "interrupted"
)

// Report is handed to telemetry once a command run ends.
type Report struct {
	Command   string
	Operation string
	Fields    map[string]any
	Elapsed   time.Duration
	Err       error
	Outcome   Outcome
	Logger    interfaces.Logger
}

// Telemetry observes finished command runs.
type Telemetry[T command.Message] func(ctx context.Context, msg T, report Report)

// DefaultTelemetry writes one line per run. A nil logger uses the run's own
// logger, which already carries the message fields.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	return func(_ context.Context, _ T, report Report) {
		entry := logging.Ensure(report.Logger)
		if logger != nil {
			entry = logging.WithFields(logger, report.Fields)
		}
		args := []any{"outcome", string(report.Outcome), "duration_ms", report.Elapsed.Milliseconds()}
		if report.Outcome == OutcomeSucceeded {
			entry.Info("checklist.command.finished", args...)
			return
		}
		entry.Error("checklist.command.finished", append(args, "error", report.Err)...)
	}
}
