package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// Config names the scheme accepted and the helper app managed by the
// iss-app namespace.
type Config struct {
	Scheme        string
	HelperProcess string
	HelperBundle  string
}

// StepResult records one system call made while running an action.
type StepResult struct {
	Namespace Namespace
	Action    Action
	Operation string
	Target    string
	Err       error
	Duration  time.Duration
}

// Result summarises one dispatch.
type Result struct {
	InvocationID string
	Request      Request
	Steps        []StepResult
}

// Warnings counts the steps that failed.
func (r *Result) Warnings() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, step := range r.Steps {
		if step.Err != nil {
			count++
		}
	}
	return count
}

// Dispatcher maps requests onto System calls.
type Dispatcher struct {
	cfg    Config
	system System
	logger interfaces.Logger
	newID  func() string
}

// New returns a dispatcher. A nil logger discards output.
func New(cfg Config, system System, logger interfaces.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		system: system,
		logger: logging.Ensure(logger),
		newID:  uuid.NewString,
	}
}

// DispatchURL parses raw and dispatches it.
func (d *Dispatcher) DispatchURL(ctx context.Context, raw string) (*Result, error) {
	req, err := ParseRequest(raw)
	if err != nil {
		return nil, located(err)
	}
	return d.Dispatch(ctx, req)
}

// Dispatch resolves every action before running any of them, so an unknown
// namespace or action never triggers a system call.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d.system == nil {
		return nil, located(fmt.Errorf("dispatch: system is required"))
	}
	if want := strings.ToLower(strings.TrimSpace(d.cfg.Scheme)); want != "" && req.Scheme != "" && req.Scheme != want {
		return nil, located(fmt.Errorf("%w: got %q, want %q", ErrSchemeMismatch, req.Scheme, want))
	}

	ops, err := resolve(req)
	if err != nil {
		return nil, located(err)
	}

	result := &Result{InvocationID: d.newID(), Request: req}
	logger := logging.WithFields(d.logger, map[string]any{
		"invocation_id": result.InvocationID,
		"namespace":     string(req.Namespace),
	})
	logger.Info("checklist.dispatch.start", "url", req.String())

	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return result, located(err)
		}
		steps := op(ctx, d)
		for j := range steps {
			steps[j].Namespace = req.Namespace
			steps[j].Action = req.Actions[i]
			if steps[j].Err != nil {
				logger.Warn("checklist.dispatch.step_failed",
					"action", string(req.Actions[i]),
					"operation", steps[j].Operation,
					"target", steps[j].Target,
					"error", steps[j].Err,
				)
				continue
			}
			logger.Info("checklist.dispatch.step_completed",
				"action", string(req.Actions[i]),
				"operation", steps[j].Operation,
				"target", steps[j].Target,
			)
		}
		result.Steps = append(result.Steps, steps...)
	}

	logger.Info("checklist.dispatch.completed", "steps", len(result.Steps), "warnings", result.Warnings())
	return result, nil
}

func (d *Dispatcher) step(ctx context.Context, operation, target string, fn func(context.Context) error) StepResult {
	start := time.Now()
	err := fn(ctx)
	return StepResult{
		Operation: operation,
		Target:    target,
		Err:       err,
		Duration:  time.Since(start),
	}
}
