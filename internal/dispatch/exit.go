package dispatch

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// locatedError remembers where a fatal dispatch error was raised.
type locatedError struct {
	err  error
	file string
	line int
}

func (e *locatedError) Error() string { return e.err.Error() }

func (e *locatedError) Unwrap() error { return e.err }

func located(err error) error {
	if err == nil {
		return nil
	}
	var existing *locatedError
	if errors.As(err, &existing) {
		return err
	}
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return err
	}
	return &locatedError{err: err, file: filepath.Base(file), line: line}
}

// Location reports the source position recorded for err, if any.
func Location(err error) (string, bool) {
	var loc *locatedError
	if errors.As(err, &loc) {
		return fmt.Sprintf("%s:%d", loc.file, loc.line), true
	}
	return "", false
}

// Guard runs fn and converts its outcome into a process exit code. Panics
// are recovered. The failing source position and the exit code are logged,
// followed by a final success or failure line.
func Guard(logger interfaces.Logger, fn func() error) (code int) {
	logger = logging.Ensure(logger)

	defer func() {
		if recovered := recover(); recovered != nil {
			code = ExitFailure
			logger.Error("checklist.dispatch.panic",
				"panic", fmt.Sprint(recovered),
				"location", panicLocation(),
				"exit_code", code,
			)
		}
		if code == ExitSuccess {
			logger.Info("checklist.dispatch.exit", "status", "success", "exit_code", code)
			return
		}
		logger.Error("checklist.dispatch.exit", "status", "failure", "exit_code", code)
	}()

	if err := fn(); err != nil {
		fields := []any{"error", err, "exit_code", ExitFailure}
		if location, ok := Location(err); ok {
			fields = append(fields, "location", location)
		}
		logger.Error("checklist.dispatch.failed", fields...)
		return ExitFailure
	}
	return ExitSuccess
}

// panicLocation walks the stack from the deferred recover to the first frame
// outside the Go runtime, which is the statement that panicked.
func panicLocation() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") && !strings.HasPrefix(frame.Function, "internal/runtime") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			return "unknown"
		}
	}
}
