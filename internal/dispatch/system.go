package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	ErrProcessNotRunning = errors.New("dispatch: process not running")
	ErrBundleMissing     = errors.New("dispatch: bundle not found")
	ErrBundlePathUnsafe  = errors.New("dispatch: bundle path must be an absolute .app path")
)

// System is the set of host operations actions can trigger.
type System interface {
	TerminateProcess(ctx context.Context, name string) error
	RemoveBundle(ctx context.Context, path string) error
	OpenSettingsPane(ctx context.Context, pane string) error
}

// CommandRunner executes an external program and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecSystem implements System with macOS command line tools.
type ExecSystem struct {
	run       CommandRunner
	removeAll func(string) error
	stat      func(string) (fs.FileInfo, error)
}

var _ System = (*ExecSystem)(nil)

// NewExecSystem returns a System backed by pkill, open and the filesystem.
// A nil runner uses os/exec.
func NewExecSystem(run CommandRunner) *ExecSystem {
	if run == nil {
		run = execRunner
	}
	return &ExecSystem{
		run:       run,
		removeAll: os.RemoveAll,
		stat:      os.Stat,
	}
}

func (s *ExecSystem) TerminateProcess(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("dispatch: process name is required")
	}
	out, err := s.run(ctx, "pkill", "-x", name)
	if err != nil {
		var exitErr interface{ ExitCode() int }
		// pkill exits 1 when nothing matched.
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return fmt.Errorf("%w: %s", ErrProcessNotRunning, name)
		}
		return commandError("pkill", err, out)
	}
	return nil
}

func (s *ExecSystem) RemoveBundle(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := filepath.Clean(strings.TrimSpace(path))
	if !filepath.IsAbs(clean) || !strings.EqualFold(filepath.Ext(clean), ".app") || filepath.Dir(clean) == clean {
		return fmt.Errorf("%w: %q", ErrBundlePathUnsafe, path)
	}
	if _, err := s.stat(clean); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrBundleMissing, clean)
		}
		return err
	}
	return s.removeAll(clean)
}

func (s *ExecSystem) OpenSettingsPane(ctx context.Context, pane string) error {
	pane = strings.TrimSpace(pane)
	if pane == "" {
		return errors.New("dispatch: settings pane is required")
	}
	out, err := s.run(ctx, "open", "x-apple.systempreferences:"+pane)
	if err != nil {
		return commandError("open", err, out)
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func commandError(name string, err error, out []byte) error {
	if msg := strings.TrimSpace(string(out)); msg != "" {
		return fmt.Errorf("dispatch: %s: %w: %s", name, err, msg)
	}
	return fmt.Errorf("dispatch: %s: %w", name, err)
}
