package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes the rebuild triggered by a batch of file changes.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

// CommandRunner runs a fixed argv as a child process.
type CommandRunner struct {
	Argv   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

var _ Runner = CommandRunner{}

// DefaultCommand re-invokes the current executable with the build
// subcommand.
func DefaultCommand(extra ...string) ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve executable: %w", err)
	}
	argv := append([]string{exe}, extra...)
	return append(argv, "build"), nil
}

func (r CommandRunner) Run(ctx context.Context) error {
	if len(r.Argv) == 0 || strings.TrimSpace(r.Argv[0]) == "" {
		return errors.New("watcher: command is required")
	}
	cmd := exec.CommandContext(ctx, r.Argv[0], r.Argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("watcher: %s: %w", strings.Join(r.Argv, " "), err)
	}
	return nil
}
