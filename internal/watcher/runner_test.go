package watcher

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestCommandRunnerRequiresArgv(t *testing.T) {
	if err := (CommandRunner{}).Run(context.Background()); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestCommandRunnerRunsProcess(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	var out bytes.Buffer
	runner := CommandRunner{Argv: []string{sh, "-c", "echo rebuilt"}, Stdout: &out}
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "rebuilt" {
		t.Fatalf("unexpected output %q", out.String())
	}

	failing := CommandRunner{Argv: []string{sh, "-c", "exit 3"}}
	if err := failing.Run(context.Background()); err == nil {
		t.Fatal("expected failure for non-zero exit")
	}
}

func TestDefaultCommandAppendsBuild(t *testing.T) {
	argv, err := DefaultCommand("--config", "checklists.yaml")
	if err != nil {
		t.Fatalf("DefaultCommand: %v", err)
	}
	exe, _ := os.Executable()
	if argv[0] != exe {
		t.Fatalf("expected current executable, got %s", argv[0])
	}
	if got := strings.Join(argv[1:], " "); got != "--config checklists.yaml build" {
		t.Fatalf("unexpected argv %q", got)
	}
}
