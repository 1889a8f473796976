package buildcmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-checklist/internal/generator"
)

func TestBuildChecklistsHandler_Execute(t *testing.T) {
	cmd := loadBuildFixture(t, "build_basic.json")

	var captured generator.BuildOptions
	svc := &fakeGeneratorService{
		buildFunc: func(_ context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			captured = opts
			return &generator.BuildResult{PagesBuilt: 2, DryRun: opts.DryRun}, nil
		},
	}

	callbackInvoked := false
	cmd.ResultCallback = func(env ResultEnvelope) {
		callbackInvoked = true
		if env.Result == nil || env.Result.PagesBuilt != 2 {
			t.Fatalf("unexpected result %#v", env.Result)
		}
		if env.Metadata["operation"] != "build" {
			t.Fatalf("expected operation build, got %v", env.Metadata["operation"])
		}
	}

	if err := NewBuildChecklistsHandler(svc, nil).Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute build: %v", err)
	}
	if !captured.DryRun {
		t.Fatal("expected DryRun to be forwarded")
	}
	if len(captured.Variants) != 2 || captured.Variants[0] != "staff" || captured.Variants[1] != "student" {
		t.Fatalf("expected normalised variants, got %v", captured.Variants)
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked")
	}
}

func TestBuildChecklistsHandler_ValidationFailure(t *testing.T) {
	cmd := loadBuildFixture(t, "build_invalid.json")
	svc := &fakeGeneratorService{
		buildFunc: func(context.Context, generator.BuildOptions) (*generator.BuildResult, error) {
			t.Fatal("build should not run for invalid command")
			return nil, nil
		},
	}

	if err := NewBuildChecklistsHandler(svc, nil).Execute(context.Background(), cmd); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBuildChecklistsHandler_PropagatesErrorAndResult(t *testing.T) {
	buildErr := errors.New("template missing")
	svc := &fakeGeneratorService{
		buildFunc: func(context.Context, generator.BuildOptions) (*generator.BuildResult, error) {
			return nil, buildErr
		},
	}

	callbackInvoked := false
	cmd := BuildChecklistsCommand{ResultCallback: func(env ResultEnvelope) {
		callbackInvoked = true
		if env.Result != nil {
			t.Fatalf("expected nil result, got %#v", env.Result)
		}
	}}

	err := NewBuildChecklistsHandler(svc, nil).Execute(context.Background(), cmd)
	if err == nil {
		t.Fatal("expected error")
	}
	if !callbackInvoked {
		t.Fatal("expected callback even on failure")
	}
}

func TestBuildChecklistsHandler_RequiresService(t *testing.T) {
	if err := NewBuildChecklistsHandler(nil, nil).Execute(context.Background(), BuildChecklistsCommand{}); err == nil {
		t.Fatal("expected error without service")
	}
}

func TestCleanOutputHandler_Execute(t *testing.T) {
	called := false
	svc := &fakeGeneratorService{
		cleanFunc: func(context.Context) error {
			called = true
			return nil
		},
	}
	if err := NewCleanOutputHandler(svc, nil).Execute(context.Background(), CleanOutputCommand{}); err != nil {
		t.Fatalf("execute clean: %v", err)
	}
	if !called {
		t.Fatal("expected clean to be invoked")
	}
}

func TestCleanOutputHandler_Error(t *testing.T) {
	svc := &fakeGeneratorService{
		cleanFunc: func(context.Context) error { return errors.New("permission denied") },
	}
	if err := NewCleanOutputHandler(svc, nil).Execute(context.Background(), CleanOutputCommand{}); err == nil {
		t.Fatal("expected clean error")
	}
}

type fakeGeneratorService struct {
	buildFunc func(context.Context, generator.BuildOptions) (*generator.BuildResult, error)
	cleanFunc func(context.Context) error
}

func (f *fakeGeneratorService) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	if f.buildFunc != nil {
		return f.buildFunc(ctx, opts)
	}
	return &generator.BuildResult{}, nil
}

func (f *fakeGeneratorService) Clean(ctx context.Context) error {
	if f.cleanFunc != nil {
		return f.cleanFunc(ctx)
	}
	return nil
}

func loadBuildFixture(t *testing.T, name string) BuildChecklistsCommand {
	t.Helper()
	var cmd BuildChecklistsCommand
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	if err := json.Unmarshal(data, &cmd); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return cmd
}
