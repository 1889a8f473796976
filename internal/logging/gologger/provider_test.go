package gologger

import (
	"context"
	"strings"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

func TestProviderNamesBuildAndWatchLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", AddSource: true})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	for _, name := range []string{"checklist.build", "checklist.watch", ""} {
		if logger := p.GetLogger(name); logger == nil {
			t.Fatalf("expected logger for %q", name)
		}
	}
	p.GetLogger("checklist.build").Debug("checklist.build.started")
}

func TestNewProviderFormats(t *testing.T) {
	for _, format := range []string{"", "console", "JSON", "pretty"} {
		if _, err := NewProvider(Config{Format: format, Level: "warning"}); err != nil {
			t.Fatalf("format %q: unexpected error %v", format, err)
		}
	}
	_, err := NewProvider(Config{Format: "xml"})
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestZeroProviderDiscards(t *testing.T) {
	var p *Provider
	p.GetLogger("checklist.build").Info("dropped")
	(&Provider{}).GetLogger("checklist.build").Info("dropped")
}

func TestAdapterForwardsLevelsAndFields(t *testing.T) {
	rec := &glogRecorder{}
	logger := wrap(rec)

	logger.Trace("t")
	logger.Debug("d")
	logger.Info("i", "variant", "staff")
	logger.Warn("w")
	logger.Error("e")
	logger.Fatal("f")
	if got := strings.Join(rec.levels, ","); got != "trace,debug,info,warn,error,fatal" {
		t.Fatalf("unexpected forwarded levels %s", got)
	}

	fields := map[string]any{"variant": "staff"}
	logger.(*adapter).WithFields(fields)
	fields["variant"] = "student"
	if len(rec.bound) != 1 || rec.bound[0]["variant"] != "staff" {
		t.Fatalf("expected a cloned field map, got %v", rec.bound)
	}
	if logger.(*adapter).WithFields(nil) != logger {
		t.Fatal("expected empty fields to keep the adapter")
	}

	ctx := context.WithValue(context.Background(), ctxKey{}, "run-1")
	logger.WithContext(ctx)
	if len(rec.contexts) != 1 || rec.contexts[0] != ctx {
		t.Fatalf("expected context to reach go-logger, got %v", rec.contexts)
	}
}

type ctxKey struct{}

type glogRecorder struct {
	levels   []string
	bound    []map[string]any
	contexts []context.Context
}

var (
	_ glog.Logger       = (*glogRecorder)(nil)
	_ glog.FieldsLogger = (*glogRecorder)(nil)
)

func (r *glogRecorder) Trace(string, ...any) { r.levels = append(r.levels, "trace") }
func (r *glogRecorder) Debug(string, ...any) { r.levels = append(r.levels, "debug") }
func (r *glogRecorder) Info(string, ...any)  { r.levels = append(r.levels, "info") }
func (r *glogRecorder) Warn(string, ...any)  { r.levels = append(r.levels, "warn") }
func (r *glogRecorder) Error(string, ...any) { r.levels = append(r.levels, "error") }
func (r *glogRecorder) Fatal(string, ...any) { r.levels = append(r.levels, "fatal") }

func (r *glogRecorder) WithFields(fields map[string]any) glog.Logger {
	r.bound = append(r.bound, fields)
	return r
}

func (r *glogRecorder) WithContext(ctx context.Context) glog.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}
