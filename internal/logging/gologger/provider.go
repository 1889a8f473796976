// Package gologger backs the checklist logging contract with go-logger for
// the builder and the watcher.
package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// Config mirrors the logging section of the checklist configuration.
type Config struct {
	Level  string
	Format string
	// AddSource records the caller on each entry.
	AddSource bool
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var formats = map[string]func() glog.Option{
	"":        func() glog.Option { return glog.WithLoggerTypeConsole() },
	"console": func() glog.Option { return glog.WithLoggerTypeConsole() },
	"json":    func() glog.Option { return glog.WithLoggerTypeJSON() },
	"pretty":  func() glog.Option { return glog.WithLoggerTypePretty() },
}

// Provider hands out go-logger children named after checklist modules.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the root go-logger. An unknown format is an error; an
// unknown level keeps the go-logger default.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	options := []glog.Option{format()}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}
	return &Provider{root: glog.NewLogger(options...)}, nil
}

// GetLogger returns the child logger for name, or the root for "".
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name != "" {
		return wrap(p.root.GetLogger(name))
	}
	return wrap(p.root)
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (a *adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, args...) }
func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }
func (a *adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, args...) }

// WithFields prefers go-logger's structured fields and falls back to bound
// key/value pairs in key order.
func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	copied := maps.Clone(fields)

	switch inner := a.inner.(type) {
	case glog.FieldsLogger:
		return wrap(inner.WithFields(copied))
	case interface{ With(...any) *glog.BaseLogger }:
		args := make([]any, 0, len(copied)*2)
		for _, key := range slices.Sorted(maps.Keys(copied)) {
			args = append(args, key, copied[key])
		}
		return wrap(inner.With(args...))
	}
	return a
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	return wrap(a.inner.WithContext(ctx))
}
