// Package console writes plain-text log lines, one entry per line, for sinks
// that are read by people: the terminal and the URL handler's log file.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// Level is an entry severity.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

var levelColors = [...]color.Attribute{
	color.FgHiBlack,
	color.FgCyan,
	color.FgGreen,
	color.FgYellow,
	color.FgRed,
	color.FgHiRed,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

// ParseLevel maps a config value onto a Level. Empty means info. Unknown
// values report false.
func ParseLevel(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return LevelInfo, true
	case "warning":
		return LevelWarn, true
	}
	for i, name := range levelNames {
		if strings.EqualFold(value, name) {
			return Level(i), true
		}
	}
	return LevelInfo, false
}

// Options configures a provider. Zero values write to stdout from DEBUG up
// without color.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
	// Color forces ANSI level labels, even when Writer is a file.
	Color bool
}

// sink is shared by every logger handed out by one provider.
type sink struct {
	mu     sync.Mutex
	w      io.Writer
	now    func() time.Time
	min    Level
	labels [len(levelNames)]string
}

func (s *sink) write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A failing sink must not fail the operation being logged.
	_, _ = io.WriteString(s.w, line)
}

type provider struct {
	sink *sink
}

// NewProvider returns a LoggerProvider writing to opts.Writer.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{w: opts.Writer, now: opts.TimeFunc, min: LevelDebug}
	if s.w == nil {
		s.w = os.Stdout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.MinLevel != nil {
		s.min = *opts.MinLevel
	}
	for i, name := range levelNames {
		s.labels[i] = name
		if opts.Color {
			c := color.New(levelColors[i], color.Bold)
			c.EnableColor()
			s.labels[i] = c.Sprint(name)
		}
	}
	return &provider{sink: s}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &logger{sink: p.sink, bound: []pair{{"logger", name}}}
}

type pair struct {
	key   string
	value any
}

type logger struct {
	sink  *sink
	bound []pair
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.log(LevelFatal, msg, args) }

// WithFields binds fields to every later entry. Keys are written sorted so
// bound output does not depend on map order.
func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	bound := make([]pair, 0, len(l.bound)+len(keys))
	for _, p := range l.bound {
		if _, replaced := fields[p.key]; !replaced {
			bound = append(bound, p)
		}
	}
	for _, key := range keys {
		bound = append(bound, pair{key, fields[key]})
	}
	return &logger{sink: l.sink, bound: bound}
}

func (l *logger) WithContext(context.Context) interfaces.Logger { return l }

func (l *logger) log(level Level, msg string, args []any) {
	if l.sink == nil || level < l.sink.min {
		return
	}

	var b strings.Builder
	b.WriteString(l.sink.now().UTC().Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(l.sink.labels[level])
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, p := range l.bound {
		writePair(&b, p.key, p.value)
	}
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			writePair(&b, "extra", args[i])
			break
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg" + strconv.Itoa(i/2)
		}
		writePair(&b, key, args[i+1])
	}
	b.WriteByte('\n')

	l.sink.write(b.String())
}

func writePair(b *strings.Builder, key string, value any) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(formatValue(value))
}

func formatValue(value any) string {
	var s string
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		s = v
	case error:
		s = v.Error()
	case time.Time:
		s = v.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	default:
		s = fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \t\r\n=\"") {
		return strconv.Quote(s)
	}
	return s
}
