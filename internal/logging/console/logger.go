// Package console provides a dependency-free line-oriented logger used when
// hosts enable logging without wiring go-logger.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// Level orders entry severities from trace to fatal.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelLabels = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// String returns the upper-case label written in each entry.
func (l Level) String() string {
	if int(l) < len(levelLabels) {
		return levelLabels[l]
	}
	return "INFO"
}

// Options tunes the output destination, clock, and severity threshold.
type Options struct {
	Writer   io.Writer
	TimeFunc func() time.Time
	MinLevel *Level
}

// Provider writes one line per entry to a shared writer. Loggers hand their
// rendered entries to the provider, which serialises writes.
type Provider struct {
	mu    sync.Mutex
	out   io.Writer
	clock func() time.Time
	min   Level
}

// NewProvider constructs a console-backed logger provider. Entries go to
// stdout at DEBUG and above unless Options overrides either choice.
func NewProvider(opts Options) interfaces.LoggerProvider {
	p := &Provider{
		out:   opts.Writer,
		clock: opts.TimeFunc,
		min:   LevelDebug,
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if opts.MinLevel != nil {
		p.min = *opts.MinLevel
	}
	return p
}

// GetLogger implements interfaces.LoggerProvider.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &logger{provider: p, name: name}
}

func (p *Provider) write(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Diagnostics stay best effort; a failed write must not fail the caller.
	_, _ = io.WriteString(p.out, line+"\n")
}

type logger struct {
	provider *Provider
	name     string
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	return &logger{
		provider: l.provider,
		name:     l.name,
		fields:   merge(merge(nil, l.fields), fields),
		ctx:      l.ctx,
	}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{
		provider: l.provider,
		name:     l.name,
		fields:   merge(nil, l.fields),
		ctx:      ctx,
	}
}

func (l *logger) emit(level Level, msg string, args []any) {
	if l.provider == nil || level < l.provider.min {
		return
	}

	fields := merge(nil, l.fields)
	fields = merge(fields, logging.ContextFields(l.ctx))
	fields = merge(fields, pairFields(args))

	var b strings.Builder
	b.Grow(48 + len(l.name) + len(msg) + len(fields)*16)
	b.WriteString(l.provider.clock().UTC().Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	if l.name != "" {
		b.WriteByte(' ')
		b.WriteString(l.name)
	}
	b.WriteByte(' ')
	b.WriteString(msg)

	for _, key := range sortedKeys(fields) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(renderValue(fields[key]))
	}

	l.provider.write(b.String())
}

func merge(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

// pairFields reads args as alternating key/value pairs. A dangling value is
// kept under the "extra" key rather than dropped.
func pairFields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]any, len(args)/2+1)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = fmt.Sprint(args[i])
		}
		fields[key] = args[i+1]
	}
	if len(args)%2 == 1 {
		fields["extra"] = args[len(args)-1]
	}
	return fields
}

func sortedKeys(fields map[string]any) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsFunc(value, func(r rune) bool { return r <= 0x20 || r == '=' || r == '"' }) {
		return strconv.Quote(value)
	}
	return value
}
