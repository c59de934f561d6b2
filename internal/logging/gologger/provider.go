// Package gologger adapts go-logger to the provider contract consumed by the
// DI container, so hosts can route compiler diagnostics through their own
// go-logger stack.
package gologger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// Config selects how the underlying go-logger root is built.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

var levelNames = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out named go-logger children behind the
// interfaces.LoggerProvider contract.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the go-logger root from cfg. An unknown format is an
// error; an unknown level falls back to go-logger's default.
func NewProvider(cfg Config) (*Provider, error) {
	var opts []glog.Option

	if name, ok := levelNames[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		opts = append(opts, glog.WithLevel(name))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		opts = append(opts, glog.WithLoggerTypeJSON())
	case "console":
		opts = append(opts, glog.WithLoggerTypeConsole())
	case "pretty":
		opts = append(opts, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		opts = append(opts, glog.WithAddSource(true))
	}

	root := glog.NewLogger(opts...)

	var focus []string
	for _, name := range cfg.Focus {
		if name = strings.TrimSpace(name); name != "" {
			focus = append(focus, name)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root}, nil
}

// GetLogger implements interfaces.LoggerProvider.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

// adapt bridges a go-logger Logger to the compiler contract.
func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &bridge{inner: inner}
}

type bridge struct {
	inner glog.Logger
}

func (b *bridge) Trace(msg string, args ...any) { b.inner.Trace(msg, args...) }
func (b *bridge) Debug(msg string, args ...any) { b.inner.Debug(msg, args...) }
func (b *bridge) Info(msg string, args ...any)  { b.inner.Info(msg, args...) }
func (b *bridge) Warn(msg string, args ...any)  { b.inner.Warn(msg, args...) }
func (b *bridge) Error(msg string, args ...any) { b.inner.Error(msg, args...) }
func (b *bridge) Fatal(msg string, args ...any) { b.inner.Fatal(msg, args...) }

func (b *bridge) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return b
	}
	return adapt(b.inner.WithContext(ctx))
}

// WithFields prefers go-logger's native fields support. Loggers without it
// get the fields spliced in as sorted key/value arguments so output stays
// deterministic.
func (b *bridge) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return b
	}

	if fl, ok := b.inner.(glog.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for k, v := range fields {
			copied[k] = v
		}
		return adapt(fl.WithFields(copied))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	if wl, ok := b.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return adapt(wl.With(args...))
	}
	return b
}
