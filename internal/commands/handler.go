package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-courseware/internal/logging"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps command execution with the shared concerns every courseware
// command carries: message validation, context management, structured
// logging, error tagging, and optional telemetry.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    func(T) map[string]any
	telemetry Telemetry[T]
}

// NewHandler creates a handler satisfying go-command's Commander contract.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultCommandTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute. Validation failures and
// context errors are tagged before the wrapped function ever runs; outcomes
// are reported through the telemetry callback when one is configured, or
// logged directly otherwise.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	ctx = EnsureContext(ctx)
	ctx, cancel := WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	messageType := command.GetMessageType(msg)
	fields := map[string]any{"command": messageType}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		for key, value := range h.fields(msg) {
			fields[key] = value
		}
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")

	start := time.Now()
	if err := h.exec(ctx, msg); err != nil {
		h.finish(ctx, msg, logger, outcome{
			command:  messageType,
			fields:   fields,
			duration: time.Since(start),
			err:      err,
			status:   TelemetryStatusFailed,
		})
		return wrapExecuteError(err)
	}
	if err := ctx.Err(); err != nil {
		h.finish(ctx, msg, logger, outcome{
			command:  messageType,
			fields:   fields,
			duration: time.Since(start),
			err:      err,
			status:   TelemetryStatusContextError,
		})
		return wrapContextError(err)
	}

	h.finish(ctx, msg, logger, outcome{
		command:  messageType,
		fields:   fields,
		duration: time.Since(start),
		status:   TelemetryStatusSuccess,
	})
	return nil
}

type outcome struct {
	command  string
	fields   map[string]any
	duration time.Duration
	err      error
	status   TelemetryStatus
}

// finish reports the execution outcome exactly once: to the telemetry
// callback when configured, to the logger otherwise.
func (h *Handler[T]) finish(ctx context.Context, msg T, logger interfaces.Logger, out outcome) {
	if h.telemetry != nil {
		h.telemetry(ctx, msg, TelemetryInfo{
			Command:   out.command,
			Operation: h.operation,
			Fields:    out.fields,
			Duration:  out.duration,
			Error:     out.err,
			Status:    out.status,
			Logger:    h.logger,
		})
		return
	}
	switch out.status {
	case TelemetryStatusSuccess:
		logger.Info("command.execute.success")
	case TelemetryStatusContextError:
		logger.Error("command.execute.context_error", "error", out.err)
	default:
		logger.Error("command.execute.failed", "error", out.err)
	}
}

// WithTimeout overrides the default execution timeout. Zero or negative
// disables the deadline entirely.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op
// logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = EnsureLogger(logger)
	}
}

// WithOperation sets a human-friendly operation name emitted with every log
// entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra structured fields from the message so log
// entries and telemetry identify what a command operated on.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithTelemetry installs a callback invoked after every execution. When set,
// the callback owns outcome reporting.
func WithTelemetry[T command.Message](telemetry Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = telemetry
	}
}
