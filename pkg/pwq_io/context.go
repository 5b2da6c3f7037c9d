// pkg/pwq_io/context.go

package pwq_io

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext carries what one command invocation needs: a context
// with its span, a scoped logger and timing.
type RuntimeContext struct {
	Ctx          context.Context
	Log          *zap.Logger
	Timestamp    time.Time
	Span         trace.Span
	Command      string
	InvocationID string
	Attributes   map[string]string

	// Cleanup registers fn to run when the command exits or is
	// interrupted. Nil outside a wrapped command.
	Cleanup func(fn func() error)
}

// OnExit registers fn with Cleanup, or runs nothing when unset.
func (rc *RuntimeContext) OnExit(fn func() error) {
	if rc.Cleanup != nil {
		rc.Cleanup(fn)
	}
}

// NewContext starts the command span and scopes the logger to it.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	ctx, span := telemetry.Start(parent, cmdName)
	id := uuid.NewString()

	base := zap.L().With(
		zap.String("command", cmdName),
		zap.String("invocation_id", id),
	)
	if sc := span.SpanContext(); sc.IsValid() {
		base = base.With(zap.String("trace_id", sc.TraceID().String()))
	}

	return &RuntimeContext{
		Ctx:          ctx,
		Log:          base,
		Timestamp:    time.Now(),
		Span:         span,
		Command:      cmdName,
		InvocationID: id,
		Attributes:   make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("Panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome and closes the span with key attributes.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)
	success := err == nil

	if pwq_err.IsExpectedUserError(err) {
		rc.Log.Debug("Advisory result", zap.Error(err))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("invocation_id", rc.InvocationID),
		attribute.Int("exit_code", pwq_err.GetExitCode(err)),
		attribute.String("error_type", classifyError(err)),
	}
	if len(os.Args) > 1 {
		attrs = append(attrs, attribute.String("args", telemetry.TruncateArgs(redactArgs(os.Args[1:]))))
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if pwq_err.IsExpectedUserError(err) {
		return "user"
	}
	var classified *pwq_err.ClassifiedError
	if cerr.As(err, &classified) && classified.Category == pwq_err.CategoryPolicy {
		return "policy"
	}
	return "system"
}

// redactArgs keeps flag names but drops values that could be secrets.
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			out[i] = a
		} else {
			out[i] = "<arg>"
		}
	}
	return out
}
