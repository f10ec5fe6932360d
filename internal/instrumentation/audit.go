package instrumentation

import (
	"context"
	"log/slog"
	"time"
)

// ToolInvocation captures one MCP tool call for audit logging and metrics.
// Fields are populated via the chaining With* methods as the handler learns
// more about the command, then sealed with one of the Complete methods.
type ToolInvocation struct {
	Tool      string
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Parsed command context.
	Verb         string
	VerbKnown    bool
	Namespace    string
	ResourceType string
	ResourceName string

	// Policy context. Decision is empty when no policy evaluation ran.
	Decision string

	// Trace correlation.
	TraceID string
	SpanID  string
}

// NewToolInvocation starts tracking a tool call.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithVerb records the parsed verb.
func (ti *ToolInvocation) WithVerb(verb string, known bool) *ToolInvocation {
	ti.Verb = verb
	ti.VerbKnown = known
	return ti
}

// WithResource records the resource context of the command.
func (ti *ToolInvocation) WithResource(namespace, resourceType, resourceName string) *ToolInvocation {
	ti.Namespace = namespace
	ti.ResourceType = resourceType
	ti.ResourceName = resourceName
	return ti
}

// WithDecision records the policy decision outcome.
func (ti *ToolInvocation) WithDecision(allowed bool) *ToolInvocation {
	if allowed {
		ti.Decision = DecisionAllowed
	} else {
		ti.Decision = DecisionDenied
	}
	return ti
}

// WithSpanContext records trace correlation IDs from the active span, if any.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	ti.TraceID = TraceIDFromContext(ctx)
	ti.SpanID = SpanIDFromContext(ctx)
	return ti
}

// Complete seals the invocation with an outcome.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteSuccess seals the invocation as successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// CompleteWithError seals the invocation as failed.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// Status returns the metrics status label for the invocation.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns low-cardinality attributes for operational logging.
// The verb passes through NormalizeVerb and resource names are omitted.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("verb", NormalizeVerb(ti.Verb, ti.VerbKnown)),
		slog.String("namespace_class", NamespaceClass(ti.Namespace)),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Decision != "" {
		attrs = append(attrs, slog.String("decision", ti.Decision))
	}
	return attrs
}

// LogAuditAttrs returns full-fidelity attributes for the audit trail,
// including exact resource identifiers and trace correlation.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("verb", ti.Verb),
		slog.String("namespace", ti.Namespace),
		slog.String("resource_type", ti.ResourceType),
		slog.String("resource_name", ti.ResourceName),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Decision != "" {
		attrs = append(attrs, slog.String("decision", ti.Decision))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	return attrs
}

// AuditLogger writes structured audit records for tool invocations.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an AuditLogger. A nil logger falls back to
// slog.Default().
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// LogInvocation writes one audit record for a completed tool invocation.
func (al *AuditLogger) LogInvocation(ctx context.Context, ti *ToolInvocation) {
	level := slog.LevelInfo
	if !ti.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(ctx, level, "tool invocation", ti.LogAuditAttrs()...)
}
