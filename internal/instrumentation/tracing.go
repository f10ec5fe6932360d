package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the mcp-kubectl-guard package.
const TracerName = "github.com/giantswarm/mcp-kubectl-guard"

// Span attribute keys for guard operations.
const (
	// SpanAttrTool is the MCP tool name.
	SpanAttrTool = "mcp.tool"

	// SpanAttrVerb is the parsed kubectl verb.
	SpanAttrVerb = "guard.verb"

	// SpanAttrDecision is the policy decision outcome.
	SpanAttrDecision = "guard.decision"

	// SpanAttrValid indicates whether the command parsed as structurally valid.
	SpanAttrValid = "guard.valid"

	// SpanAttrNamespace is the Kubernetes namespace.
	SpanAttrNamespace = "k8s.namespace"

	// SpanAttrResourceType is the Kubernetes resource type.
	SpanAttrResourceType = "k8s.resource_type"

	// SpanAttrResourceName is the Kubernetes resource name.
	SpanAttrResourceName = "k8s.resource_name"
)

// SpanAttributeBuilder helps construct OpenTelemetry span attributes
// with consistent naming and cardinality controls.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 8),
	}
}

// WithTool adds the MCP tool name attribute.
func (b *SpanAttributeBuilder) WithTool(tool string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrTool, tool))
	return b
}

// WithVerb adds the kubectl verb attribute with cardinality control.
func (b *SpanAttributeBuilder) WithVerb(verb string, known bool) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrVerb, NormalizeVerb(verb, known)))
	return b
}

// WithNamespace adds the Kubernetes namespace attribute.
func (b *SpanAttributeBuilder) WithNamespace(namespace string) *SpanAttributeBuilder {
	if namespace != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrNamespace, namespace))
	}
	return b
}

// WithResource adds Kubernetes resource attributes.
func (b *SpanAttributeBuilder) WithResource(resourceType, resourceName string) *SpanAttributeBuilder {
	if resourceType != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrResourceType, resourceType))
	}
	if resourceName != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrResourceName, resourceName))
	}
	return b
}

// WithDecision adds the policy decision attribute.
func (b *SpanAttributeBuilder) WithDecision(allowed bool) *SpanAttributeBuilder {
	decision := DecisionDenied
	if allowed {
		decision = DecisionAllowed
	}
	b.attrs = append(b.attrs, attribute.String(SpanAttrDecision, decision))
	return b
}

// WithValid adds the structural validity attribute.
func (b *SpanAttributeBuilder) WithValid(valid bool) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.Bool(SpanAttrValid, valid))
	return b
}

// Build returns the constructed attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

// StartToolSpan starts a span for an MCP tool invocation.
// Automatically adds the tool name and sets the server span kind.
func StartToolSpan(ctx context.Context, toolName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := make([]attribute.KeyValue, 0, len(attrs)+1)
	allAttrs = append(allAttrs, attribute.String(SpanAttrTool, toolName))
	allAttrs = append(allAttrs, attrs...)

	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "tool."+toolName,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// SetSpanError records an error on the span and sets the status to error.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// TraceIDFromContext returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func TraceIDFromContext(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// SpanIDFromContext returns the span ID from the current span in context.
// Returns empty string if no valid span is present.
func SpanIDFromContext(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().SpanID().String()
	}
	return ""
}
