package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod       = "method"
	attrPath         = "path"
	attrStatus       = "status"
	attrVerb         = "verb"
	attrDecision     = "decision"
	attrResourceType = "resource_type"
	attrNamespace    = "namespace"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Parse metrics
	parseTotal    metric.Int64Counter
	parseDuration metric.Float64Histogram

	// Policy metrics
	policyDecisionsTotal metric.Int64Counter

	// detailedLabels controls whether high-cardinality labels (namespace,
	// resource_type) are included in parse metrics
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.parseTotal, err = meter.Int64Counter(
		"kubectl_parse_total",
		metric.WithDescription("Total number of parsed kubectl commands"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubectl_parse_total counter: %w", err)
	}

	m.parseDuration, err = meter.Float64Histogram(
		"kubectl_parse_duration_seconds",
		metric.WithDescription("kubectl command parse duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubectl_parse_duration_seconds histogram: %w", err)
	}

	m.policyDecisionsTotal, err = meter.Int64Counter(
		"kubectl_policy_decisions_total",
		metric.WithDescription("Total number of policy decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubectl_policy_decisions_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordParse records one parsed kubectl command with its verb, resource
// context, outcome, and duration.
//
// CARDINALITY NOTE: the verb label passes through NormalizeVerb, which
// collapses unrecognized verbs to "other" because verbs come from untrusted
// input. When detailedLabels is false (default), only verb and status labels
// are recorded; namespace and resource_type are added when it is true.
func (m *Metrics) RecordParse(ctx context.Context, verb string, verbKnown bool, resourceType, namespace, status string, duration time.Duration) {
	if m.parseTotal == nil || m.parseDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrVerb, NormalizeVerb(verb, verbKnown)),
		attribute.String(attrStatus, status),
	}

	if m.detailedLabels {
		attrs = append(attrs,
			attribute.String(attrResourceType, resourceType),
			attribute.String(attrNamespace, namespace),
		)
	}

	m.parseTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.parseDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordPolicyDecision records one policy evaluation outcome.
// Decision should be one of: "allowed", "denied".
func (m *Metrics) RecordPolicyDecision(ctx context.Context, verb string, verbKnown bool, decision string) {
	if m.policyDecisionsTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrVerb, NormalizeVerb(verb, verbKnown)),
		attribute.String(attrDecision, decision),
	}

	m.policyDecisionsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
