// Package instrumentation provides OpenTelemetry instrumentation for the
// mcp-kubectl-guard server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests, command parsing, and policy decisions
//   - Distributed tracing for MCP tool invocations
//   - Prometheus metrics export via /metrics endpoint
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Parse Metrics:
//   - kubectl_parse_total: Counter of parsed commands by verb and status
//   - kubectl_parse_duration_seconds: Histogram of parse durations
//
// Policy Metrics:
//   - kubectl_policy_decisions_total: Counter of policy decisions by verb and decision
//
// # Cardinality Considerations
//
// Verb and namespace labels come straight from untrusted command strings, so
// the recorder normalizes them before use: unrecognized verbs collapse to
// "other" and namespaces to a coarse class. Exact identifiers are only
// written to the audit log, never to metric labels.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: mcp-kubectl-guard)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "mcp-kubectl-guard",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordParse(ctx, "get", true, "pod", "default", "success", time.Since(start))
package instrumentation
