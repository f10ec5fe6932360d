package instrumentation

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation("kubectl_parse")

	if ti.Tool != "kubectl_parse" {
		t.Errorf("Tool = %q, want %q", ti.Tool, "kubectl_parse")
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}

	time.Sleep(1 * time.Millisecond) // Ensure some duration
	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("Success should be true")
	}
	if ti.Duration == 0 {
		t.Error("Duration should be non-zero")
	}
	if ti.Error != "" {
		t.Errorf("Error should be empty, got %q", ti.Error)
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation("kubectl_check")
	err := errors.New("not a kubectl command")

	ti.CompleteWithError(err)

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Error != "not a kubectl command" {
		t.Errorf("Error = %q, want %q", ti.Error, "not a kubectl command")
	}
}

func TestToolInvocation_WithVerb(t *testing.T) {
	ti := NewToolInvocation("kubectl_parse")
	ti.WithVerb("delete", true)

	if ti.Verb != "delete" {
		t.Errorf("Verb = %q, want %q", ti.Verb, "delete")
	}
	if !ti.VerbKnown {
		t.Error("VerbKnown should be true")
	}
}

func TestToolInvocation_WithResource(t *testing.T) {
	ti := NewToolInvocation("kubectl_parse")
	ti.WithResource("production", "pod", "nginx-abc123")

	if ti.Namespace != "production" {
		t.Errorf("Namespace = %q, want %q", ti.Namespace, "production")
	}
	if ti.ResourceType != "pod" {
		t.Errorf("ResourceType = %q, want %q", ti.ResourceType, "pod")
	}
	if ti.ResourceName != "nginx-abc123" {
		t.Errorf("ResourceName = %q, want %q", ti.ResourceName, "nginx-abc123")
	}
}

func TestToolInvocation_WithDecision(t *testing.T) {
	ti := NewToolInvocation("kubectl_check")

	ti.WithDecision(true)
	if ti.Decision != DecisionAllowed {
		t.Errorf("Decision = %q, want %q", ti.Decision, DecisionAllowed)
	}

	ti.WithDecision(false)
	if ti.Decision != DecisionDenied {
		t.Errorf("Decision = %q, want %q", ti.Decision, DecisionDenied)
	}
}

func TestToolInvocation_Status(t *testing.T) {
	ti := NewToolInvocation("test")

	ti.Success = true
	if status := ti.Status(); status != StatusSuccess {
		t.Errorf("Status() = %q, want %q", status, StatusSuccess)
	}

	ti.Success = false
	if status := ti.Status(); status != StatusError {
		t.Errorf("Status() = %q, want %q", status, StatusError)
	}
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation("kubectl_check").
		WithVerb("frobnicate", false).
		WithResource("team-a", "pod", "nginx-abc123").
		WithDecision(false).
		CompleteSuccess()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range ti.LogAttrs() {
		attrMap[attr.Key] = attr
	}

	requiredKeys := []string{"tool", "verb", "namespace_class", "duration", "success", "decision"}
	for _, key := range requiredKeys {
		if _, ok := attrMap[key]; !ok {
			t.Errorf("Missing required attribute: %s", key)
		}
	}

	// Cardinality-controlled values only.
	if verb := attrMap["verb"].Value.String(); verb != VerbOther {
		t.Errorf("verb = %q, want %q", verb, VerbOther)
	}
	if nsClass := attrMap["namespace_class"].Value.String(); nsClass != "user" {
		t.Errorf("namespace_class = %q, want %q", nsClass, "user")
	}
	if _, ok := attrMap["resource_name"]; ok {
		t.Error("LogAttrs must not carry exact resource names")
	}
}

func TestToolInvocation_LogAuditAttrs(t *testing.T) {
	ti := NewToolInvocation("kubectl_parse").
		WithVerb("delete", true).
		WithResource("production", "pod", "nginx-abc123").
		WithDecision(true).
		CompleteSuccess()
	ti.TraceID = "abc123def456"
	ti.SpanID = "span789"

	attrMap := make(map[string]slog.Attr)
	for _, attr := range ti.LogAuditAttrs() {
		attrMap[attr.Key] = attr
	}

	// Full values are present, not cardinality-controlled.
	if name := attrMap["resource_name"].Value.String(); name != "nginx-abc123" {
		t.Errorf("resource_name = %q, want %q", name, "nginx-abc123")
	}
	if ns := attrMap["namespace"].Value.String(); ns != "production" {
		t.Errorf("namespace = %q, want %q", ns, "production")
	}
	if traceID := attrMap["trace_id"].Value.String(); traceID != "abc123def456" {
		t.Errorf("trace_id = %q, want %q", traceID, "abc123def456")
	}
	if spanID := attrMap["span_id"].Value.String(); spanID != "span789" {
		t.Errorf("span_id = %q, want %q", spanID, "span789")
	}
}

func TestToolInvocation_MethodChaining(t *testing.T) {
	ti := NewToolInvocation("kubectl_parse").
		WithVerb("get", true).
		WithResource("default", "deployment", "").
		CompleteSuccess()

	if ti.Tool != "kubectl_parse" {
		t.Errorf("Tool = %q, want %q", ti.Tool, "kubectl_parse")
	}
	if ti.Verb != "get" {
		t.Errorf("Verb = %q, want %q", ti.Verb, "get")
	}
	if !ti.Success {
		t.Error("Success should be true")
	}
}

func TestAuditLogger_New(t *testing.T) {
	al := NewAuditLogger(nil)
	if al.logger == nil {
		t.Error("logger should not be nil when created with nil")
	}

	logger := slog.Default()
	al = NewAuditLogger(logger)
	if al.logger != logger {
		t.Error("logger should be the provided logger")
	}
}

func TestTraceIDFromContext_NoSpan(t *testing.T) {
	ctx := context.Background()
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		t.Errorf("TraceIDFromContext with no span = %q, want empty string", traceID)
	}
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ctx := context.Background()
	ti := NewToolInvocation("test").WithSpanContext(ctx)

	if ti.TraceID != "" {
		t.Errorf("TraceID = %q, want empty string", ti.TraceID)
	}
	if ti.SpanID != "" {
		t.Errorf("SpanID = %q, want empty string", ti.SpanID)
	}
}

func TestToolInvocation_Complete_NilError(t *testing.T) {
	ti := NewToolInvocation("test")
	ti.Complete(true, nil)

	if ti.Error != "" {
		t.Errorf("Error = %q, want empty string", ti.Error)
	}
}
