package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{name: "Verb", attr: Verb("delete"), wantKey: KeyVerb, wantVal: "delete"},
		{name: "Namespace", attr: Namespace("prod"), wantKey: KeyNamespace, wantVal: "prod"},
		{name: "ResourceType", attr: ResourceType("pod"), wantKey: KeyResourceType, wantVal: "pod"},
		{name: "ResourceName", attr: ResourceName("my-pod"), wantKey: KeyResourceName, wantVal: "my-pod"},
		{name: "Status", attr: Status(StatusSuccess), wantKey: KeyStatus, wantVal: "success"},
		{name: "Operation", attr: Operation("parse"), wantKey: KeyOperation, wantVal: "parse"},
		{name: "Decision allowed", attr: Decision(true), wantKey: KeyDecision, wantVal: DecisionAllowed},
		{name: "Decision denied", attr: Decision(false), wantKey: KeyDecision, wantVal: DecisionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, tt.attr.Key)
			assert.Equal(t, tt.wantVal, tt.attr.Value.String())
		})
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	attr = Err(nil)
	assert.Equal(t, "", attr.Value.String())
}

func TestWithToolAndOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WithTool(logger, "kubectl_parse").Info("hello")
	assert.Contains(t, buf.String(), `"tool":"kubectl_parse"`)

	buf.Reset()
	WithOperation(logger, "evaluate").Info("hello")
	assert.Contains(t, buf.String(), `"operation":"evaluate"`)
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))
	assert.Equal(t, "[token:6 chars]", SanitizeToken("secret"))
	assert.NotContains(t, SanitizeToken("secret"), "secret")
}

func TestSanitizeCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "token with separate value",
			input: "kubectl get pods --token abc123",
			want:  "kubectl get pods --token=<redacted>",
		},
		{
			name:  "token with attached value",
			input: "kubectl get pods --token=abc123 -n prod",
			want:  "kubectl get pods --token=<redacted> -n prod",
		},
		{
			name:  "client key path",
			input: "kubectl apply -f x.yaml --client-key /home/me/key.pem",
			want:  "kubectl apply -f x.yaml --client-key=<redacted>",
		},
		{
			name:  "no sensitive flags untouched",
			input: "kubectl get pods -n prod -l app=web",
			want:  "kubectl get pods -n prod -l app=web",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeCommand(tt.input))
		})
	}
}

func TestCommandAttr(t *testing.T) {
	attr := Command("kubectl delete pod x --token hunter2")
	assert.Equal(t, "command", attr.Key)
	assert.NotContains(t, attr.Value.String(), "hunter2")
}
