package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-kubectl-guard/internal/instrumentation"
	"github.com/giantswarm/mcp-kubectl-guard/internal/server"
)

func newTestServerContext(t *testing.T, opts ...server.Option) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestWrapWithAuditLogging_NoProviderCallsHandler(t *testing.T) {
	sc := newTestServerContext(t)

	called := false
	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	}

	wrapped := WrapWithAuditLogging("test_tool", handler, sc)
	result, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, result.IsError)
}

func TestWrapWithAuditLogging_WithProvider(t *testing.T) {
	cfg := instrumentation.DefaultConfig()
	cfg.Enabled = false
	provider, err := instrumentation.NewProvider(context.Background(), cfg)
	require.NoError(t, err)

	sc := newTestServerContext(t, server.WithInstrumentationProvider(provider))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{
		"command": "kubectl get pods -n default",
	}

	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	wrapped := WrapWithAuditLogging("kubectl_parse", handler, sc)
	result, err := wrapped(context.Background(), request)
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestWrapWithAuditLogging_HandlerErrorPropagates(t *testing.T) {
	cfg := instrumentation.DefaultConfig()
	cfg.Enabled = false
	provider, err := instrumentation.NewProvider(context.Background(), cfg)
	require.NoError(t, err)

	sc := newTestServerContext(t, server.WithInstrumentationProvider(provider))

	wantErr := errors.New("handler failed")
	handler := func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
		return nil, wantErr
	}

	wrapped := WrapWithAuditLogging("kubectl_parse", handler, sc)
	_, err = wrapped(context.Background(), mcp.CallToolRequest{})
	assert.ErrorIs(t, err, wantErr)
}

func TestExtractAuditInfoFromArgs(t *testing.T) {
	sc := newTestServerContext(t)

	invocation := instrumentation.NewToolInvocation("kubectl_parse")
	extractAuditInfoFromArgs(invocation, map[string]interface{}{
		"command": "kubectl get pod web-1 -n prod",
	}, sc)

	assert.Equal(t, "get", invocation.Verb)
	assert.True(t, invocation.VerbKnown)
	assert.Equal(t, "prod", invocation.Namespace)
	assert.Equal(t, "pod", invocation.ResourceType)
	assert.Equal(t, "web-1", invocation.ResourceName)
}

func TestExtractAuditInfoFromArgs_UnparseableCommand(t *testing.T) {
	sc := newTestServerContext(t)

	invocation := instrumentation.NewToolInvocation("kubectl_parse")
	extractAuditInfoFromArgs(invocation, map[string]interface{}{
		"command": "not-kubectl get pods",
	}, sc)

	assert.Empty(t, invocation.Verb)

	// Missing command argument is also fine.
	extractAuditInfoFromArgs(invocation, map[string]interface{}{}, sc)
	assert.Empty(t, invocation.Verb)
}
