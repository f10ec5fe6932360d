// Package tools provides shared utilities and types for MCP tool implementations.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-kubectl-guard/internal/instrumentation"
	"github.com/giantswarm/mcp-kubectl-guard/internal/server"
)

// WrapWithAuditLogging wraps a tool handler with audit logging.
// The wrapper captures invocation timing, the command string from the request
// arguments, success/error status from the handler result, and the
// OpenTelemetry trace context for correlation.
//
// If no instrumentation provider or audit logger is available, the handler is
// called without audit logging.
func WrapWithAuditLogging(
	toolName string,
	handler ToolHandler,
	sc *server.ServerContext,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		provider := sc.InstrumentationProvider()
		if provider == nil || provider.AuditLogger() == nil {
			return handler(ctx, request, sc)
		}

		auditLogger := provider.AuditLogger()

		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)

		extractAuditInfoFromArgs(invocation, request.GetArguments(), sc)

		result, err := handler(ctx, request, sc)

		// MCP tool errors come back in the result, not as Go errors.
		if err != nil {
			invocation.CompleteWithError(err)
		} else if result != nil && result.IsError {
			invocation.Complete(false, nil)
			if len(result.Content) > 0 {
				if textContent, ok := result.Content[0].(mcp.TextContent); ok {
					invocation.Error = textContent.Text
				}
			}
		} else {
			invocation.CompleteSuccess()
		}

		auditLogger.LogInvocation(ctx, invocation)

		return result, err
	}
}

// extractAuditInfoFromArgs derives verb and resource information for audit
// logging by parsing the command argument. Best effort: a command that fails
// to parse is still logged with the raw tool name and timing.
func extractAuditInfoFromArgs(invocation *instrumentation.ToolInvocation, args map[string]interface{}, sc *server.ServerContext) {
	command, ok := args["command"].(string)
	if !ok || command == "" {
		return
	}

	cmd, err := sc.Parser().Parse(command)
	if err != nil || cmd == nil {
		return
	}

	invocation.WithVerb(cmd.Verb, cmd.VerbKnown)

	resourceName := ""
	if len(cmd.ResourceNames) > 0 {
		resourceName = cmd.ResourceNames[0]
	}
	if cmd.Namespace != "" || cmd.ResourceType != "" || resourceName != "" {
		invocation.WithResource(cmd.Namespace, cmd.ResourceType, resourceName)
	}
}
