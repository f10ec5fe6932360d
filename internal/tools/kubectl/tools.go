// Package kubectl implements the MCP tools that interpret kubectl command
// strings: kubectl_parse returns the structured interpretation of a command,
// and kubectl_check additionally evaluates it against the guard policy.
package kubectl

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-kubectl-guard/internal/server"
	"github.com/giantswarm/mcp-kubectl-guard/internal/tools"
)

// RegisterKubectlTools registers the kubectl guard tools with the MCP server.
func RegisterKubectlTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	parseTool := mcp.NewTool("kubectl_parse",
		mcp.WithDescription("Parse a kubectl command string into its structured interpretation: verb, resource type, resource names, namespace, flags, files, and validity. The command is never executed."),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The full kubectl command string, e.g. 'kubectl get pods -n kube-system'"),
		),
	)

	s.AddTool(parseTool, tools.WrapWithAuditLogging("kubectl_parse", handleParse, sc))

	checkTool := mcp.NewTool("kubectl_check",
		mcp.WithDescription("Parse a kubectl command string and evaluate it against the guard policy. Returns the structured interpretation together with an allow/deny decision and the reason."),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The full kubectl command string to evaluate"),
		),
	)

	s.AddTool(checkTool, tools.WrapWithAuditLogging("kubectl_check", handleCheck, sc))

	return nil
}

// compile-time check that handlers satisfy the shared handler signature
var (
	_ tools.ToolHandler = handleParse
	_ tools.ToolHandler = handleCheck
)
