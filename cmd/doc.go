// Package cmd provides the command-line interface for mcp-kubectl-guard.
//
// This package implements a Cobra-based CLI with multiple subcommands:
//   - serve: Starts the MCP server (default behavior when no subcommand is provided)
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// The CLI maintains backwards compatibility by running the serve command when
// no subcommand is specified.
//
// Command Structure:
//
//	mcp-kubectl-guard [flags]                 # Starts the MCP server (default)
//	mcp-kubectl-guard serve [flags]           # Explicitly starts the MCP server
//	mcp-kubectl-guard version                 # Shows version information
//	mcp-kubectl-guard self-update             # Updates to latest release
//	mcp-kubectl-guard help [command]          # Shows help information
//
// The serve command supports multiple transport options:
//   - stdio: Standard input/output (default) - for command-line integration
//   - sse: Server-Sent Events over HTTP - for web-based clients
//   - streamable-http: Streamable HTTP transport - for HTTP-based integration
//
// Transport Configuration Examples:
//
//	mcp-kubectl-guard serve --transport stdio           # Default STDIO transport
//	mcp-kubectl-guard serve --transport sse --http-addr :8080 --sse-endpoint /sse
//	mcp-kubectl-guard serve --transport streamable-http --http-addr :9000 --http-endpoint /mcp
//
// The serve command also supports flags for controlling the parser
// (--strict-verbs, --resource-alias) and the guard policy
// (--non-destructive, --allowed-verb, --restricted-namespace).
package cmd
