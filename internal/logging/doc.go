// Package logging provides structured logging utilities for the mcp-kubectl-guard application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Credential masking for raw kubectl command strings
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "kubectl_parse")
//	logger.Info("command parsed",
//	    logging.Verb("get"),
//	    logging.ResourceType("pod"),
//	    logging.Namespace("default"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("evaluating command",
//	    logging.Command(rawCommand))
//
// # Security Considerations
//
// Raw kubectl command strings can carry credentials (--token, --client-key).
// SanitizeCommand masks such flag values before the string reaches a log line
// or audit record; token values themselves are never logged directly.
package logging
