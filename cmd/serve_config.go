package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/giantswarm/mcp-kubectl-guard/internal/logging"
	"github.com/giantswarm/mcp-kubectl-guard/internal/server"
)

// serveLogger adapts the logging package's slog adapter to the server.Logger
// interface used by ServerContext.
type serveLogger struct {
	*logging.SlogAdapter
}

func (l *serveLogger) With(args ...interface{}) server.Logger {
	return &serveLogger{logging.NewSlogAdapter(l.Logger().With(args...))}
}

// newServeLogger builds the process logger from the serve configuration.
// Stdio transport logs to stderr so MCP communication on stdout stays clean.
func newServeLogger(debugMode bool, format string) *serveLogger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slogger := slog.New(handler)
	slog.SetDefault(slogger)
	return &serveLogger{logging.NewSlogAdapter(slogger)}
}

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// Parser settings
	StrictVerbs bool
	// ExtraAliases are raw "alias=canonical" pairs from the command line,
	// parsed into a map before the parser is built.
	ExtraAliases []string

	// Policy settings
	NonDestructiveMode   bool
	AllowedVerbs         []string
	RestrictedNamespaces []string

	DebugMode bool

	// Metrics server settings
	Metrics MetricsServeConfig
}

// MetricsServeConfig holds configuration for the standalone metrics server.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// loadMetricsConfig fills metrics settings from environment variables when
// the corresponding flags were not set.
func loadMetricsConfig(config *MetricsServeConfig) {
	if !config.Enabled && os.Getenv("METRICS_SERVER_ENABLED") == envValueTrue {
		config.Enabled = true
	}
	if config.Addr == "" {
		config.Addr = os.Getenv("METRICS_SERVER_ADDR")
	}
	if config.Addr == "" {
		config.Addr = ":9090"
	}
}

// parseAliasFlags converts repeated --resource-alias values of the form
// "alias=canonical" into the parser's alias map.
func parseAliasFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	aliases := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		alias, canonical, ok := strings.Cut(pair, "=")
		alias = strings.TrimSpace(alias)
		canonical = strings.TrimSpace(canonical)
		if !ok || alias == "" || canonical == "" {
			return nil, fmt.Errorf("invalid resource alias %q: expected alias=canonical", pair)
		}
		aliases[alias] = canonical
	}
	return aliases, nil
}

// validateServeConfig checks transport and endpoint settings before the
// server starts.
func validateServeConfig(config ServeConfig) error {
	switch config.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport %q (supported: %s, %s, %s)",
			config.Transport, transportStdio, transportSSE, transportStreamableHTTP)
	}

	if config.Transport != transportStdio {
		if config.HTTPAddr == "" {
			return fmt.Errorf("--http-addr is required for %s transport", config.Transport)
		}
	}

	for name, endpoint := range map[string]string{
		"--sse-endpoint":     config.SSEEndpoint,
		"--message-endpoint": config.MessageEndpoint,
		"--http-endpoint":    config.HTTPEndpoint,
	} {
		if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("%s must start with / (got %q)", name, endpoint)
		}
	}

	return nil
}
