package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-kubectl-guard/internal/instrumentation"
	"github.com/giantswarm/mcp-kubectl-guard/internal/server"
	"github.com/giantswarm/mcp-kubectl-guard/internal/tools/kubectl"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// envValueTrue is the string value used to enable boolean environment variables.
const envValueTrue = "true"

// newServeCmd creates the Cobra command for starting the MCP server.
func newServeCmd() *cobra.Command {
	var (
		strictVerbs        bool
		resourceAliases    []string
		nonDestructiveMode bool
		allowedVerbs       []string
		restrictedNS       []string
		debugMode          bool

		// Transport options
		transport       string
		httpAddr        string
		sseEndpoint     string
		messageEndpoint string
		httpEndpoint    string

		// Metrics options
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP kubectl guard server",
		Long: `Start the MCP kubectl guard server. The server exposes tools that parse
kubectl command strings into a structured interpretation and evaluate them
against the guard policy. Commands are never executed.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - sse: Server-Sent Events over HTTP
  - streamable-http: Streamable HTTP transport

Policy configuration:
  Non-destructive mode (default) denies mutating commands unless the verb is
  explicitly allowed or the command carries --dry-run. Mutations in restricted
  namespaces are always denied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := ServeConfig{
				Transport:            transport,
				HTTPAddr:             httpAddr,
				SSEEndpoint:          sseEndpoint,
				MessageEndpoint:      messageEndpoint,
				HTTPEndpoint:         httpEndpoint,
				StrictVerbs:          strictVerbs,
				ExtraAliases:         resourceAliases,
				NonDestructiveMode:   nonDestructiveMode,
				AllowedVerbs:         allowedVerbs,
				RestrictedNamespaces: restrictedNS,
				DebugMode:            debugMode,
				Metrics: MetricsServeConfig{
					Enabled: metricsEnabled,
					Addr:    metricsAddr,
				},
			}
			loadMetricsConfig(&config.Metrics)
			return runServe(config)
		},
	}

	// Parser flags
	cmd.Flags().BoolVar(&strictVerbs, "strict-verbs", false, "Treat unrecognized verbs as hard errors instead of soft-invalid records")
	cmd.Flags().StringArrayVar(&resourceAliases, "resource-alias", nil, "Additional resource alias as alias=canonical (repeatable, e.g. --resource-alias vs=virtualservice)")

	// Policy flags
	cmd.Flags().BoolVar(&nonDestructiveMode, "non-destructive", true, "Enable non-destructive mode (default: true)")
	cmd.Flags().StringArrayVar(&allowedVerbs, "allowed-verb", nil, "Mutating verb exempt from non-destructive mode (repeatable)")
	cmd.Flags().StringArrayVar(&restrictedNS, "restricted-namespace", []string{"kube-system", "kube-public"}, "Namespace where mutations are always denied (repeatable)")

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")

	// Transport flags
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "Transport type: stdio, sse, or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for sse and streamable-http transports)")
	cmd.Flags().StringVar(&sseEndpoint, "sse-endpoint", "/sse", "SSE endpoint path (for sse transport)")
	cmd.Flags().StringVar(&messageEndpoint, "message-endpoint", "/message", "Message endpoint path (for sse transport)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http transport)")

	// Metrics flags
	cmd.Flags().BoolVar(&metricsEnabled, "metrics", false, "Serve Prometheus metrics on a separate listener (can also be set via METRICS_SERVER_ENABLED env var)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Metrics server address (default :9090, can also be set via METRICS_SERVER_ADDR env var)")

	return cmd
}

// runServe contains the main server logic with support for multiple transports.
func runServe(config ServeConfig) error {
	if err := validateServeConfig(config); err != nil {
		return err
	}

	aliases, err := parseAliasFlags(config.ExtraAliases)
	if err != nil {
		return err
	}

	// Setup graceful shutdown - listen for both SIGINT and SIGTERM
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize OpenTelemetry instrumentation provider
	instrumentationConfig := instrumentation.DefaultConfig()
	instrumentationConfig.ServiceVersion = rootCmd.Version
	instrumentationProvider, err := instrumentation.NewProvider(shutdownCtx, instrumentationConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if shutdownErr := instrumentationProvider.Shutdown(context.Background()); shutdownErr != nil {
			if config.Transport != transportStdio {
				log.Printf("Error during instrumentation shutdown: %v", shutdownErr)
			}
		}
	}()

	if instrumentationProvider.Enabled() && config.Transport != transportStdio {
		log.Printf("OpenTelemetry instrumentation enabled (metrics: %s, tracing: %s)",
			instrumentationConfig.MetricsExporter, instrumentationConfig.TracingExporter)
	}

	serverConfig := server.NewDefaultConfig()
	serverConfig.Version = rootCmd.Version
	serverConfig.StrictVerbs = config.StrictVerbs
	serverConfig.ExtraAliases = aliases
	serverConfig.NonDestructiveMode = config.NonDestructiveMode
	serverConfig.AllowedVerbs = config.AllowedVerbs
	serverConfig.RestrictedNamespaces = config.RestrictedNamespaces
	if config.DebugMode {
		serverConfig.LogLevel = "debug"
	}

	logger := newServeLogger(config.DebugMode, serverConfig.LogFormat)
	instrumentationProvider.SetAuditLogger(instrumentation.NewAuditLogger(logger.Logger()))

	serverContext, err := server.NewServerContext(shutdownCtx,
		server.WithConfig(serverConfig),
		server.WithLogger(logger),
		server.WithInstrumentationProvider(instrumentationProvider),
	)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			// Only log shutdown errors for non-stdio transports to avoid output interference
			if config.Transport != transportStdio {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("mcp-kubectl-guard", rootCmd.Version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := kubectl.RegisterKubectlTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register kubectl tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case transportStdio:
		// Don't print startup message for stdio mode as it interferes with MCP communication
		return runStdioServer(mcpSrv, shutdownCtx)
	case transportSSE:
		fmt.Printf("Starting MCP kubectl guard server with %s transport...\n", config.Transport)
		return runSSEServer(mcpSrv, config.HTTPAddr, config.SSEEndpoint, config.MessageEndpoint, shutdownCtx, config.DebugMode)
	case transportStreamableHTTP:
		fmt.Printf("Starting MCP kubectl guard server with %s transport...\n", config.Transport)
		return runStreamableHTTPServer(mcpSrv, config.HTTPAddr, config.HTTPEndpoint, shutdownCtx, config.DebugMode, instrumentationProvider, serverContext, config.Metrics)
	default:
		return fmt.Errorf("unsupported transport: %s", config.Transport)
	}
}
