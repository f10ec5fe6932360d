package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/giantswarm/mcp-kubectl-guard/internal/instrumentation"
	"github.com/giantswarm/mcp-kubectl-guard/internal/parser"
	"github.com/giantswarm/mcp-kubectl-guard/internal/policy"
)

// ServerContext encapsulates all dependencies needed by the MCP server
// and provides a clean abstraction for dependency injection and lifecycle management.
type ServerContext struct {
	// Core dependencies
	parser       *parser.Parser
	policyEngine *policy.Engine
	logger       Logger
	config       *Config

	// Observability
	instrumentationProvider *instrumentation.Provider
	stats                   *Stats

	// Context management
	ctx    context.Context
	cancel context.CancelFunc

	// Lifecycle management
	mu       sync.RWMutex
	shutdown bool
}

// Stats tracks operational counters for monitoring. These are always on and
// independent of the OpenTelemetry provider, so health endpoints can report
// activity even when instrumentation is disabled.
type Stats struct {
	commandsParsed  int64
	commandsInvalid int64
	commandsDenied  int64
	parseFailures   int64

	mu sync.RWMutex
}

// NewStats creates a new Stats instance.
func NewStats() *Stats {
	return &Stats{}
}

// RecordParsed counts one successfully parsed command; invalid marks
// commands that parsed but failed structural validation.
func (s *Stats) RecordParsed(valid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commandsParsed++
	if !valid {
		s.commandsInvalid++
	}
}

// RecordParseFailure counts a hard parse failure (not kubectl, bad quoting).
func (s *Stats) RecordParseFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parseFailures++
}

// RecordDenied counts one policy denial.
func (s *Stats) RecordDenied() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commandsDenied++
}

// Snapshot returns a consistent copy of the current counters.
func (s *Stats) Snapshot() (parsed, invalid, denied, failures int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commandsParsed, s.commandsInvalid, s.commandsDenied, s.parseFailures
}

// NewServerContext creates a new ServerContext with default values.
// Use the provided functional options to customize the context.
//
// When no parser or policy engine is supplied, both are built from the
// configuration, so callers normally only pass WithConfig.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    serverCtx,
		cancel: cancel,
		config: NewDefaultConfig(),
		logger: NewDefaultLogger(),
		stats:  NewStats(),
	}

	for _, opt := range opts {
		if err := opt(sc); err != nil {
			cancel()
			return nil, err
		}
	}

	if sc.parser == nil {
		p, err := parser.New(parser.Config{
			StrictVerbs:  sc.config.StrictVerbs,
			ExtraAliases: sc.config.ExtraAliases,
		})
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to build parser from config: %w", err)
		}
		sc.parser = p
	}

	if sc.policyEngine == nil {
		sc.policyEngine = policy.NewEngine(policy.Rules{
			NonDestructiveMode:   sc.config.NonDestructiveMode,
			AllowedVerbs:         sc.config.AllowedVerbs,
			RestrictedNamespaces: sc.config.RestrictedNamespaces,
		})
	}

	if err := sc.validate(); err != nil {
		cancel()
		return nil, err
	}

	return sc, nil
}

// Context returns the server context for cancellation and deadlines.
func (sc *ServerContext) Context() context.Context {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ctx
}

// Parser returns the kubectl command parser.
func (sc *ServerContext) Parser() *parser.Parser {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.parser
}

// PolicyEngine returns the guard policy engine.
func (sc *ServerContext) PolicyEngine() *policy.Engine {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.policyEngine
}

// Logger returns the logger interface.
func (sc *ServerContext) Logger() Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Stats returns the operational counters.
func (sc *ServerContext) Stats() *Stats {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.stats
}

// InstrumentationProvider returns the OpenTelemetry provider, or nil when
// none was configured.
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.instrumentationProvider
}

// Shutdown gracefully shuts down the server context.
// This cancels the context and releases any resources.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.logger.Info("Shutting down server context")

	if sc.cancel != nil {
		sc.cancel()
	}
	sc.shutdown = true

	sc.logger.Info("Server context shutdown complete")
	return nil
}

// IsShutdown returns true if the server context has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// validate ensures all required dependencies are set.
func (sc *ServerContext) validate() error {
	if sc.parser == nil {
		return ErrMissingParser
	}
	if sc.policyEngine == nil {
		return ErrMissingPolicyEngine
	}
	if sc.logger == nil {
		return ErrMissingLogger
	}
	if sc.config == nil {
		return ErrMissingConfig
	}
	return nil
}

// Logger defines the interface for logging operations.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, args ...interface{})

	// Debug logs a debug message.
	Debug(msg string, args ...interface{})

	// Warn logs a warning message.
	Warn(msg string, args ...interface{})

	// Error logs an error message.
	Error(msg string, args ...interface{})

	// With returns a new logger with additional context fields.
	With(args ...interface{}) Logger
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	ServerName string `json:"serverName"`
	Version    string `json:"version"`

	// Parser settings
	StrictVerbs  bool              `json:"strictVerbs"`
	ExtraAliases map[string]string `json:"extraAliases,omitempty"`

	// Policy settings
	NonDestructiveMode   bool     `json:"nonDestructiveMode"`
	AllowedVerbs         []string `json:"allowedVerbs"`
	RestrictedNamespaces []string `json:"restrictedNamespaces"`

	// Logging settings
	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
}

// NewDefaultConfig creates a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ServerName:           "mcp-kubectl-guard",
		Version:              "0.1.0",
		StrictVerbs:          false,
		NonDestructiveMode:   true,
		AllowedVerbs:         []string{},
		RestrictedNamespaces: []string{"kube-system", "kube-public"},
		LogLevel:             "info",
		LogFormat:            "json",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.ExtraAliases != nil {
		clone.ExtraAliases = make(map[string]string, len(c.ExtraAliases))
		for k, v := range c.ExtraAliases {
			clone.ExtraAliases[k] = v
		}
	}

	if c.AllowedVerbs != nil {
		clone.AllowedVerbs = make([]string, len(c.AllowedVerbs))
		copy(clone.AllowedVerbs, c.AllowedVerbs)
	}

	if c.RestrictedNamespaces != nil {
		clone.RestrictedNamespaces = make([]string, len(c.RestrictedNamespaces))
		copy(clone.RestrictedNamespaces, c.RestrictedNamespaces)
	}

	return &clone
}
