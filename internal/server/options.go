package server

import (
	"errors"
	"log"
	"os"

	"github.com/giantswarm/mcp-kubectl-guard/internal/instrumentation"
	"github.com/giantswarm/mcp-kubectl-guard/internal/parser"
	"github.com/giantswarm/mcp-kubectl-guard/internal/policy"
)

// Option is a functional option for configuring ServerContext.
type Option func(*ServerContext) error

// Common errors for option validation.
var (
	ErrMissingParser       = errors.New("parser is required")
	ErrMissingPolicyEngine = errors.New("policy engine is required")
	ErrMissingLogger       = errors.New("logger is required")
	ErrMissingConfig       = errors.New("config is required")
)

// WithParser sets the kubectl command parser. Overrides the parser that
// would otherwise be built from the configuration.
func WithParser(p *parser.Parser) Option {
	return func(sc *ServerContext) error {
		if p == nil {
			return ErrMissingParser
		}
		sc.parser = p
		return nil
	}
}

// WithPolicyEngine sets the guard policy engine.
func WithPolicyEngine(e *policy.Engine) Option {
	return func(sc *ServerContext) error {
		if e == nil {
			return ErrMissingPolicyEngine
		}
		sc.policyEngine = e
		return nil
	}
}

// WithLogger sets the logger implementation.
func WithLogger(logger Logger) Option {
	return func(sc *ServerContext) error {
		if logger == nil {
			return ErrMissingLogger
		}
		sc.logger = logger
		return nil
	}
}

// WithConfig sets the server configuration.
func WithConfig(config *Config) Option {
	return func(sc *ServerContext) error {
		if config == nil {
			return ErrMissingConfig
		}
		sc.config = config
		return nil
	}
}

// WithServerName sets the server name in the configuration.
func WithServerName(name string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ServerName = name
		return nil
	}
}

// WithVersion sets the server version in the configuration.
func WithVersion(version string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.Version = version
		return nil
	}
}

// WithStrictVerbs toggles strict verb handling for the parser built from
// the configuration.
func WithStrictVerbs(strict bool) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.StrictVerbs = strict
		return nil
	}
}

// WithExtraAliases sets additional resource aliases for the parser built
// from the configuration.
func WithExtraAliases(aliases map[string]string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.ExtraAliases = aliases
		return nil
	}
}

// WithNonDestructiveMode toggles non-destructive mode in the policy rules.
func WithNonDestructiveMode(enabled bool) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.NonDestructiveMode = enabled
		return nil
	}
}

// WithAllowedVerbs sets verbs exempt from non-destructive mode.
func WithAllowedVerbs(verbs []string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.AllowedVerbs = verbs
		return nil
	}
}

// WithRestrictedNamespaces sets namespaces where mutations are always denied.
func WithRestrictedNamespaces(namespaces []string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.RestrictedNamespaces = namespaces
		return nil
	}
}

// WithLogLevel sets the log level in the configuration.
func WithLogLevel(level string) Option {
	return func(sc *ServerContext) error {
		if sc.config == nil {
			sc.config = NewDefaultConfig()
		}
		sc.config.LogLevel = level
		return nil
	}
}

// WithInstrumentationProvider sets the OpenTelemetry instrumentation provider.
func WithInstrumentationProvider(provider *instrumentation.Provider) Option {
	return func(sc *ServerContext) error {
		sc.instrumentationProvider = provider
		return nil
	}
}

// DefaultLogger is a simple logger implementation using the standard library.
type DefaultLogger struct {
	logger *log.Logger
	fields []interface{}
}

// NewDefaultLogger creates a new default logger.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Info logs an informational message.
func (l *DefaultLogger) Info(msg string, args ...interface{}) {
	l.logWithLevel("INFO", msg, args...)
}

// Debug logs a debug message.
func (l *DefaultLogger) Debug(msg string, args ...interface{}) {
	l.logWithLevel("DEBUG", msg, args...)
}

// Warn logs a warning message.
func (l *DefaultLogger) Warn(msg string, args ...interface{}) {
	l.logWithLevel("WARN", msg, args...)
}

// Error logs an error message.
func (l *DefaultLogger) Error(msg string, args ...interface{}) {
	l.logWithLevel("ERROR", msg, args...)
}

// With returns a new logger with additional context fields.
func (l *DefaultLogger) With(args ...interface{}) Logger {
	fields := make([]interface{}, 0, len(l.fields)+len(args))
	fields = append(fields, l.fields...)
	fields = append(fields, args...)
	return &DefaultLogger{
		logger: l.logger,
		fields: fields,
	}
}

func (l *DefaultLogger) logWithLevel(level, msg string, args ...interface{}) {
	allArgs := make([]interface{}, 0, len(l.fields)+len(args))
	allArgs = append(allArgs, l.fields...)
	allArgs = append(allArgs, args...)

	if len(allArgs) > 0 {
		l.logger.Printf("[%s] %s %v", level, msg, allArgs)
	} else {
		l.logger.Printf("[%s] %s", level, msg)
	}
}
