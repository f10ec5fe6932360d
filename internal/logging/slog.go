package logging

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation    = "operation"
	KeyTool         = "tool"
	KeyVerb         = "verb"
	KeyNamespace    = "namespace"
	KeyResourceType = "resource_type"
	KeyResourceName = "resource_name"
	KeyDecision     = "decision"
	KeyDuration     = "duration"
	KeyStatus       = "status"
	KeyError        = "error"
	KeyTransport    = "transport"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Decision values for consistent logging.
const (
	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"
)

// sensitiveFlagRegex matches credential-bearing kubectl flags together with
// their values, in both "--flag value" and "--flag=value" form.
var sensitiveFlagRegex = regexp.MustCompile(`(--token|--password|--client-key|--client-certificate|--certificate-authority)[= ]\S+`)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Verb returns a slog attribute for the kubectl verb.
func Verb(verb string) slog.Attr {
	return slog.String(KeyVerb, verb)
}

// Namespace returns a slog attribute for the namespace.
func Namespace(ns string) slog.Attr {
	return slog.String(KeyNamespace, ns)
}

// ResourceType returns a slog attribute for the resource type.
func ResourceType(rt string) slog.Attr {
	return slog.String(KeyResourceType, rt)
}

// ResourceName returns a slog attribute for the resource name.
func ResourceName(name string) slog.Attr {
	return slog.String(KeyResourceName, name)
}

// Decision returns a slog attribute for a policy decision outcome.
func Decision(allowed bool) slog.Attr {
	if allowed {
		return slog.String(KeyDecision, DecisionAllowed)
	}
	return slog.String(KeyDecision, DecisionDenied)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Duration returns a slog attribute for an operation duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content,
// as even partial token prefixes (like JWT headers) can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// SanitizeCommand masks the values of credential-bearing flags in a raw
// kubectl command string before it is logged or audited. The flag names stay
// visible so operators can still see which credentials were supplied.
func SanitizeCommand(raw string) string {
	return sensitiveFlagRegex.ReplaceAllString(raw, "$1=<redacted>")
}

// Command returns a slog attribute with the sanitized raw command string.
func Command(raw string) slog.Attr {
	return slog.String("command", SanitizeCommand(raw))
}
