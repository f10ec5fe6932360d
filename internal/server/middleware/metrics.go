package middleware

import (
	"net/http"
	"regexp"
	"time"

	"github.com/giantswarm/mcp-kubectl-guard/internal/instrumentation"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code before writing the header.
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter to support http.Flusher etc.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// Flush implements http.Flusher for streaming responses.
func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// HTTPMetrics creates middleware that records request count and duration per
// method/path/status. Paths are normalized before recording so session IDs
// and other dynamic segments cannot blow up metric cardinality.
//
// A nil or disabled provider makes the middleware a pass-through.
func HTTPMetrics(provider *instrumentation.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if provider == nil || !provider.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := newStatusRecorder(w)

			next.ServeHTTP(wrapped, r)

			provider.Metrics().RecordHTTPRequest(
				r.Context(),
				r.Method,
				normalizePath(r.URL.Path),
				wrapped.statusCode,
				time.Since(start),
			)
		})
	}
}

var (
	uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

	// MCP streamable HTTP session endpoints (e.g. /mcp/abc123xyz)
	sessionIDPattern = regexp.MustCompile(`^/mcp/[a-zA-Z0-9_-]{8,64}$`)

	numericIDPattern = regexp.MustCompile(`/\d+(/|$)`)
)

// normalizePath replaces dynamic path segments with placeholders to keep
// metric cardinality bounded.
func normalizePath(path string) string {
	if sessionIDPattern.MatchString(path) {
		return "/mcp/:session"
	}

	path = uuidPattern.ReplaceAllString(path, ":uuid")
	path = numericIDPattern.ReplaceAllString(path, "/:id$1")

	return path
}
