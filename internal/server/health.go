package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker provides health check endpoints for the server.
type HealthChecker struct {
	serverContext *ServerContext
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	return &HealthChecker{
		serverContext: sc,
	}
}

// HealthStatus represents the health status response.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// DetailedHealthStatus includes policy and activity details.
type DetailedHealthStatus struct {
	HealthStatus
	Policy PolicyStatus `json:"policy"`
	Stats  StatsStatus  `json:"stats"`
}

// PolicyStatus summarizes the active guard rules.
type PolicyStatus struct {
	NonDestructiveMode   bool     `json:"nonDestructiveMode"`
	AllowedVerbs         []string `json:"allowedVerbs,omitempty"`
	RestrictedNamespaces []string `json:"restrictedNamespaces,omitempty"`
}

// StatsStatus reports operational counters.
type StatsStatus struct {
	CommandsParsed  int64 `json:"commandsParsed"`
	CommandsInvalid int64 `json:"commandsInvalid"`
	CommandsDenied  int64 `json:"commandsDenied"`
	ParseFailures   int64 `json:"parseFailures"`
}

// LivenessHandler returns a handler for liveness probes.
// Returns 200 if the server process is running.
func (hc *HealthChecker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := HealthStatus{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
		}
		if hc.serverContext != nil && hc.serverContext.Config() != nil {
			status.Version = hc.serverContext.Config().Version
		}
		writeJSON(w, http.StatusOK, status)
	}
}

// ReadinessHandler returns a handler for readiness probes.
// Returns 200 only when the parser and policy engine are available and the
// server has not been shut down.
func (hc *HealthChecker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]string)
		healthy := true

		if hc.serverContext == nil {
			checks["server"] = "server context not initialized"
			healthy = false
		} else {
			if hc.serverContext.IsShutdown() {
				checks["server"] = "server is shutting down"
				healthy = false
			} else {
				checks["server"] = "ok"
			}

			if hc.serverContext.Parser() == nil {
				checks["parser"] = "parser not initialized"
				healthy = false
			} else {
				checks["parser"] = "ok"
			}

			if hc.serverContext.PolicyEngine() == nil {
				checks["policy"] = "policy engine not initialized"
				healthy = false
			} else {
				checks["policy"] = "ok"
			}
		}

		status := HealthStatus{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		}

		code := http.StatusOK
		if !healthy {
			status.Status = "unavailable"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	}
}

// DetailedHealthHandler returns a handler exposing the active policy rules
// and operational counters. Intended for operators, not probes.
func (hc *HealthChecker) DetailedHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hc.serverContext == nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthStatus{
				Status:    "unavailable",
				Timestamp: time.Now().UTC(),
			})
			return
		}

		checks := map[string]string{
			"server": "ok",
		}
		if hc.serverContext.IsShutdown() {
			checks["server"] = "server is shutting down"
		}
		if provider := hc.serverContext.InstrumentationProvider(); provider != nil && provider.Enabled() {
			checks["instrumentation"] = "enabled"
		} else {
			checks["instrumentation"] = "disabled"
		}

		status := DetailedHealthStatus{
			HealthStatus: HealthStatus{
				Status:    "ok",
				Timestamp: time.Now().UTC(),
				Checks:    checks,
			},
		}

		if config := hc.serverContext.Config(); config != nil {
			status.Version = config.Version
			status.Policy = PolicyStatus{
				NonDestructiveMode:   config.NonDestructiveMode,
				AllowedVerbs:         config.AllowedVerbs,
				RestrictedNamespaces: config.RestrictedNamespaces,
			}
		}

		if stats := hc.serverContext.Stats(); stats != nil {
			parsed, invalid, denied, failures := stats.Snapshot()
			status.Stats = StatsStatus{
				CommandsParsed:  parsed,
				CommandsInvalid: invalid,
				CommandsDenied:  denied,
				ParseFailures:   failures,
			}
		}

		writeJSON(w, http.StatusOK, status)
	}
}

// RegisterHealthEndpoints registers the health check endpoints on the given mux.
func (hc *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", hc.LivenessHandler())
	mux.HandleFunc("/readyz", hc.ReadinessHandler())
	mux.HandleFunc("/healthz/detailed", hc.DetailedHealthHandler())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
