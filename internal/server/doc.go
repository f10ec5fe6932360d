// Package server provides the dependency injection and lifecycle layer for
// the mcp-kubectl-guard MCP server.
//
// The central type is ServerContext, which owns the kubectl parser, the
// policy engine, the logger, the configuration, and the optional
// instrumentation provider. It is constructed with functional options:
//
//	sc, err := server.NewServerContext(ctx,
//		server.WithConfig(cfg),
//		server.WithLogger(logger),
//		server.WithInstrumentationProvider(provider),
//	)
//
// When no parser or policy engine is injected, ServerContext builds both
// from the configuration, so most callers only supply a Config.
//
// The package also provides HTTP plumbing shared by the network transports:
// HealthChecker serves Kubernetes-style liveness and readiness probes plus a
// detailed operator endpoint, and MetricsServer serves the Prometheus
// /metrics endpoint on a separate listener so it can stay off the public
// address.
package server
