// Package middleware provides HTTP middleware shared by the SSE and
// streamable HTTP transports: request metrics with cardinality-safe path
// normalization, and standard security headers.
package middleware
