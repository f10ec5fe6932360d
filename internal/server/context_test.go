// Package server provides tests for ServerContext functionality.
package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-kubectl-guard/internal/parser"
	"github.com/giantswarm/mcp-kubectl-guard/internal/policy"
)

func TestNewServerContext_Defaults(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.NotNil(t, sc.Parser())
	assert.NotNil(t, sc.PolicyEngine())
	assert.NotNil(t, sc.Logger())
	assert.NotNil(t, sc.Stats())
	assert.Nil(t, sc.InstrumentationProvider())

	config := sc.Config()
	require.NotNil(t, config)
	assert.Equal(t, "mcp-kubectl-guard", config.ServerName)
	assert.True(t, config.NonDestructiveMode)
	assert.Contains(t, config.RestrictedNamespaces, "kube-system")
}

func TestNewServerContext_BuildsParserFromConfig(t *testing.T) {
	config := NewDefaultConfig()
	config.ExtraAliases = map[string]string{"vs": "virtualservice"}

	sc, err := NewServerContext(context.Background(), WithConfig(config))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	cmd, err := sc.Parser().Parse("kubectl get vs")
	require.NoError(t, err)
	assert.Equal(t, "virtualservice", cmd.ResourceType)
}

func TestNewServerContext_BuildsPolicyEngineFromConfig(t *testing.T) {
	config := NewDefaultConfig()
	config.NonDestructiveMode = true
	config.AllowedVerbs = []string{"scale"}

	sc, err := NewServerContext(context.Background(), WithConfig(config))
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	cmd, err := sc.Parser().Parse("kubectl scale deployment web --replicas=3")
	require.NoError(t, err)

	decision := sc.PolicyEngine().Evaluate(cmd)
	assert.True(t, decision.Allowed)
}

func TestNewServerContext_WithInjectedDependencies(t *testing.T) {
	p, err := parser.New(parser.Config{StrictVerbs: true})
	require.NoError(t, err)
	engine := policy.NewEngine(policy.Rules{NonDestructiveMode: false})

	sc, err := NewServerContext(context.Background(),
		WithParser(p),
		WithPolicyEngine(engine),
	)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Same(t, p, sc.Parser())
	assert.Same(t, engine, sc.PolicyEngine())
}

func TestNewServerContext_InvalidAliasFails(t *testing.T) {
	config := NewDefaultConfig()
	config.ExtraAliases = map[string]string{"": "pod"}

	sc, err := NewServerContext(context.Background(), WithConfig(config))
	assert.Error(t, err)
	assert.Nil(t, sc)
}

func TestNewServerContext_NilOptionArguments(t *testing.T) {
	_, err := NewServerContext(context.Background(), WithParser(nil))
	assert.ErrorIs(t, err, ErrMissingParser)

	_, err = NewServerContext(context.Background(), WithPolicyEngine(nil))
	assert.ErrorIs(t, err, ErrMissingPolicyEngine)

	_, err = NewServerContext(context.Background(), WithLogger(nil))
	assert.ErrorIs(t, err, ErrMissingLogger)

	_, err = NewServerContext(context.Background(), WithConfig(nil))
	assert.ErrorIs(t, err, ErrMissingConfig)
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())

	// Context should be cancelled after shutdown
	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("expected context to be cancelled after shutdown")
	}

	// Second shutdown is a no-op
	require.NoError(t, sc.Shutdown())
}

func TestConfig_Clone(t *testing.T) {
	config := NewDefaultConfig()
	config.ExtraAliases = map[string]string{"vs": "virtualservice"}
	config.AllowedVerbs = []string{"scale"}

	clone := config.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, config, clone)

	clone.ExtraAliases["vs"] = "other"
	clone.AllowedVerbs[0] = "delete"
	clone.RestrictedNamespaces[0] = "changed"

	assert.Equal(t, "virtualservice", config.ExtraAliases["vs"])
	assert.Equal(t, "scale", config.AllowedVerbs[0])
	assert.Equal(t, "kube-system", config.RestrictedNamespaces[0])
}

func TestConfig_CloneNil(t *testing.T) {
	var config *Config
	assert.Nil(t, config.Clone())
}

func TestStats_Counters(t *testing.T) {
	stats := NewStats()

	stats.RecordParsed(true)
	stats.RecordParsed(false)
	stats.RecordDenied()
	stats.RecordParseFailure()

	parsed, invalid, denied, failures := stats.Snapshot()
	assert.Equal(t, int64(2), parsed)
	assert.Equal(t, int64(1), invalid)
	assert.Equal(t, int64(1), denied)
	assert.Equal(t, int64(1), failures)
}

func TestDefaultLogger_With(t *testing.T) {
	logger := NewDefaultLogger()
	child := logger.With("component", "test")

	require.NotNil(t, child)
	// Child carries its own fields; parent stays untouched.
	assert.NotSame(t, Logger(logger), child)
	child.Info("message", "key", "value")
}
