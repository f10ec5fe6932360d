// Package policy provides tests for guard rule evaluation.
package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-kubectl-guard/internal/parser"
)

func parseCommand(t *testing.T, raw string) *parser.ParsedCommand {
	t.Helper()
	p, err := parser.New(parser.Config{})
	require.NoError(t, err)
	cmd, err := p.Parse(raw)
	require.NoError(t, err)
	return cmd
}

func TestEvaluate_ReadOnlyAlwaysAllowed(t *testing.T) {
	e := NewEngine(Rules{
		NonDestructiveMode:   true,
		RestrictedNamespaces: []string{"kube-system"},
	})

	for _, raw := range []string{
		"kubectl get pods",
		"kubectl describe deployment my-app",
		"kubectl logs my-pod --tail 50",
		"kubectl get pods -n kube-system",
	} {
		t.Run(raw, func(t *testing.T) {
			d := e.Evaluate(parseCommand(t, raw))
			assert.True(t, d.Allowed)
			assert.Empty(t, d.Reason)
		})
	}
}

func TestEvaluate_NonDestructiveModeBlocksMutations(t *testing.T) {
	e := NewEngine(Rules{NonDestructiveMode: true})

	mutating := []string{
		"kubectl delete pod my-pod",
		"kubectl apply -f manifest.yaml",
		"kubectl scale deployment my-app --replicas 3",
		"kubectl exec mypod -- sh",
	}
	for _, raw := range mutating {
		t.Run(raw, func(t *testing.T) {
			d := e.Evaluate(parseCommand(t, raw))
			assert.False(t, d.Allowed)
			assert.Contains(t, d.Reason, "non-destructive mode")
		})
	}
}

func TestEvaluate_ReasonIsTitleCased(t *testing.T) {
	e := NewEngine(Rules{NonDestructiveMode: true})

	d := e.Evaluate(parseCommand(t, "kubectl delete pod my-pod"))
	assert.Contains(t, d.Reason, "Delete operations")
}

func TestEvaluate_DryRunBypassesNonDestructiveMode(t *testing.T) {
	e := NewEngine(Rules{NonDestructiveMode: true})

	d := e.Evaluate(parseCommand(t, "kubectl delete pod my-pod --dry-run"))
	assert.True(t, d.Allowed)
}

func TestEvaluate_AllowedVerbsExemption(t *testing.T) {
	e := NewEngine(Rules{
		NonDestructiveMode: true,
		AllowedVerbs:       []string{"scale"},
	})

	d := e.Evaluate(parseCommand(t, "kubectl scale deployment my-app --replicas 2"))
	assert.True(t, d.Allowed)

	d = e.Evaluate(parseCommand(t, "kubectl delete deployment my-app"))
	assert.False(t, d.Allowed)
}

func TestEvaluate_RestrictedNamespaces(t *testing.T) {
	e := NewEngine(Rules{
		RestrictedNamespaces: []string{"kube-system", "flux-system"},
	})

	d := e.Evaluate(parseCommand(t, "kubectl delete pod my-pod -n kube-system"))
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "restricted namespace")
	assert.Contains(t, d.Reason, "kube-system")

	d = e.Evaluate(parseCommand(t, "kubectl delete pod my-pod -n team-a"))
	assert.True(t, d.Allowed)
}

func TestEvaluate_RestrictedNamespaceWinsOverAllowedVerb(t *testing.T) {
	e := NewEngine(Rules{
		NonDestructiveMode:   true,
		AllowedVerbs:         []string{"delete"},
		RestrictedNamespaces: []string{"kube-system"},
	})

	d := e.Evaluate(parseCommand(t, "kubectl delete pod my-pod -n kube-system"))
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "restricted namespace")
}

func TestEvaluate_InvalidCommandDenied(t *testing.T) {
	e := NewEngine(Rules{})

	d := e.Evaluate(parseCommand(t, "kubectl delete"))
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "could not be fully interpreted")
}

func TestEvaluate_NilCommandDenied(t *testing.T) {
	e := NewEngine(Rules{})

	d := e.Evaluate(nil)
	assert.False(t, d.Allowed)
}

func TestIsMutating(t *testing.T) {
	assert.True(t, IsMutating("delete"))
	assert.True(t, IsMutating("exec"))
	assert.True(t, IsMutating("cordon"))
	assert.False(t, IsMutating("get"))
	assert.False(t, IsMutating("logs"))
	assert.False(t, IsMutating(""))
}
