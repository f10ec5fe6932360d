package kubectl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/mcp-kubectl-guard/internal/instrumentation"
	"github.com/giantswarm/mcp-kubectl-guard/internal/logging"
	"github.com/giantswarm/mcp-kubectl-guard/internal/parser"
	"github.com/giantswarm/mcp-kubectl-guard/internal/policy"
	"github.com/giantswarm/mcp-kubectl-guard/internal/server"
)

// checkResult is the kubectl_check response payload: the structured command
// plus the policy decision.
type checkResult struct {
	Command  *parser.ParsedCommand `json:"command"`
	Decision policy.Decision       `json:"decision"`
}

// handleParse handles kubectl_parse: parse the command string and return the
// structured record as JSON. Commands that parse but fail validation still
// return the full record with isValid=false; only unclassifiable input
// (not kubectl, bad quoting, strict-mode unknown verb) is a tool error.
func handleParse(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	command, ok := request.GetArguments()["command"].(string)
	if !ok || command == "" {
		return mcp.NewToolResultError("command is required"), nil
	}

	ctx, span := instrumentation.StartToolSpan(ctx, "kubectl_parse")
	defer span.End()

	start := time.Now()
	cmd, err := sc.Parser().Parse(command)
	duration := time.Since(start)

	provider := sc.InstrumentationProvider()

	if err != nil {
		sc.Stats().RecordParseFailure()
		if provider != nil {
			provider.Metrics().RecordParse(ctx, "", false, "", "", instrumentation.StatusError, duration)
		}
		instrumentation.SetSpanError(span, err)
		sc.Logger().Warn("Failed to parse command",
			"command", logging.SanitizeCommand(command),
			logging.KeyError, err.Error(),
		)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse command: %v", err)), nil
	}

	sc.Stats().RecordParsed(cmd.Valid)

	status := instrumentation.StatusSuccess
	if !cmd.Valid {
		status = instrumentation.StatusInvalid
	}
	if provider != nil {
		provider.Metrics().RecordParse(ctx, cmd.Verb, cmd.VerbKnown, cmd.ResourceType, cmd.Namespace, status, duration)
	}

	span.SetAttributes(instrumentation.NewSpanAttributeBuilder().
		WithVerb(cmd.Verb, cmd.VerbKnown).
		WithNamespace(cmd.Namespace).
		WithResource(cmd.ResourceType, firstName(cmd)).
		WithValid(cmd.Valid).
		Build()...)
	instrumentation.SetSpanSuccess(span)

	sc.Logger().Debug("Parsed command",
		logging.KeyVerb, cmd.Verb,
		logging.KeyResourceType, cmd.ResourceType,
		logging.KeyNamespace, cmd.Namespace,
		"valid", cmd.Valid,
	)

	return jsonResult(cmd)
}

// handleCheck handles kubectl_check: parse the command and evaluate it
// against the guard policy. The decision and the parsed record are returned
// together so callers can see both what was understood and why it was
// allowed or denied.
func handleCheck(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	command, ok := request.GetArguments()["command"].(string)
	if !ok || command == "" {
		return mcp.NewToolResultError("command is required"), nil
	}

	ctx, span := instrumentation.StartToolSpan(ctx, "kubectl_check")
	defer span.End()

	start := time.Now()
	cmd, err := sc.Parser().Parse(command)
	duration := time.Since(start)

	provider := sc.InstrumentationProvider()

	if err != nil {
		sc.Stats().RecordParseFailure()
		if provider != nil {
			provider.Metrics().RecordParse(ctx, "", false, "", "", instrumentation.StatusError, duration)
		}
		instrumentation.SetSpanError(span, err)
		sc.Logger().Warn("Failed to parse command",
			"command", logging.SanitizeCommand(command),
			logging.KeyError, err.Error(),
		)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse command: %v", err)), nil
	}

	sc.Stats().RecordParsed(cmd.Valid)

	status := instrumentation.StatusSuccess
	if !cmd.Valid {
		status = instrumentation.StatusInvalid
	}
	if provider != nil {
		provider.Metrics().RecordParse(ctx, cmd.Verb, cmd.VerbKnown, cmd.ResourceType, cmd.Namespace, status, duration)
	}

	decision := sc.PolicyEngine().Evaluate(cmd)

	decisionLabel := instrumentation.DecisionAllowed
	if !decision.Allowed {
		decisionLabel = instrumentation.DecisionDenied
		sc.Stats().RecordDenied()
	}
	if provider != nil {
		provider.Metrics().RecordPolicyDecision(ctx, cmd.Verb, cmd.VerbKnown, decisionLabel)
	}

	span.SetAttributes(instrumentation.NewSpanAttributeBuilder().
		WithVerb(cmd.Verb, cmd.VerbKnown).
		WithNamespace(cmd.Namespace).
		WithResource(cmd.ResourceType, firstName(cmd)).
		WithValid(cmd.Valid).
		WithDecision(decision.Allowed).
		Build()...)
	instrumentation.SetSpanSuccess(span)

	sc.Logger().Info("Policy decision",
		logging.KeyVerb, cmd.Verb,
		logging.KeyNamespace, cmd.Namespace,
		logging.KeyDecision, decisionLabel,
		"reason", decision.Reason,
	)

	return jsonResult(checkResult{Command: cmd, Decision: decision})
}

func firstName(cmd *parser.ParsedCommand) string {
	if len(cmd.ResourceNames) == 0 {
		return ""
	}
	return cmd.ResourceNames[0]
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
