package mcp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/logger"
	"github.com/custodia-labs/arke-mcp/internal/metrics"
)

// invocation tracks one tool call for logging and metrics.
type invocation struct {
	id    string
	tool  string
	start time.Time
	log   *zap.SugaredLogger
}

func startInvocation(tool string, keysAndValues ...any) *invocation {
	id := uuid.NewString()
	inv := &invocation{
		id:    id,
		tool:  tool,
		start: time.Now(),
		log:   logger.With(append([]any{"request_id", id, "tool", tool}, keysAndValues...)...),
	}
	inv.log.Debug("tool invoked")
	return inv
}

// finish records the outcome and converts it into a tool result. Errors
// never cross the protocol boundary; they become an IsError payload.
func (inv *invocation) finish(text string, err error) *mcp.CallToolResult {
	elapsed := time.Since(inv.start).Round(time.Millisecond)
	metrics.ToolInvocations.WithLabelValues(inv.tool, metrics.OutcomeOf(err)).Inc()

	if err != nil {
		inv.log.Warnw("tool failed", "elapsed", elapsed, "error", err)
		return errorResult(err, inv.id)
	}
	inv.log.Infow("tool completed", "elapsed", elapsed, "chars", len(text))
	return textResult(text)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult renders err as a caller-facing message with a remediation hint.
func errorResult(err error, requestID string) *mcp.CallToolResult {
	message, hint := describeError(err)

	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(message)
	b.WriteString("\n")
	if hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(hint)
		b.WriteString("\n")
	}
	if requestID != "" {
		fmt.Fprintf(&b, "\nRequest ID: %s\n", requestID)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: b.String()}},
		IsError: true,
	}
}

func describeError(err error) (message, hint string) {
	var (
		validation *domain.ValidationError
		manifest   *domain.ManifestFetchError
		gateway    *domain.GatewayError
	)

	switch {
	case errors.As(err, &validation):
		hint = validation.Hint
		if hint == "" {
			hint = "Check the tool's parameter description and try again."
		}
		return "invalid input: " + validation.Error(), hint

	case errors.As(err, &manifest):
		if domain.IsNotFound(err) {
			return fmt.Sprintf("entity %s was not found", manifest.PI),
				"Check the PI. PIs are listed in search_arke results."
		}
		return fmt.Sprintf("could not retrieve entity %s: %v", manifest.PI, manifest.Err),
			"The entity service may be temporarily unavailable. Try again shortly."

	case errors.As(err, &gateway):
		return fmt.Sprintf("the Arke %s service failed: %v", gateway.Op, gateway),
			"The remote service may be temporarily unavailable. Try again shortly, or narrow the request."

	default:
		return err.Error(), ""
	}
}
