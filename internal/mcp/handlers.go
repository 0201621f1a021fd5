package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/errors"
	"github.com/hpungsan/glance/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	env *ops.Env
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(env *ops.Env) *Handlers {
	return &Handlers{env: env}
}

// Request types for each tool

// CaptureNowRequest represents the arguments for capture_now.
type CaptureNowRequest struct {
	Method string `json:"method,omitempty"`
}

// ListRequest represents the arguments for capture_list.
type ListRequest struct {
	Limit int `json:"limit,omitempty"`
}

// GetRequest represents the arguments for capture_get.
type GetRequest struct {
	ID string `json:"id"`
}

// DeleteRequest represents the arguments for capture_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// RetryRequest represents the arguments for capture_retry_webhook.
type RetryRequest struct {
	ID  string `json:"id,omitempty"`
	All bool   `json:"all,omitempty"`
}

// CleanupRequest represents the arguments for capture_cleanup.
type CleanupRequest struct {
	DaysOld int `json:"days_old,omitempty"`
}

// Handler implementations

// HandleCaptureNow handles the capture_now tool call.
func (h *Handlers) HandleCaptureNow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureNowRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Capture(ctx, h.env, ops.CaptureInput{
		Method: capture.CaptureMethod(input.Method),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleLatest handles the capture_latest tool call.
func (h *Handlers) HandleLatest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := ops.Latest(h.env)
	if c == nil {
		return successResult(map[string]any{"found": false})
	}
	return successResult(map[string]any{"found": true, "context": c})
}

// HandleList handles the capture_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.env, ops.ListInput{Limit: input.Limit})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGet handles the capture_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Get(h.env, ops.GetInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the capture_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.env, ops.DeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRetryWebhook handles the capture_retry_webhook tool call.
func (h *Handlers) HandleRetryWebhook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RetryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.All {
		result, err := ops.SweepUnsent(ctx, h.env)
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(result)
	}

	result, err := ops.RetryWebhook(ctx, h.env, ops.RetryInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCleanup handles the capture_cleanup tool call.
func (h *Handlers) HandleCleanup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CleanupRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Cleanup(h.env, ops.CleanupInput{DaysOld: input.DaysOld})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStats handles the capture_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.GetStats(h.env)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleWebhookTest handles the webhook_test tool call.
func (h *Handlers) HandleWebhookTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.env.Webhook == nil {
		return errorResult(errors.NewInvalidRequest("no webhook URL configured")), nil
	}

	ok := h.env.Webhook.TestConnection(ctx)
	return successResult(map[string]any{"reachable": ok})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if gErr, ok := err.(*errors.GlanceError); ok {
		errorObj := map[string]any{
			"code":    gErr.Code,
			"message": gErr.Message,
			"status":  gErr.Status,
		}
		if gErr.Code != errors.ErrInternal && gErr.Details != nil {
			errorObj["details"] = gErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
