package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the capture pipeline.

var captureNowToolDef = mcp.NewTool("capture_now",
	mcp.WithDescription("Capture the current desktop context: active window, browser tabs, clipboard, and screenshot. Returns the capture id."),
	mcp.WithString("method",
		mcp.Description("How the capture was triggered: 'hotkey' or 'manual' (default 'manual')"),
		mcp.Enum("hotkey", "manual"),
	),
)

var captureLatestToolDef = mcp.NewTool("capture_latest",
	mcp.WithDescription("Return the most recent capture of this session, including the full context record."),
)

var captureListToolDef = mcp.NewTool("capture_list",
	mcp.WithDescription("List capture index entries, most recent first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum entries to return (default 20, max 100)"),
	),
)

var captureGetToolDef = mcp.NewTool("capture_get",
	mcp.WithDescription("Fetch a full capture record by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Capture id (ULID)"),
	),
)

var captureDeleteToolDef = mcp.NewTool("capture_delete",
	mcp.WithDescription("Delete a capture: its JSON record, screenshot, and index entry."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Capture id (ULID)"),
	),
)

var captureRetryWebhookToolDef = mcp.NewTool("capture_retry_webhook",
	mcp.WithDescription("Re-send the webhook delivery for a stored capture and report the outcome."),
	mcp.WithString("id",
		mcp.Description("Capture id (ULID); required unless 'all' is set"),
	),
	mcp.WithBoolean("all",
		mcp.Description("Re-send every capture whose delivery has not succeeded"),
	),
)

var captureCleanupToolDef = mcp.NewTool("capture_cleanup",
	mcp.WithDescription("Delete captures older than the retention cutoff and reclaim index space."),
	mcp.WithNumber("days_old",
		mcp.Description("Retention cutoff in days (defaults to the configured retention)"),
	),
)

var captureStatsToolDef = mcp.NewTool("capture_stats",
	mcp.WithDescription("Report capture counts, pending deliveries, and storage usage."),
)

var webhookTestToolDef = mcp.NewTool("webhook_test",
	mcp.WithDescription("Probe the configured webhook endpoint with a single test request."),
)
