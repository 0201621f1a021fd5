package ops

import (
	"context"
	"log/slog"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/db"
	"github.com/hpungsan/glance/internal/errors"
	"github.com/hpungsan/glance/internal/webhook"
)

// RetryInput contains parameters for the RetryWebhook operation.
type RetryInput struct {
	ID string
}

// RetryOutput contains the delivery outcome of an explicit retry.
type RetryOutput struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// RetryWebhook reloads the capture by id and re-invokes delivery
// synchronously, rebuilding the wire payload from the stored record.
// A missing blob yields a not-found error without touching the index.
func RetryWebhook(ctx context.Context, env *Env, input RetryInput) (*RetryOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	c, err := env.Blobs.ReadContext(input.ID)
	if err != nil {
		return nil, errors.NewNotFound(input.ID)
	}

	result := env.Webhook.Send(ctx, webhook.PayloadFrom(c))
	if err := db.UpdateWebhookStatus(env.DB, c.ID, result.Success); err != nil {
		slog.Warn("failed to record delivery status", "capture_id", c.ID, "error", err)
	}

	return &RetryOutput{
		Success:    result.Success,
		Error:      result.Error,
		StatusCode: result.StatusCode,
	}, nil
}

// SweepOutput contains the result of the SweepUnsent operation.
type SweepOutput struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
}

// SweepUnsent re-sends every capture whose delivery has not succeeded,
// oldest first. Captures whose blob has vanished are skipped. This is
// the outbox drain: the index row doubles as the outbox entry.
func SweepUnsent(ctx context.Context, env *Env) (*SweepOutput, error) {
	unsent, err := db.ListUnsent(env.DB)
	if err != nil {
		return nil, err
	}

	out := &SweepOutput{}
	for _, row := range unsent {
		result, err := RetryWebhook(ctx, env, RetryInput{ID: row.ID})
		if err != nil {
			slog.Warn("sweep skipped capture", "capture_id", row.ID, "error", err)
			continue
		}
		out.Attempted++
		if result.Success {
			out.Delivered++
		}
	}

	return out, nil
}

// deliver runs the fire-and-forget delivery for a fresh capture and
// records the outcome on the index row. Failures stay queryable as
// unsent rows; they never reach the capture caller.
func deliver(env *Env, c *capture.CapturedContext) {
	result := env.Webhook.Send(context.Background(), webhook.PayloadFrom(c))
	if !result.Success {
		slog.Warn("webhook delivery failed, capture marked unsent",
			"capture_id", c.ID, "error", result.Error, "status", result.StatusCode)
	}
	if err := db.UpdateWebhookStatus(env.DB, c.ID, result.Success); err != nil {
		slog.Warn("failed to record delivery status", "capture_id", c.ID, "error", err)
	}
}
