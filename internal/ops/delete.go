package ops

import (
	"log/slog"

	"github.com/hpungsan/glance/internal/db"
	"github.com/hpungsan/glance/internal/errors"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes the JSON blob, screenshot file, and index row for a
// capture. Missing files are not errors, so delete is idempotent; only
// an index-row deletion failure is reported.
func Delete(env *Env, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if err := env.Blobs.Delete(input.ID); err != nil {
		// Best-effort: file trouble doesn't fail the delete
		slog.Warn("failed to remove capture files", "capture_id", input.ID, "error", err)
	}

	if err := db.DeleteByID(env.DB, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{Deleted: true, ID: input.ID}, nil
}
