package ops

import (
	"log/slog"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/errors"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	ID string
}

// GetOutput contains the result of the Get operation.
// Context is nil when the blob is absent or unparsable.
type GetOutput struct {
	Found   bool                     `json:"found"`
	Context *capture.CapturedContext `json:"context,omitempty"`
}

// Get reads and parses the JSON blob for id. An absent or unparsable
// blob is not an error: it yields Found=false and a log line.
func Get(env *Env, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	c, err := env.Blobs.ReadContext(input.ID)
	if err != nil {
		slog.Debug("capture blob unavailable", "capture_id", input.ID, "error", err)
		return &GetOutput{Found: false}, nil
	}

	return &GetOutput{Found: true, Context: c}, nil
}

// Latest returns the most recent capture of this run from the in-memory
// slot. No I/O; nil when nothing has been captured yet.
func Latest(env *Env) *capture.CapturedContext {
	return env.Latest.Get()
}
