package ops

import (
	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit int // default: 20, max: 100
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []capture.Summary `json:"items"`
	Count int               `json:"count"`
}

// List returns capture index rows, most recent first.
func List(env *Env, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	items, err := db.ListRecent(env.DB, limit)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Items: items, Count: len(items)}, nil
}
