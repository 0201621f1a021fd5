package ops

import (
	"log/slog"
	"time"

	"github.com/hpungsan/glance/internal/db"
)

// CleanupInput contains parameters for the Cleanup operation.
type CleanupInput struct {
	// DaysOld is the retention cutoff; rows older than now minus this
	// many days are removed. Defaults to the configured retention.
	DaysOld int
}

// CleanupOutput contains the result of the Cleanup operation.
type CleanupOutput struct {
	Deleted int `json:"deleted"`
}

// Cleanup removes captures older than the retention cutoff, each via
// the full Delete path (blob + screenshot + index row), then reclaims
// index space if anything was removed. The returned count is the
// number of captures actually deleted.
func Cleanup(env *Env, input CleanupInput) (*CleanupOutput, error) {
	days := input.DaysOld
	if days <= 0 {
		days = env.Cfg.RetentionDays
	}

	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour).Unix()
	old, err := db.ListOlderThan(env.DB, cutoff)
	if err != nil {
		return nil, err
	}

	deleted := 0
	for _, row := range old {
		if _, err := Delete(env, DeleteInput{ID: row.ID}); err != nil {
			slog.Warn("cleanup failed to delete capture", "capture_id", row.ID, "error", err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		if err := db.Vacuum(env.DB); err != nil {
			slog.Warn("vacuum after cleanup failed", "error", err)
		}
		slog.Info("retention cleanup complete", "deleted", deleted, "days_old", days)
	}

	return &CleanupOutput{Deleted: deleted}, nil
}
