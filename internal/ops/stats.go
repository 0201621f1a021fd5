package ops

import (
	"log/slog"

	"github.com/hpungsan/glance/internal/db"
)

// StatsOutput contains aggregate storage and delivery statistics.
type StatsOutput struct {
	TotalCaptures int   `json:"total_captures"`
	UnsentCount   int   `json:"unsent_count"`
	DBBytes       int64 `json:"db_bytes"`
	BlobBytes     int64 `json:"blob_bytes"`
}

// GetStats reports index row counts and storage usage across the
// database and the blob/screenshot directories.
func GetStats(env *Env) (*StatsOutput, error) {
	dbStats, err := db.GetStats(env.DB)
	if err != nil {
		return nil, err
	}

	blobBytes, err := env.Blobs.DirBytes()
	if err != nil {
		slog.Warn("failed to size blob directories", "error", err)
		blobBytes = 0
	}

	return &StatsOutput{
		TotalCaptures: dbStats.Total,
		UnsentCount:   dbStats.Unsent,
		DBBytes:       dbStats.DBBytes,
		BlobBytes:     blobBytes,
	}, nil
}
