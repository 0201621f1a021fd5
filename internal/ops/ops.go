// Package ops implements the capture pipeline operations: orchestrated
// capture, retrieval, listing, deletion, webhook retry, retention
// cleanup, and stats. Operations take an Env bundling the pipeline's
// collaborators so the CLI and MCP surfaces stay thin.
package ops

import (
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/glance/internal/blob"
	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/config"
	"github.com/hpungsan/glance/internal/source"
	"github.com/hpungsan/glance/internal/webhook"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Env bundles the collaborators the operations run against.
// The index (DB) and blob store own all durable state; Latest is the
// single in-memory most-recent-capture slot.
type Env struct {
	DB      *sql.DB
	Blobs   *blob.Store
	Sources *source.Set
	Webhook webhook.Sender
	Latest  *capture.LatestSlot
	Cfg     *config.Config
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
