package db

import (
	"database/sql"
	"time"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/errors"
)

// Insert stores a new capture index row. webhook_sent starts false;
// only UpdateWebhookStatus flips it.
func Insert(db *sql.DB, s *capture.Summary) error {
	query := `
		INSERT INTO captures (
			id, timestamp, app_name, window_title, tabs_count,
			has_clipboard, screenshot_path, json_path, webhook_sent, webhook_sent_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, NULL)
	`

	_, err := db.Exec(query,
		s.ID, s.Timestamp, s.AppName, s.WindowTitle, s.TabsCount,
		boolToInt(s.HasClipboard), toNullString(s.ScreenshotPath), s.JSONPath,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetByID retrieves a capture index row.
func GetByID(db *sql.DB, id string) (*capture.Summary, error) {
	query := selectColumns + ` WHERE id = ?`

	s, err := scanSummary(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return s, nil
}

// ListRecent returns index rows most recent first, capped at limit.
func ListRecent(db *sql.DB, limit int) ([]capture.Summary, error) {
	query := selectColumns + ` ORDER BY timestamp DESC LIMIT ?`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

// ListUnsent returns every row whose delivery has not succeeded yet,
// oldest first so retries drain the outbox in capture order.
func ListUnsent(db *sql.DB) ([]capture.Summary, error) {
	query := selectColumns + ` WHERE webhook_sent = 0 ORDER BY timestamp ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

// ListOlderThan returns rows with timestamp strictly before cutoff,
// used for retention sweeps.
func ListOlderThan(db *sql.DB, cutoff int64) ([]capture.Summary, error) {
	query := selectColumns + ` WHERE timestamp < ? ORDER BY timestamp ASC`

	rows, err := db.Query(query, cutoff)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return collectSummaries(rows)
}

// UpdateWebhookStatus records a delivery outcome. webhook_sent is
// monotonic: it only ever transitions false to true, and webhook_sent_at
// is stamped exactly on that transition. A sent=false update never
// reverts a delivered row.
func UpdateWebhookStatus(db *sql.DB, id string, sent bool) error {
	if !sent {
		return nil
	}

	query := `
		UPDATE captures
		SET webhook_sent = 1, webhook_sent_at = ?
		WHERE id = ? AND webhook_sent = 0
	`

	if _, err := db.Exec(query, time.Now().Unix(), id); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteByID removes a capture index row. Deleting a row that is
// already gone is not an error; delete is idempotent at this level.
func DeleteByID(db *sql.DB, id string) error {
	if _, err := db.Exec(`DELETE FROM captures WHERE id = ?`, id); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// Stats holds aggregate index statistics.
type Stats struct {
	Total   int   `json:"total"`
	Unsent  int   `json:"unsent"`
	DBBytes int64 `json:"db_bytes"`
}

// GetStats returns row counts and the database size on disk
// (page_count * page_size, which covers WAL checkpointed state).
func GetStats(db *sql.DB) (*Stats, error) {
	stats := &Stats{}

	if err := db.QueryRow(`SELECT COUNT(*) FROM captures`).Scan(&stats.Total); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM captures WHERE webhook_sent = 0`).Scan(&stats.Unsent); err != nil {
		return nil, errors.NewInternal(err)
	}

	var pageCount, pageSize int64
	if err := db.QueryRow(`PRAGMA page_count;`).Scan(&pageCount); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := db.QueryRow(`PRAGMA page_size;`).Scan(&pageSize); err != nil {
		return nil, errors.NewInternal(err)
	}
	stats.DBBytes = pageCount * pageSize

	return stats, nil
}

// Vacuum reclaims space after bulk deletes.
func Vacuum(db *sql.DB) error {
	if _, err := db.Exec(`VACUUM`); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

const selectColumns = `
	SELECT id, timestamp, app_name, window_title, tabs_count,
		has_clipboard, screenshot_path, json_path, webhook_sent, webhook_sent_at
	FROM captures`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSummary scans a single row into a Summary struct.
func scanSummary(row rowScanner) (*capture.Summary, error) {
	var (
		s              capture.Summary
		hasClipboard   int
		screenshotPath sql.NullString
		webhookSent    int
		webhookSentAt  sql.NullInt64
	)

	err := row.Scan(
		&s.ID, &s.Timestamp, &s.AppName, &s.WindowTitle, &s.TabsCount,
		&hasClipboard, &screenshotPath, &s.JSONPath, &webhookSent, &webhookSentAt,
	)
	if err != nil {
		return nil, err
	}

	s.HasClipboard = hasClipboard != 0
	s.WebhookSent = webhookSent != 0
	if screenshotPath.Valid {
		s.ScreenshotPath = screenshotPath.String
	}
	if webhookSentAt.Valid {
		s.WebhookSentAt = &webhookSentAt.Int64
	}

	return &s, nil
}

// collectSummaries drains rows into a slice.
func collectSummaries(rows *sql.Rows) ([]capture.Summary, error) {
	summaries := make([]capture.Summary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		summaries = append(summaries, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return summaries, nil
}

// boolToInt converts a bool to its SQLite integer form.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// toNullString converts a possibly-empty string to sql.NullString.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
