// Package blob persists one JSON document and one screenshot file per
// capture, keyed by capture identity, in two sibling directories under
// the data dir.
package blob

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hpungsan/glance/internal/capture"
)

// Store addresses capture blobs by identity.
type Store struct {
	capturesDir    string
	screenshotsDir string
}

// New creates the blob directories under baseDir and returns the store.
func New(baseDir string) (*Store, error) {
	s := &Store{
		capturesDir:    filepath.Join(baseDir, "captures"),
		screenshotsDir: filepath.Join(baseDir, "screenshots"),
	}

	for _, dir := range []string{s.capturesDir, s.screenshotsDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create blob directory: %w", err)
		}
		_ = os.Chmod(dir, 0700)
	}

	return s, nil
}

// ContextPath returns where the JSON document for id lives.
func (s *Store) ContextPath(id string) string {
	return filepath.Join(s.capturesDir, id+".json")
}

// ScreenshotPath returns where the screenshot image for id lives.
func (s *Store) ScreenshotPath(id string) string {
	return filepath.Join(s.screenshotsDir, id+".png")
}

// WriteContext serializes the capture to its JSON document. The write
// goes through a temp file and rename so a crash never leaves a
// half-written blob behind.
func (s *Store) WriteContext(c *capture.CapturedContext) (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal capture: %w", err)
	}

	path := s.ContextPath(c.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write capture blob: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize capture blob: %w", err)
	}

	return path, nil
}

// ReadContext loads and parses the JSON document for id.
// Returns fs.ErrNotExist-wrapped errors when the blob is absent.
func (s *Store) ReadContext(id string) (*capture.CapturedContext, error) {
	data, err := os.ReadFile(s.ContextPath(id))
	if err != nil {
		return nil, err
	}

	var c capture.CapturedContext
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse capture blob %s: %w", id, err)
	}

	return &c, nil
}

// Exists reports whether the JSON document for id is present.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.ContextPath(id))
	return err == nil
}

// Delete removes the JSON document and screenshot for id.
// Missing files are not errors; delete is idempotent.
func (s *Store) Delete(id string) error {
	for _, path := range []string{s.ContextPath(id), s.ScreenshotPath(id)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

// DirBytes returns the total size of all stored blobs and screenshots.
func (s *Store) DirBytes() (int64, error) {
	var total int64
	for _, dir := range []string{s.capturesDir, s.screenshotsDir} {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
			return nil
		})
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}
