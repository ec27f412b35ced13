package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"slotbook/models"
)

// FileStore keeps the document in a single JSON file, wrapping the filesystem
// the way a database client would be wrapped in production. Suited to local
// runs and development.
type FileStore struct {
	path string
}

// NewFileStore returns a store reading and writing the file at path. A
// missing file reads as an empty document.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Fetch(ctx context.Context) (*models.Document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", s.path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", s.path, err)
	}
	doc.EnsureMaps()
	return &doc, nil
}

func (s *FileStore) Write(ctx context.Context, doc *models.Document) error {
	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	// Write to a sibling temp file and rename so readers never see a torn file.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".slotbook-*")
	if err != nil {
		return fmt.Errorf("failed to create temp data file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close data file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}
