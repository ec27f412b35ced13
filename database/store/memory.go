package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"slotbook/models"
)

// MemoryStore holds the document in process memory. Fetch returns a deep
// copy, so mutations are invisible until written back, matching the
// read-modify-write contract of the durable stores. Used by tests.
type MemoryStore struct {
	mu  sync.Mutex
	doc *models.Document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: models.NewDocument()}
}

func (s *MemoryStore) Fetch(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDocument(s.doc)
}

func (s *MemoryStore) Write(ctx context.Context, doc *models.Document) error {
	copied, err := cloneDocument(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.doc = copied
	s.mu.Unlock()
	return nil
}

func cloneDocument(doc *models.Document) (*models.Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var copied models.Document
	if err := json.Unmarshal(raw, &copied); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	copied.EnsureMaps()
	return &copied, nil
}
