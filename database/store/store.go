package store

import (
	"context"

	"slotbook/models"
)

// Store persists the scheduler document as a whole: Fetch returns the current
// document and Write durably replaces it. Implementations offer no partial
// updates and no concurrency control; callers serialize their
// fetch-mutate-write cycles.
type Store interface {
	Fetch(ctx context.Context) (*models.Document, error)
	Write(ctx context.Context, doc *models.Document) error
}
