// Package store persists edition documents for repeated linearization runs.
//
// This package defines a storage interface with implementations for
// different backends:
//   - file: JSON files under a base directory, for CLI usage
//   - mongo: a MongoDB collection, for shared deployments
//
// Stored records keep the raw input document, not the built model: the
// model is cheap to rebuild and rebuilding re-validates the invariants
// against the current code.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("edition not found")

// Record is one stored edition document plus bookkeeping metadata.
type Record struct {
	ID       string           `json:"id" bson:"_id"`
	Name     string           `json:"name" bson:"name"`
	SavedAt  time.Time        `json:"saved_at" bson:"saved_at"`
	Document edition.Document `json:"document" bson:"document"`
}

// Summary is the listing view of a record, without the document payload.
type Summary struct {
	ID      string    `json:"id" bson:"_id"`
	Name    string    `json:"name" bson:"name"`
	SavedAt time.Time `json:"saved_at" bson:"saved_at"`
}

// Store is the interface for edition storage backends.
type Store interface {
	// Put stores a record, overwriting any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns summaries of all records, sorted by ID.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a record. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// NewRecord wraps a document into a record. When id is empty a random UUID
// is assigned, so callers can store anonymous working copies.
func NewRecord(id string, doc edition.Document) *Record {
	if id == "" {
		id = uuid.NewString()
	}
	return &Record{
		ID:       id,
		Name:     doc.Name,
		SavedAt:  time.Now().UTC(),
		Document: doc,
	}
}
