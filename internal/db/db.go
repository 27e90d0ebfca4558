// Package db defines the store-neutral query and result shapes the complaint
// store executor consumes, plus index definitions for its collections.
package db

import (
	"context"
	"time"

	"github.com/citydata-labs/crimedex/internal/domain/filter"
)

// Document is a stored complaint record, shaped by the active projection.
type Document = map[string]any

// FindQuery is the input for a projected, windowed fetch.
type FindQuery struct {
	Filter     filter.Expression
	Projection []string // nil = all fields
	Skip       int64
	Limit      int64 // 0 = no limit
}

// SampleQuery is the input for random sampling of matching documents.
type SampleQuery struct {
	Filter     filter.Expression
	Projection []string
	Size       int
}

// FacetQuery is the input for per-field value frequency aggregation.
type FacetQuery struct {
	Field string
	Limit int // 0 = no truncation
}

// FacetEntry is one (raw value, occurrence count) pair. Value may be nil for
// documents where the field is absent or null.
type FacetEntry struct {
	Value any   `json:"value"`
	Count int64 `json:"count"`
}

// Store is the document store facade. Consumers depend on the narrow
// sub-interfaces.
type Store interface {
	Pinger
	Reader
	Writer
	IndexManager
	Close(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Reader provides the read operations the retrieval and facet paths use.
type Reader interface {
	Count(ctx context.Context, f filter.Expression) (int64, error)
	Find(ctx context.Context, q *FindQuery) ([]Document, error)
	Sample(ctx context.Context, q *SampleQuery) ([]Document, error)
	FacetCounts(ctx context.Context, q *FacetQuery) ([]FacetEntry, error)
}

// Writer provides the bulk operations the loader uses.
type Writer interface {
	InsertMany(ctx context.Context, docs []Document) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// IndexManager creates collection indexes.
type IndexManager interface {
	EnsureIndexes(ctx context.Context, defs []*IndexDefinition) error
}
