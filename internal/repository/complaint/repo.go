// Package complaint adapts the document store to the retrieval and facet
// use cases.
package complaint

import (
	"context"
	"fmt"

	"github.com/citydata-labs/crimedex/internal/db"
	"github.com/citydata-labs/crimedex/internal/domain/filter"
)

// store is the consumer interface for complaint reads.
type store interface {
	Count(ctx context.Context, f filter.Expression) (int64, error)
	Find(ctx context.Context, q *db.FindQuery) ([]db.Document, error)
	Sample(ctx context.Context, q *db.SampleQuery) ([]db.Document, error)
	FacetCounts(ctx context.Context, q *db.FacetQuery) ([]db.FacetEntry, error)
}

// Repo implements the explore and facet repository contracts.
type Repo struct {
	store store
}

// New creates a complaint repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Count returns the total number of matching complaints.
func (r *Repo) Count(ctx context.Context, f filter.Expression) (int64, error) {
	n, err := r.store.Count(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("count complaints: %w", err)
	}
	return n, nil
}

// FindPage fetches one projected window of matching complaints.
func (r *Repo) FindPage(
	ctx context.Context, f filter.Expression, projection []string, skip, limit int64,
) ([]db.Document, error) {
	docs, err := r.store.Find(ctx, &db.FindQuery{
		Filter:     f,
		Projection: projection,
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("find complaints: %w", err)
	}
	return docs, nil
}

// Points fetches every matching point. A positive cap bounds the fetch;
// zero means genuinely everything.
func (r *Repo) Points(
	ctx context.Context, f filter.Expression, projection []string, maxPoints int64,
) ([]db.Document, error) {
	docs, err := r.store.Find(ctx, &db.FindQuery{
		Filter:     f,
		Projection: projection,
		Limit:      maxPoints,
	})
	if err != nil {
		return nil, fmt.Errorf("find points: %w", err)
	}
	return docs, nil
}

// SamplePoints fetches a random sample of matching points.
func (r *Repo) SamplePoints(
	ctx context.Context, f filter.Expression, projection []string, size int,
) ([]db.Document, error) {
	docs, err := r.store.Sample(ctx, &db.SampleQuery{
		Filter:     f,
		Projection: projection,
		Size:       size,
	})
	if err != nil {
		return nil, fmt.Errorf("sample points: %w", err)
	}
	return docs, nil
}

// FacetCounts returns value frequencies for one field.
func (r *Repo) FacetCounts(ctx context.Context, field string, limit int) ([]db.FacetEntry, error) {
	entries, err := r.store.FacetCounts(ctx, &db.FacetQuery{Field: field, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("facet %s: %w", field, err)
	}
	return entries, nil
}
