// Package facet computes distinct-value frequencies for the UI filter
// choices.
package facet

import (
	"context"
	"fmt"
	"time"

	"github.com/citydata-labs/crimedex/internal/db"
	"github.com/citydata-labs/crimedex/internal/metrics"
)

// DefaultOffenseLimit caps the free-text-heavy offense-description facet.
const DefaultOffenseLimit = 100

// Repository defines the storage contract for facet aggregation.
type Repository interface {
	FacetCounts(ctx context.Context, field string, limit int) ([]db.FacetEntry, error)
}

// Field is one configured facet: a stored field and an optional top-N cap
// (0 = no truncation).
type Field struct {
	Name  string
	Limit int
}

// DefaultFields returns the configured facet list for complaint records.
// Only the offense description is truncated.
func DefaultFields(offenseLimit int) []Field {
	if offenseLimit <= 0 {
		offenseLimit = DefaultOffenseLimit
	}
	return []Field{
		{Name: "boro_nm"},
		{Name: "law_cat_cd"},
		{Name: "crm_atpt_cptd_cd"},
		{Name: "vic_race"},
		{Name: "vic_sex"},
		{Name: "vic_age_group"},
		{Name: "susp_race"},
		{Name: "susp_sex"},
		{Name: "susp_age_group"},
		{Name: "ofns_desc", Limit: offenseLimit},
	}
}

// Service aggregates facet frequencies. Purely derived from current store
// content; no caching.
type Service struct {
	repo   Repository
	fields []Field
}

// New creates a facet service over the given field configuration.
func New(repo Repository, fields []Field) *Service {
	return &Service{repo: repo, fields: fields}
}

// Facets returns, per configured field, its values sorted by descending
// occurrence count.
func (s *Service) Facets(ctx context.Context) (map[string][]db.FacetEntry, error) {
	start := time.Now()

	out := make(map[string][]db.FacetEntry, len(s.fields))
	for _, f := range s.fields {
		entries, err := s.repo.FacetCounts(ctx, f.Name, f.Limit)
		if err != nil {
			metrics.QueriesTotal.WithLabelValues("facets", "error").Inc()
			return nil, fmt.Errorf("aggregate facet %s: %w", f.Name, err)
		}
		if entries == nil {
			entries = []db.FacetEntry{}
		}
		out[f.Name] = entries
	}
	metrics.QueriesTotal.WithLabelValues("facets", "ok").Inc()
	metrics.QueryDuration.WithLabelValues("facets").Observe(time.Since(start).Seconds())
	return out, nil
}
