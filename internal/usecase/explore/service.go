// Package explore orchestrates paginated and map-point complaint retrieval.
package explore

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/citydata-labs/crimedex/internal/db"
	"github.com/citydata-labs/crimedex/internal/domain/compose"
	"github.com/citydata-labs/crimedex/internal/domain/mode"
	"github.com/citydata-labs/crimedex/internal/domain/page"
	"github.com/citydata-labs/crimedex/internal/domain/params"
	"github.com/citydata-labs/crimedex/internal/metrics"
)

// Pagination defaults.
const (
	DefaultPageSize = 1000
	MaxPageSize     = 10000
)

// Service handles complaint retrieval for the table and map views.
type Service struct {
	repo            Repository
	composer        compose.Composer
	defaultPageSize int
	maxPageSize     int
	maxMapPoints    int64 // 0 = unlimited, the documented default
}

// New creates an explore service.
func New(repo Repository, composer compose.Composer) *Service {
	return &Service{
		repo:            repo,
		composer:        composer,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
	}
}

// WithPagination overrides the pagination defaults.
func (s *Service) WithPagination(def, max int) *Service {
	if def > 0 {
		s.defaultPageSize = def
	}
	if max > 0 {
		s.maxPageSize = max
	}
	return s
}

// WithMapPointCap bounds the unsampled map-point path. Zero keeps the
// "you asked for everything, you get everything" behavior.
func (s *Service) WithMapPointCap(n int64) *Service {
	s.maxMapPoints = n
	return s
}

// Page runs a paginated retrieval. The count reflects the filter only; the
// count and the fetch are two independent reads and may not observe the same
// snapshot under concurrent writes.
func (s *Service) Page(ctx context.Context, p map[string]string) (page.Result, error) {
	start := time.Now()

	expr := s.composer.Compose(p)
	metrics.QueryFilterClauses.Observe(float64(len(expr.Clauses())))
	pg := params.Page(p["page"])
	ps := params.PageSize(p["page_size"], s.defaultPageSize, s.maxPageSize)
	m := mode.Normalize(p["mode"])

	skip := int64(pg.Value-1) * int64(ps.Value)

	var (
		total int64
		docs  []db.Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.Count(gctx, expr)
		total = n
		return err
	})
	g.Go(func() error {
		d, err := s.repo.FindPage(gctx, expr, m.Projection(), skip, int64(ps.Value))
		docs = d
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.QueriesTotal.WithLabelValues("search", "error").Inc()
		return page.Result{}, err
	}
	metrics.QueriesTotal.WithLabelValues("search", "ok").Inc()
	metrics.QueryDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())

	if docs == nil {
		docs = []db.Document{}
	}
	return page.Result{
		Total:      total,
		Page:       pg.Value,
		PageSize:   ps.Value,
		TotalPages: page.TotalPages(total, ps.Value),
		Mode:       string(m),
		Data:       docs,
	}, nil
}

// Points returns matching map points: a random sample when a positive
// sample size was given, otherwise every matching point.
func (s *Service) Points(ctx context.Context, p map[string]string) ([]db.Document, error) {
	start := time.Now()

	expr := s.composer.Compose(p)
	proj := mode.PointProjection()

	var (
		docs []db.Document
		err  error
	)
	smp := params.Sample(p["sample"])
	if smp.Fallback == params.FallbackNone {
		docs, err = s.repo.SamplePoints(ctx, expr, proj, smp.Value)
	} else {
		docs, err = s.repo.Points(ctx, expr, proj, s.maxMapPoints)
	}
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("map", "error").Inc()
		return nil, err
	}
	metrics.QueriesTotal.WithLabelValues("map", "ok").Inc()
	metrics.QueryDuration.WithLabelValues("map").Observe(time.Since(start).Seconds())
	metrics.MapPointsReturned.Observe(float64(len(docs)))

	if docs == nil {
		docs = []db.Document{}
	}
	return docs, nil
}
