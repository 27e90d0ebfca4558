package explore

import (
	"context"

	"github.com/citydata-labs/crimedex/internal/db"
	"github.com/citydata-labs/crimedex/internal/domain/filter"
)

// Repository defines the storage contract for complaint retrieval.
type Repository interface {
	Count(ctx context.Context, f filter.Expression) (int64, error)

	FindPage(
		ctx context.Context, f filter.Expression,
		projection []string, skip, limit int64,
	) ([]db.Document, error)

	Points(
		ctx context.Context, f filter.Expression,
		projection []string, maxPoints int64,
	) ([]db.Document, error)

	SamplePoints(
		ctx context.Context, f filter.Expression,
		projection []string, size int,
	) ([]db.Document, error)
}
