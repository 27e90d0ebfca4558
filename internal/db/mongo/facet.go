package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/citydata-labs/crimedex/internal/db"
)

// FacetCounts groups all documents by a field's raw value and counts
// occurrences, sorted by descending count, optionally truncated.
func (s *Store) FacetCounts(ctx context.Context, q *db.FacetQuery) ([]db.FacetEntry, error) {
	pipeline := []bson.D{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + q.Field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: q.Limit}})
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}
	defer cur.Close(ctx)

	var rows []struct {
		Value any   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	entries := make([]db.FacetEntry, len(rows))
	for i, r := range rows {
		entries[i] = db.FacetEntry{Value: r.Value, Count: r.Count}
	}
	return entries, nil
}
