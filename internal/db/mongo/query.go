package mongo

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/citydata-labs/crimedex/internal/db"
	"github.com/citydata-labs/crimedex/internal/domain/filter"
)

// Count returns the number of documents matching the filter, independent of
// any pagination window.
func (s *Store) Count(ctx context.Context, f filter.Expression) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, compileFilter(f))
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

// Find fetches a projected window of matching documents.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) ([]db.Document, error) {
	opts := options.Find()
	if proj := compileProjection(q.Projection); proj != nil {
		opts = opts.SetProjection(proj)
	}
	if q.Skip != 0 {
		opts = opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts = opts.SetLimit(q.Limit)
	}

	cur, err := s.coll.Find(ctx, compileFilter(q.Filter), opts)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	defer cur.Close(ctx)

	var docs []db.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	return docs, nil
}

// Sample returns a random sample of matching documents via $sample.
func (s *Store) Sample(ctx context.Context, q *db.SampleQuery) ([]db.Document, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: compileFilter(q.Filter)}},
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: q.Size}}}},
	}
	if proj := compileProjection(q.Projection); proj != nil {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: proj}})
	}

	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}
	defer cur.Close(ctx)

	var docs []db.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}
	return docs, nil
}

// compileFilter translates a filter expression into a BSON filter document.
// An empty expression compiles to the match-everything filter.
func compileFilter(e filter.Expression) bson.D {
	cls := e.Clauses()
	if len(cls) == 0 {
		return bson.D{}
	}
	if len(cls) == 1 {
		return compileClause(cls[0])
	}
	docs := make(bson.A, 0, len(cls))
	for _, c := range cls {
		docs = append(docs, compileClause(c))
	}
	return bson.D{{Key: "$and", Value: docs}}
}

func compileClause(c filter.Clause) bson.D {
	switch {
	case c.IsMembership():
		vals := make(bson.A, 0, len(c.Values()))
		for _, r := range c.Values() {
			if r.IsNull() {
				vals = append(vals, nil)
				continue
			}
			vals = append(vals, r.Value())
		}
		return bson.D{{Key: c.Field(), Value: bson.D{{Key: "$in", Value: vals}}}}

	case c.IsInterval():
		iv := c.Interval()
		return bson.D{{Key: c.Field(), Value: bson.D{
			{Key: "$gte", Value: iv.From},
			{Key: "$lte", Value: iv.To},
		}}}

	case c.IsText():
		t := c.Text()
		pattern := regexp.QuoteMeta(t.Needle())
		or := make(bson.A, 0, len(t.Fields()))
		for _, f := range t.Fields() {
			or = append(or, bson.D{{Key: f, Value: bson.Regex{Pattern: pattern, Options: "i"}}})
		}
		return bson.D{{Key: "$or", Value: or}}
	}
	return bson.D{}
}

// compileProjection maps field names to an inclusion projection that always
// drops the object id. Nil means no restriction.
func compileProjection(fields []string) bson.D {
	if len(fields) == 0 {
		return nil
	}
	proj := bson.D{{Key: "_id", Value: 0}}
	for _, f := range fields {
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	return proj
}
