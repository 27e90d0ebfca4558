package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/citydata-labs/crimedex/internal/db"
)

// InsertMany bulk-inserts documents unordered and returns the inserted count.
func (s *Store) InsertMany(ctx context.Context, docs []db.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	res, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return 0, &db.Error{Op: db.OpInsertMany, Err: err}
	}
	return len(res.InsertedIDs), nil
}

// DeleteAll removes every document in the collection.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, &db.Error{Op: db.OpDeleteMany, Err: err}
	}
	return res.DeletedCount, nil
}
