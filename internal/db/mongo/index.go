package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/citydata-labs/crimedex/internal/db"
)

// EnsureIndexes creates the given indexes; existing ones are left as-is.
func (s *Store) EnsureIndexes(ctx context.Context, defs []*db.IndexDefinition) error {
	models := make([]driver.IndexModel, 0, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return fmt.Errorf("index %s: %w", def.Name, err)
		}
		models = append(models, compileIndex(def))
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := s.coll.Indexes().CreateMany(ctx, models); err != nil {
		return &db.Error{Op: db.OpCreateIndexes, Err: err}
	}
	return nil
}

func compileIndex(def *db.IndexDefinition) driver.IndexModel {
	keys := make(bson.D, 0, len(def.Fields))
	for _, f := range def.Fields {
		switch f.Kind {
		case db.IndexText:
			keys = append(keys, bson.E{Key: f.Name, Value: "text"})
		case db.IndexGeo:
			keys = append(keys, bson.E{Key: f.Name, Value: "2dsphere"})
		default:
			keys = append(keys, bson.E{Key: f.Name, Value: 1})
		}
	}
	return driver.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(def.Name),
	}
}
