// Command loader streams the NYPD complaint CSV export into MongoDB and
// creates the indexes the API queries depend on.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/citydata-labs/crimedex/internal/config"
	dbMongo "github.com/citydata-labs/crimedex/internal/db/mongo"
	logpkg "github.com/citydata-labs/crimedex/internal/logger"
	ingestuc "github.com/citydata-labs/crimedex/internal/usecase/ingest"
)

func main() {
	var (
		file      = flag.String("file", "", "path to the complaint CSV export")
		batchSize = flag.Int("batch", ingestuc.DefaultBatchSize, "documents per insert batch")
		drop      = flag.Bool("drop", false, "delete existing documents before loading")
		indexOnly = flag.Bool("indexes-only", false, "only create indexes, skip loading")
	)
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if *file == "" && !*indexOnly {
		logger.Fatal("missing -file flag")
	}

	store, err := dbMongo.NewStore(dbMongo.Config{
		URI:        cfg.Database.URI,
		Database:   cfg.Database.Database,
		Collection: cfg.Database.Collection,
	})
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	if !*indexOnly {
		if *drop {
			deleted, err := store.DeleteAll(ctx)
			if err != nil {
				logger.Fatal("Failed to clear collection", zap.Error(err))
			}
			logger.Info("Cleared existing documents", zap.Int64("deleted", deleted))
		}

		f, err := os.Open(*file)
		if err != nil {
			logger.Fatal("Failed to open CSV", zap.Error(err))
		}
		defer func() { _ = f.Close() }()

		start := time.Now()
		stats, err := ingestuc.New(store, logger).WithBatchSize(*batchSize).Load(ctx, f)
		if err != nil {
			logger.Fatal("Load failed", zap.Error(err), zap.Int("inserted", stats.Inserted))
		}
		logger.Info("Load complete",
			zap.Int("read", stats.Read),
			zap.Int("skipped", stats.Skipped),
			zap.Int("inserted", stats.Inserted),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	if err := store.EnsureIndexes(ctx, ingestuc.Indexes()); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	logger.Info("Indexes ensured", zap.Int("count", len(ingestuc.Indexes())))
}
