package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/citydata-labs/crimedex/internal/db"
)

// DefaultBatchSize is the number of documents per insert batch.
const DefaultBatchSize = 5000

// Stats summarizes one ingest run.
type Stats struct {
	Read     int
	Skipped  int
	Inserted int
}

// Service streams CSV rows into the document store in batches.
type Service struct {
	writer    db.Writer
	batchSize int
	logger    *zap.Logger
}

// New creates an ingest service.
func New(writer db.Writer, logger *zap.Logger) *Service {
	return &Service{writer: writer, batchSize: DefaultBatchSize, logger: logger}
}

// WithBatchSize overrides the insert batch size.
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// Load reads the CSV stream and inserts all usable rows. Rows without
// coordinates are counted as skipped, not errors.
func (s *Service) Load(ctx context.Context, r io.Reader) (Stats, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return Stats{}, fmt.Errorf("read csv header: %w", err)
	}
	idx := indexHeader(header)
	if len(idx) == 0 {
		return Stats{}, fmt.Errorf("csv header contains no known columns")
	}

	var stats Stats
	batch := make([]db.Document, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.writer.InsertMany(ctx, batch)
		if err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}
		stats.Inserted += n
		s.logger.Info("batch inserted",
			zap.Int("batch", n),
			zap.Int("total", stats.Inserted),
		)
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read csv row %d: %w", stats.Read+1, err)
		}
		stats.Read++

		doc, ok := buildDocument(idx, row)
		if !ok {
			stats.Skipped++
			continue
		}
		batch = append(batch, doc)

		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}
	return stats, nil
}

// Indexes returns the index set the query paths rely on: one ascending
// index per filterable field, a compound text index, and a geo index on the
// GeoJSON location.
func Indexes() []*db.IndexDefinition {
	return []*db.IndexDefinition{
		db.NewIndex("boro_nm_1").Ascending("boro_nm").MustBuild(),
		db.NewIndex("cmplnt_fr_dt_1").Ascending("cmplnt_fr_dt").MustBuild(),
		db.NewIndex("law_cat_cd_1").Ascending("law_cat_cd").MustBuild(),
		db.NewIndex("vic_age_group_1").Ascending("vic_age_group").MustBuild(),
		db.NewIndex("vic_sex_1").Ascending("vic_sex").MustBuild(),
		db.NewIndex("vic_race_1").Ascending("vic_race").MustBuild(),
		db.NewIndex("ofns_desc_1").Ascending("ofns_desc").MustBuild(),
		db.NewIndex("ofns_prem_text").Text("ofns_desc", "prem_typ_desc").MustBuild(),
		db.NewIndex("location_2dsphere").Geo("location").MustBuild(),
	}
}
