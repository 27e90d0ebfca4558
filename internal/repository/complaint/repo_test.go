package complaint

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/citydata-labs/crimedex/internal/db"
	"github.com/citydata-labs/crimedex/internal/domain/filter"
)

type stubStore struct {
	countN    int64
	countErr  error
	findQ     *db.FindQuery
	findErr   error
	sampleQ   *db.SampleQuery
	facetQ    *db.FacetQuery
	facetRows []db.FacetEntry
}

func (s *stubStore) Count(_ context.Context, _ filter.Expression) (int64, error) {
	return s.countN, s.countErr
}

func (s *stubStore) Find(_ context.Context, q *db.FindQuery) ([]db.Document, error) {
	s.findQ = q
	return []db.Document{{"boro_nm": "QUEENS"}}, s.findErr
}

func (s *stubStore) Sample(_ context.Context, q *db.SampleQuery) ([]db.Document, error) {
	s.sampleQ = q
	return nil, nil
}

func (s *stubStore) FacetCounts(_ context.Context, q *db.FacetQuery) ([]db.FacetEntry, error) {
	s.facetQ = q
	return s.facetRows, nil
}

func TestFindPage_PassesWindow(t *testing.T) {
	st := &stubStore{}
	repo := New(st)

	docs, err := repo.FindPage(context.Background(), filter.New(), []string{"boro_nm"}, 2000, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("docs = %d, want 1", len(docs))
	}
	if st.findQ.Skip != 2000 || st.findQ.Limit != 1000 {
		t.Errorf("window = skip %d limit %d", st.findQ.Skip, st.findQ.Limit)
	}
	if len(st.findQ.Projection) != 1 || st.findQ.Projection[0] != "boro_nm" {
		t.Errorf("projection = %v", st.findQ.Projection)
	}
}

func TestPoints_ZeroCapMeansEverything(t *testing.T) {
	st := &stubStore{}
	repo := New(st)

	if _, err := repo.Points(context.Background(), filter.New(), nil, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.findQ.Limit != 0 {
		t.Errorf("limit = %d, want 0 (unbounded)", st.findQ.Limit)
	}
	if st.findQ.Skip != 0 {
		t.Errorf("skip = %d, want 0", st.findQ.Skip)
	}
}

func TestSamplePoints_PassesSize(t *testing.T) {
	st := &stubStore{}
	repo := New(st)

	if _, err := repo.SamplePoints(context.Background(), filter.New(), nil, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.sampleQ.Size != 500 {
		t.Errorf("size = %d, want 500", st.sampleQ.Size)
	}
}

func TestFacetCounts_PassesFieldAndLimit(t *testing.T) {
	st := &stubStore{facetRows: []db.FacetEntry{{Value: "ROBBERY", Count: 10}}}
	repo := New(st)

	rows, err := repo.FacetCounts(context.Background(), "ofns_desc", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Count != 10 {
		t.Errorf("rows = %v", rows)
	}
	if st.facetQ.Field != "ofns_desc" || st.facetQ.Limit != 100 {
		t.Errorf("query = %+v", st.facetQ)
	}
}

func TestCount_WrapsStoreError(t *testing.T) {
	dbErr := &db.Error{Op: db.OpCount, Err: errors.New("boom")}
	repo := New(&stubStore{countErr: dbErr})

	_, err := repo.Count(context.Background(), filter.New())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "count complaints") {
		t.Errorf("error = %q", err)
	}
	var wrapped *db.Error
	if !errors.As(err, &wrapped) {
		t.Error("store error not preserved in chain")
	}
}
