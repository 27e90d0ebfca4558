package facet

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/citydata-labs/crimedex/internal/db"
)

type stubRepo struct {
	limits map[string]int
	fail   string
}

func (r *stubRepo) FacetCounts(_ context.Context, field string, limit int) ([]db.FacetEntry, error) {
	if r.limits == nil {
		r.limits = make(map[string]int)
	}
	r.limits[field] = limit
	if field == r.fail {
		return nil, errors.New("aggregation rejected")
	}
	return []db.FacetEntry{{Value: "X", Count: 1}}, nil
}

func TestFacets_CoversAllConfiguredFields(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, DefaultFields(0))

	out, err := svc.Facets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 10 {
		t.Errorf("facets = %d fields, want 10", len(out))
	}
	for _, name := range []string{"boro_nm", "vic_age_group", "susp_race", "ofns_desc"} {
		if _, ok := out[name]; !ok {
			t.Errorf("missing facet %q", name)
		}
	}
}

func TestFacets_OnlyOffenseTruncated(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, DefaultFields(0))

	if _, err := svc.Facets(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.limits["ofns_desc"] != DefaultOffenseLimit {
		t.Errorf("ofns_desc limit = %d, want %d", repo.limits["ofns_desc"], DefaultOffenseLimit)
	}
	for field, limit := range repo.limits {
		if field != "ofns_desc" && limit != 0 {
			t.Errorf("field %q limit = %d, want 0", field, limit)
		}
	}
}

func TestFacets_ErrorNamesField(t *testing.T) {
	svc := New(&stubRepo{fail: "vic_sex"}, DefaultFields(0))

	_, err := svc.Facets(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "vic_sex") {
		t.Errorf("error = %q, want field name", err)
	}
}
