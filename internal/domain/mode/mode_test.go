package mode

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	if got := Normalize(""); got != Table {
		t.Errorf("Normalize(\"\") = %q, want table", got)
	}
	if got := Normalize("carte"); got != Carte {
		t.Errorf("Normalize(carte) = %q", got)
	}
	if got := Normalize("everything"); got != Mode("everything") {
		t.Errorf("Normalize(everything) = %q, want token kept", got)
	}
}

func TestProjection_Carte(t *testing.T) {
	p := Carte.Projection()
	if slices.Contains(p, "law_cat_cd") {
		t.Error("carte projection must not include law_cat_cd")
	}
	for _, f := range []string{"latitude", "longitude", "boro_nm", "ofns_desc", "cmplnt_fr_dt"} {
		if !slices.Contains(p, f) {
			t.Errorf("carte projection missing %q", f)
		}
	}
}

func TestProjection_Table(t *testing.T) {
	p := Table.Projection()
	if !slices.Contains(p, "cmplnt_num") {
		t.Error("table projection must include cmplnt_num")
	}
	if !slices.Contains(p, "prem_typ_desc") {
		t.Error("table projection must include prem_typ_desc")
	}
}

func TestProjection_OtherModeUnrestricted(t *testing.T) {
	if p := Mode("export").Projection(); p != nil {
		t.Errorf("Projection() = %v, want nil for unknown mode", p)
	}
}

func TestPointProjection(t *testing.T) {
	if !slices.Equal(PointProjection(), Carte.Projection()) {
		t.Error("point projection must match the carte projection")
	}
}
