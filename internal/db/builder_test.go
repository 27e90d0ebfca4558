package db

import (
	"strings"
	"testing"
)

func TestNewIndex_Ascending(t *testing.T) {
	def, err := NewIndex("boro_nm_1").Ascending("boro_nm").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(def.Fields) != 1 {
		t.Fatalf("fields = %d, want 1", len(def.Fields))
	}
	if def.Fields[0].Name != "boro_nm" || def.Fields[0].Kind != IndexAscending {
		t.Errorf("field = %+v", def.Fields[0])
	}
}

func TestNewIndex_CompoundText(t *testing.T) {
	def, err := NewIndex("complaint_text").Text("ofns_desc", "prem_typ_desc").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(def.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(def.Fields))
	}
	for _, f := range def.Fields {
		if f.Kind != IndexText {
			t.Errorf("field %q kind = %v, want text", f.Name, f.Kind)
		}
	}
}

func TestNewIndex_Geo(t *testing.T) {
	def, err := NewIndex("location_2dsphere").Geo("location").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Fields[0].Kind != IndexGeo {
		t.Errorf("kind = %v, want geo", def.Fields[0].Kind)
	}
}

func TestBuild_NoFields(t *testing.T) {
	_, err := NewIndex("empty").Build()
	if err == nil {
		t.Fatal("expected error for no fields")
	}
	if !strings.Contains(err.Error(), "at least one field") {
		t.Errorf("error = %q", err)
	}
}

func TestBuild_NoName(t *testing.T) {
	_, err := NewIndex("").Ascending("boro_nm").Build()
	if err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestBuild_DuplicateField(t *testing.T) {
	_, err := NewIndex("dup").Text("ofns_desc", "ofns_desc").Build()
	if err == nil {
		t.Fatal("expected error for duplicate field")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error = %q", err)
	}
}

func TestBuild_CompoundNonText(t *testing.T) {
	_, err := NewIndex("bad").Ascending("a").Ascending("b").Build()
	if err == nil {
		t.Fatal("expected error for compound non-text definition")
	}
}

func TestString(t *testing.T) {
	def := NewIndex("complaint_text").Text("ofns_desc", "prem_typ_desc").MustBuild()
	s := def.String()
	if !strings.Contains(s, "createIndex") || !strings.Contains(s, "ofns_desc:text") {
		t.Errorf("String() = %q", s)
	}
}
