// Package ingest streams the NYPD complaint CSV export into the document
// store.
package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/citydata-labs/crimedex/internal/db"
)

// nullLiteral is how the source export spells a missing value.
const nullLiteral = "(null)"

// dateLayout is the source export date format.
const dateLayout = "01/02/2006"

// keptColumns is the subset of export columns worth storing. Header names
// are matched case-insensitively and stored lowercased.
var keptColumns = map[string]struct{}{
	"cmplnt_num":       {},
	"cmplnt_fr_dt":     {},
	"cmplnt_fr_tm":     {},
	"cmplnt_to_dt":     {},
	"cmplnt_to_tm":     {},
	"ofns_desc":        {},
	"law_cat_cd":       {},
	"crm_atpt_cptd_cd": {},
	"boro_nm":          {},
	"addr_pct_cd":      {},
	"vic_age_group":    {},
	"vic_sex":          {},
	"vic_race":         {},
	"susp_age_group":   {},
	"susp_sex":         {},
	"susp_race":        {},
	"prem_typ_desc":    {},
	"latitude":         {},
	"longitude":        {},
}

// columnIndex maps kept column names to their position in the CSV header.
type columnIndex map[string]int

func indexHeader(header []string) columnIndex {
	idx := make(columnIndex)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := keptColumns[name]; ok {
			idx[name] = i
		}
	}
	return idx
}

// buildDocument converts one CSV row into a store document. Rows without
// usable coordinates return ok=false and are skipped, matching how the map
// view depends on every document having a location.
func buildDocument(idx columnIndex, row []string) (db.Document, bool) {
	lat, latOK := parseFloat(cell(idx, row, "latitude"))
	lon, lonOK := parseFloat(cell(idx, row, "longitude"))
	if !latOK || !lonOK {
		return nil, false
	}

	doc := make(db.Document, len(idx)+1)
	for name, i := range idx {
		if i >= len(row) {
			doc[name] = nil
			continue
		}
		doc[name] = normalizeValue(name, row[i])
	}

	doc["latitude"] = lat
	doc["longitude"] = lon
	// GeoJSON point, coordinates are [longitude, latitude]
	doc["location"] = db.Document{
		"type":        "Point",
		"coordinates": []float64{lon, lat},
	}
	return doc, true
}

// normalizeValue maps the export's null spellings to stored null and parses
// the typed columns.
func normalizeValue(name, raw string) any {
	v := strings.TrimSpace(raw)
	if v == "" || v == nullLiteral {
		return nil
	}
	switch name {
	case "cmplnt_fr_dt", "cmplnt_to_dt":
		if t, err := time.Parse(dateLayout, v); err == nil {
			return t.UTC()
		}
		return nil
	case "addr_pct_cd":
		if n, ok := parseFloat(v); ok {
			return n
		}
		return v
	default:
		return v
	}
}

func cell(idx columnIndex, row []string, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseFloat(s string) (float64, bool) {
	v := strings.TrimSpace(s)
	if v == "" || v == nullLiteral {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
