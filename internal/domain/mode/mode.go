// Package mode defines display modes and the field projection each selects.
package mode

// Mode is the display mode requested by the presentation layer.
type Mode string

// Display mode constants.
const (
	// Table is the paginated tabular view (default).
	Table Mode = "table"
	// Carte is the map view, projected down to point fields.
	Carte Mode = "carte"
)

// Normalize applies the default mode for an absent parameter. Unknown
// tokens are kept as-is: they select no projection restriction.
func Normalize(s string) Mode {
	if s == "" {
		return Table
	}
	return Mode(s)
}

var carteProjection = []string{
	"latitude",
	"longitude",
	"boro_nm",
	"ofns_desc",
	"cmplnt_fr_dt",
}

var tableProjection = []string{
	"cmplnt_num",
	"cmplnt_fr_dt",
	"cmplnt_fr_tm",
	"boro_nm",
	"ofns_desc",
	"law_cat_cd",
	"crm_atpt_cptd_cd",
	"vic_age_group",
	"vic_sex",
	"vic_race",
	"susp_age_group",
	"susp_sex",
	"susp_race",
	"prem_typ_desc",
	"latitude",
	"longitude",
}

// Projection returns the fields this mode restricts records to, or nil for
// no restriction (all fields).
func (m Mode) Projection() []string {
	switch m {
	case Carte:
		return carteProjection
	case Table:
		return tableProjection
	default:
		return nil
	}
}

// PointProjection returns the fixed projection for map-point retrieval.
func PointProjection() []string { return carteProjection }
