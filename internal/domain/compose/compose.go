// Package compose assembles request parameters into one composite filter.
package compose

import (
	"strings"

	"github.com/citydata-labs/crimedex/internal/domain/filter"
	"github.com/citydata-labs/crimedex/internal/domain/params"
	"github.com/citydata-labs/crimedex/internal/domain/vocab"
)

// Request parameter names for the non-slot inputs.
const (
	ParamStart = "start"
	ParamEnd   = "end"
	ParamText  = "q"
)

// FieldDate is the stored field constrained by the date range.
const FieldDate = "cmplnt_fr_dt"

// textFields are the fields the free-text disjunction spans.
var textFields = []string{"ofns_desc", "prem_typ_desc", "boro_nm"}

// Kind classifies a filter slot.
type Kind int

// Slot kinds.
const (
	// Raw slots match parsed tokens against the stored field verbatim.
	Raw Kind = iota
	// Normalized slots expand standardized tokens through a vocabulary
	// mapping before matching.
	Normalized
)

// Slot binds one recognized request parameter to the stored field it
// constrains. The slot table is closed: unknown parameters are ignored.
type Slot struct {
	Param   string
	Field   string
	Kind    Kind
	Mapping vocab.Mapping // only for Normalized slots
}

// Composer turns request parameters into a filter expression. Stateless and
// safe for concurrent use.
type Composer struct {
	slots []Slot
}

// New creates a composer over the full slot table for complaint records.
func New(reg vocab.Registry) Composer {
	return Composer{slots: []Slot{
		{Param: "borough", Field: "boro_nm", Kind: Raw},
		{Param: "ofns_desc", Field: "ofns_desc", Kind: Raw},
		{Param: "law_cat_cd", Field: "law_cat_cd", Kind: Raw},
		{Param: "crm_atpt_cptd_cd", Field: "crm_atpt_cptd_cd", Kind: Raw},
		{Param: "vic_sex", Field: "vic_sex", Kind: Normalized, Mapping: reg.Sex()},
		{Param: "vic_age", Field: "vic_age_group", Kind: Normalized, Mapping: reg.Age()},
		{Param: "vic_race", Field: "vic_race", Kind: Raw},
		{Param: "susp_sex", Field: "susp_sex", Kind: Normalized, Mapping: reg.Sex()},
		{Param: "susp_age", Field: "susp_age_group", Kind: Normalized, Mapping: reg.Age()},
		{Param: "susp_race", Field: "susp_race", Kind: Raw},
	}}
}

// Slots returns the recognized multi-value filter slots.
func (c Composer) Slots() []Slot { return c.slots }

// Compose builds the conjunction of all clauses the parameters produce.
// Malformed or unrecognized filter input yields no clause for its slot, never
// an error: a broad result beats a failed request.
func (c Composer) Compose(p map[string]string) filter.Expression {
	var clauses []filter.Clause

	for _, s := range c.slots {
		tokens := params.CSV(p[s.Param])
		if len(tokens) == 0 {
			continue
		}
		var raws []vocab.Raw
		switch s.Kind {
		case Normalized:
			raws = s.Mapping.Expand(tokens)
		default:
			raws = make([]vocab.Raw, len(tokens))
			for i, t := range tokens {
				raws[i] = vocab.String(t)
			}
		}
		// an all-unrecognized normalized input expands to nothing and
		// therefore filters nothing
		if len(raws) == 0 {
			continue
		}
		cl, err := filter.NewMembership(s.Field, raws)
		if err != nil {
			continue
		}
		clauses = append(clauses, cl)
	}

	if from, to, ok := params.DateRange(p[ParamStart], p[ParamEnd]); ok {
		if cl, err := filter.NewInterval(FieldDate, from, to); err == nil {
			clauses = append(clauses, cl)
		}
	}

	if q := strings.TrimSpace(p[ParamText]); q != "" {
		if cl, err := filter.NewText(q, textFields); err == nil {
			clauses = append(clauses, cl)
		}
	}

	return filter.New(clauses...)
}
