// Package vocab holds the standardized facet vocabularies and their
// translation into the raw values stored in the complaint dataset.
package vocab

import (
	"strconv"
	"strings"
)

// nullKey is the dedup sentinel for the stored-null raw value. It only
// prevents a literal null from being counted twice; an empty string stays a
// distinct raw value unless listed separately.
const nullKey = "\x00null"

// Raw is a literal dataset value: a string (possibly empty) or stored null.
type Raw struct {
	value string
	null  bool
}

// String creates a raw value holding a literal string.
func String(v string) Raw { return Raw{value: v} }

// Null creates the stored-null raw value.
func Null() Raw { return Raw{null: true} }

// IsNull reports whether the raw value is the stored null.
func (r Raw) IsNull() bool { return r.null }

// Value returns the literal string; empty for the stored null.
func (r Raw) Value() string { return r.value }

func (r Raw) dedupKey() string {
	if r.null {
		return nullKey
	}
	return r.value
}

// Entry binds one standardized token to the raw values it collapses.
type Entry struct {
	Std string
	Raw []Raw
}

// Collision reports a raw value reachable from more than one standardized
// token, which makes the tokens indistinguishable once expanded.
type Collision struct {
	Raw    Raw
	Tokens []string
}

// Mapping translates standardized facet tokens into stored raw values.
// Immutable after construction.
type Mapping struct {
	entries []Entry
	byStd   map[string][]Raw
	order   []string
	labels  map[string]string
}

// NewMapping builds a mapping from entries in definition order, with a
// canonical display order and human-readable labels.
func NewMapping(entries []Entry, order []string, labels map[string]string) Mapping {
	byStd := make(map[string][]Raw, len(entries))
	for _, e := range entries {
		byStd[e.Std] = e.Raw
	}
	return Mapping{entries: entries, byStd: byStd, order: order, labels: labels}
}

// Expand maps standardized tokens to the union of their raw values,
// deduplicated in first-seen order. Unrecognized tokens contribute nothing.
func (m Mapping) Expand(std []string) []Raw {
	var out []Raw
	seen := make(map[string]struct{})
	for _, s := range std {
		for _, r := range m.byStd[s] {
			k := r.dedupKey()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

// Order returns the canonical display order of standardized tokens.
func (m Mapping) Order() []string { return m.order }

// Label returns the human-readable label for a token, or the token itself.
func (m Mapping) Label(std string) string {
	if l, ok := m.labels[std]; ok {
		return l
	}
	return std
}

// Collisions reports raw values reachable from more than one token, in
// definition order. A collision is a latent ambiguity, not an error.
func (m Mapping) Collisions() []Collision {
	reachedBy := make(map[string][]string)
	rawByKey := make(map[string]Raw)
	var keys []string
	for _, e := range m.entries {
		for _, r := range e.Raw {
			k := r.dedupKey()
			if _, ok := reachedBy[k]; !ok {
				keys = append(keys, k)
				rawByKey[k] = r
			}
			reachedBy[k] = append(reachedBy[k], e.Std)
		}
	}
	var out []Collision
	for _, k := range keys {
		if tokens := reachedBy[k]; len(tokens) > 1 {
			out = append(out, Collision{Raw: rawByKey[k], Tokens: tokens})
		}
	}
	return out
}

// Registry bundles the normalizable facet categories. Built once at process
// start and passed explicitly to consumers.
type Registry struct {
	sex Mapping
	age Mapping
}

// Sex returns the sex-category mapping.
func (r Registry) Sex() Mapping { return r.sex }

// Age returns the age-bracket mapping.
func (r Registry) Age() Mapping { return r.age }

// Collisions reports collisions across both categories, keyed by category.
func (r Registry) Collisions() map[string][]Collision {
	out := make(map[string][]Collision)
	if c := r.sex.Collisions(); len(c) > 0 {
		out["sex"] = c
	}
	if c := r.age.Collisions(); len(c) > 0 {
		out["age"] = c
	}
	return out
}

// Default builds the NYPD complaint vocabulary registry.
func Default() Registry {
	sex := NewMapping(
		[]Entry{
			{Std: "F", Raw: []Raw{String("F"), String("FEMALE"), String("FEM")}},
			{Std: "M", Raw: []Raw{String("M"), String("MALE")}},
			{Std: "U", Raw: []Raw{String("U"), String("UNK"), String("UNKNOWN"), String("X"), String(""), Null()}},
		},
		[]string{"F", "M", "U"},
		map[string]string{"F": "Femme", "M": "Homme", "U": "Inconnu"},
	)

	age := NewMapping(
		[]Entry{
			{Std: "0-17", Raw: []Raw{String("<18")}},
			{Std: "18-24", Raw: []Raw{String("18-24")}},
			{Std: "25-44", Raw: []Raw{String("25-44")}},
			{Std: "45-64", Raw: []Raw{String("45-64")}},
			{Std: "65+", Raw: []Raw{String("65+"), String("65-")}},
			{Std: "INCONNU", Raw: []Raw{String("UNKNOWN"), String(""), Null()}},
			// legacy alias, expands to the same raw set as 65+
			{Std: "80+", Raw: []Raw{String("65+"), String("65-")}},
		},
		[]string{"0-17", "18-24", "25-44", "45-64", "65+", "INCONNU"},
		map[string]string{
			"0-17":    "0-17 ans",
			"18-24":   "18-24 ans",
			"25-44":   "25-44 ans",
			"45-64":   "45-64 ans",
			"65+":     "65 ans et +",
			"INCONNU": "Inconnu",
			"80+":     "80 ans et + (≈65+)",
		},
	)

	return Registry{sex: sex, age: age}
}

// Bounds is the numeric interpretation of an age-bracket label. Nil means
// unbounded or unknown.
type Bounds struct {
	Min    *int
	Max    *int
	Approx *int
}

// AgeBounds converts a raw age-bracket label to numeric bounds and an
// approximate (lower-bound) age. Unknown labels yield all-nil bounds.
func AgeBounds(label string) Bounds {
	l := strings.ToUpper(strings.TrimSpace(label))
	switch l {
	case "<18":
		return boundsOf(0, 17)
	case "18-24":
		return boundsOf(18, 24)
	case "25-44":
		return boundsOf(25, 44)
	case "45-64":
		return boundsOf(45, 64)
	case "65+", "65-":
		lo := 65
		return Bounds{Min: &lo, Approx: &lo}
	case "UNKNOWN", "":
		return Bounds{}
	}
	if a, b, ok := strings.Cut(l, "-"); ok {
		lo, errA := strconv.Atoi(strings.TrimSpace(a))
		hi, errB := strconv.Atoi(strings.TrimSpace(b))
		if errA == nil && errB == nil {
			return boundsOf(lo, hi)
		}
	}
	return Bounds{}
}

func boundsOf(lo, hi int) Bounds {
	return Bounds{Min: &lo, Max: &hi, Approx: &lo}
}
