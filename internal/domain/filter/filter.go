// Package filter models composable boolean filters over complaint records.
package filter

import (
	"fmt"
	"time"

	"github.com/citydata-labs/crimedex/internal/domain/vocab"
)

// Interval is a closed date interval, inclusive of both bounds.
type Interval struct {
	From time.Time
	To   time.Time
}

// Text is a free-text constraint: a disjunction of case-insensitive
// substring matches across the named fields.
type Text struct {
	needle string
	fields []string
}

// Needle returns the search text.
func (t Text) Needle() string { return t.needle }

// Fields returns the fields the disjunction spans.
func (t Text) Fields() []string { return t.fields }

// Clause is a single immutable constraint: a membership test on one field, a
// closed interval on one field, or a free-text disjunction.
type Clause struct {
	field    string
	values   []vocab.Raw
	interval *Interval
	text     *Text
}

// NewMembership creates a field-in-set clause.
func NewMembership(field string, values []vocab.Raw) (Clause, error) {
	if field == "" {
		return Clause{}, fmt.Errorf("filter field is required")
	}
	if len(values) == 0 {
		return Clause{}, fmt.Errorf("membership values are required for field %q", field)
	}
	return Clause{field: field, values: values}, nil
}

// NewInterval creates a closed date-interval clause.
func NewInterval(field string, from, to time.Time) (Clause, error) {
	if field == "" {
		return Clause{}, fmt.Errorf("filter field is required")
	}
	return Clause{field: field, interval: &Interval{From: from, To: to}}, nil
}

// NewText creates a free-text disjunction clause.
func NewText(needle string, fields []string) (Clause, error) {
	if needle == "" {
		return Clause{}, fmt.Errorf("text needle is required")
	}
	if len(fields) == 0 {
		return Clause{}, fmt.Errorf("text fields are required")
	}
	return Clause{text: &Text{needle: needle, fields: fields}}, nil
}

// Field returns the constrained field name; empty for text clauses.
func (c Clause) Field() string { return c.field }

// Values returns the membership raw-value set.
func (c Clause) Values() []vocab.Raw { return c.values }

// Interval returns the interval constraint, or nil.
func (c Clause) Interval() *Interval { return c.interval }

// Text returns the free-text constraint, or nil.
func (c Clause) Text() *Text { return c.text }

// IsMembership reports whether this is a membership clause.
func (c Clause) IsMembership() bool { return len(c.values) > 0 }

// IsInterval reports whether this is an interval clause.
func (c Clause) IsInterval() bool { return c.interval != nil }

// IsText reports whether this is a free-text clause.
func (c Clause) IsText() bool { return c.text != nil }

// Expression is a conjunction of clauses. Zero clauses matches everything.
// Clause order is insertion order and carries no semantic weight.
type Expression struct {
	clauses []Clause
}

// New creates a conjunction of the given clauses.
func New(clauses ...Clause) Expression {
	return Expression{clauses: clauses}
}

// Clauses returns the clauses in insertion order.
func (e Expression) Clauses() []Clause { return e.clauses }

// IsEmpty reports whether the expression matches everything.
func (e Expression) IsEmpty() bool { return len(e.clauses) == 0 }
