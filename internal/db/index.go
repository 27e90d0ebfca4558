package db

import (
	"errors"
	"strconv"
)

// IndexKind enumerates supported index field kinds.
type IndexKind int

const (
	// IndexAscending is a single-field ascending index.
	IndexAscending IndexKind = iota
	// IndexText is a text index field (compound when listed together).
	IndexText
	// IndexGeo is a 2dsphere geospatial index field.
	IndexGeo
)

// IndexField describes a single field in an index definition.
type IndexField struct {
	Name string
	Kind IndexKind
}

// IndexDefinition is a complete collection index definition.
type IndexDefinition struct {
	Name   string
	Fields []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		if f.Kind != IndexText && len(idx.Fields) > 1 {
			return errors.New("compound definitions are text-only")
		}
	}

	return nil
}
