package db

import "strings"

// IndexBuilder is a fluent builder for collection index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Ascending adds a single-field ascending key.
func (b *IndexBuilder) Ascending(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Kind: IndexAscending})
	return b
}

// Text adds text fields; multiple calls build one compound text index.
func (b *IndexBuilder) Text(names ...string) *IndexBuilder {
	for _, n := range names {
		b.def.Fields = append(b.def.Fields, IndexField{Name: n, Kind: IndexText})
	}
	return b
}

// Geo adds a 2dsphere key.
func (b *IndexBuilder) Geo(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Kind: IndexGeo})
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a debug representation resembling the createIndex command.
func (idx *IndexDefinition) String() string {
	parts := []string{"createIndex", idx.Name}
	for i := range idx.Fields {
		f := &idx.Fields[i]
		switch f.Kind {
		case IndexText:
			parts = append(parts, f.Name+":text")
		case IndexGeo:
			parts = append(parts, f.Name+":2dsphere")
		default:
			parts = append(parts, f.Name+":1")
		}
	}
	return strings.Join(parts, " ")
}
