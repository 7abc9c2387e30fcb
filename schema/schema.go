package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/entitykit/entitykit/validation"
)

// DefaultPrimaryKey is used when a Schema leaves PrimaryKey empty
const DefaultPrimaryKey = "id"

// Schema declares an entity type. Declare it once and do not modify it after
// the first entity is built from it, parsed tables are cached per *Schema.
//
//	var Car = &schema.Schema{
//		Name:              "Car",
//		DefaultAttributes: map[string]interface{}{"name": "", "price": 0},
//	}
//
//	var Person = &schema.Schema{
//		Name:              "Person",
//		DefaultAttributes: map[string]interface{}{"name": "", "age": 0},
//		HasMany:           []schema.Relation{{Name: "cars", Schema: Car}},
//		Validates: []schema.Validation{
//			{Field: "name", Rules: []validation.Rule{validation.Required()}},
//		},
//	}
type Schema struct {
	Name              string
	PrimaryKey        string
	DefaultAttributes map[string]interface{}
	BelongsTo         []Relation
	HasMany           []Relation
	Validates         []Validation
	AttributeNames    map[string]string
}

// Validation lists the rules of one attribute, run in declared order
type Validation struct {
	Field string
	Rules []validation.Rule
}

func (s *Schema) String() string {
	if s == nil || s.Name == "" {
		return "<anonymous schema>"
	}
	return s.Name
}

// PrimaryKeyName returns PrimaryKey or DefaultPrimaryKey
func (s *Schema) PrimaryKeyName() string {
	if s.PrimaryKey == "" {
		return DefaultPrimaryKey
	}
	return s.PrimaryKey
}

var cacheStore sync.Map

// Parse returns the field table of s, building it on first use
func Parse(s *Schema) (*FieldTable, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}

	if v, ok := cacheStore.Load(s); ok {
		return v.(*FieldTable), nil
	}

	table, err := parse(s)
	if err != nil {
		return nil, err
	}

	v, _ := cacheStore.LoadOrStore(s, table)
	return v.(*FieldTable), nil
}

// MustParse is like Parse but panics on an invalid declaration
func MustParse(s *Schema) *FieldTable {
	table, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return table
}

func parse(s *Schema) (*FieldTable, error) {
	table := &FieldTable{
		Schema:       s,
		PrimaryKey:   s.PrimaryKeyName(),
		FieldsByName: map[string]*Field{},
	}

	for _, name := range metadataFields {
		table.add(&Field{Name: name, Kind: Metadata, Default: metadataDefaults[name]})
	}

	relationNames := map[string]RelationshipType{}
	for _, rels := range []struct {
		kind RelationshipType
		list []Relation
	}{{BelongsTo, s.BelongsTo}, {HasMany, s.HasMany}} {
		for _, rel := range rels.list {
			switch {
			case rel.Name == "":
				return nil, fmt.Errorf("%w: %v declares a %s relation without name", ErrInvalidSchema, s, rels.kind)
			case rel.Schema == nil:
				return nil, fmt.Errorf("%w: %v.%s has no target schema", ErrInvalidSchema, s, rel.Name)
			case rel.Name == table.PrimaryKey:
				return nil, fmt.Errorf("%w: %v.%s is the primary key", ErrInvalidSchema, s, rel.Name)
			}
			if _, ok := metadataDefaults[rel.Name]; ok {
				return nil, fmt.Errorf("%w: %v.%s is a reserved field", ErrInvalidSchema, s, rel.Name)
			}
			if kind, ok := relationNames[rel.Name]; ok {
				return nil, fmt.Errorf("%w: %v.%s declared as %s and %s", ErrInvalidSchema, s, rel.Name, kind, rels.kind)
			}
			relationNames[rel.Name] = rels.kind
		}
	}

	if _, ok := table.FieldsByName[table.PrimaryKey]; !ok {
		table.add(&Field{Name: table.PrimaryKey, Kind: Attribute, PrimaryKey: true})
	} else {
		table.FieldsByName[table.PrimaryKey].PrimaryKey = true
	}

	names := make([]string, 0, len(s.DefaultAttributes))
	for name := range s.DefaultAttributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := relationNames[name]; ok {
			// defaults of relation fields are resolved like any other input
			continue
		}
		if field, ok := table.FieldsByName[name]; ok {
			field.Default = s.DefaultAttributes[name]
			continue
		}
		table.add(&Field{Name: name, Kind: Attribute, Default: s.DefaultAttributes[name]})
	}

	for _, rel := range s.BelongsTo {
		table.add(&Field{Name: rel.Name, Kind: BelongsToField, Target: rel.Schema, Default: s.DefaultAttributes[rel.Name]})
	}
	for _, rel := range s.HasMany {
		table.add(&Field{Name: rel.Name, Kind: HasManyField, Target: rel.Schema, Default: s.DefaultAttributes[rel.Name]})
	}

	return table, nil
}
