package schema

// FieldKind classifies a field of an entity type
type FieldKind int

const (
	// Attribute is a scalar field declared through DefaultAttributes, or the primary key
	Attribute FieldKind = iota + 1
	// Metadata is a scalar field every entity carries
	Metadata
	// BelongsToField holds a single nested entity
	BelongsToField
	// HasManyField holds a collection of nested entities
	HasManyField
)

func (k FieldKind) String() string {
	switch k {
	case Attribute:
		return "attribute"
	case Metadata:
		return "metadata"
	case BelongsToField:
		return string(BelongsTo)
	case HasManyField:
		return string(HasMany)
	}
	return "unknown"
}

// IsRelation reports whether fields of this kind are stored as relations
func (k FieldKind) IsRelation() bool {
	return k == BelongsToField || k == HasManyField
}

// Metadata field names
const (
	TokenField      = "_token"
	CheckedField    = "_is_checked"
	DestroyField    = "_destroy"
	CreatedAtField  = "_created_at"
	ErrorsField     = "errors"
	CreatedAtColumn = "created_at"
	UpdatedAtColumn = "updated_at"
)

var (
	metadataFields   = []string{TokenField, CheckedField, DestroyField, CreatedAtField, ErrorsField, CreatedAtColumn, UpdatedAtColumn}
	metadataDefaults = map[string]interface{}{
		TokenField:      nil,
		CheckedField:    false,
		DestroyField:    false,
		CreatedAtField:  nil,
		ErrorsField:     nil,
		CreatedAtColumn: nil,
		UpdatedAtColumn: nil,
	}
)

// Field is one declared field of an entity type
type Field struct {
	Name       string
	Kind       FieldKind
	Default    interface{}
	PrimaryKey bool
	// Target is the entity type of relation fields
	Target *Schema
}

// FieldTable is the parsed, immutable field layout of a Schema
type FieldTable struct {
	Schema       *Schema
	PrimaryKey   string
	Fields       []*Field
	FieldsByName map[string]*Field
	Relations    []*Field
}

func (table *FieldTable) add(field *Field) {
	table.Fields = append(table.Fields, field)
	table.FieldsByName[field.Name] = field
	if field.Kind.IsRelation() {
		table.Relations = append(table.Relations, field)
	}
}

// LookUpField returns the declared field, nil for undeclared names
func (table *FieldTable) LookUpField(name string) *Field {
	return table.FieldsByName[name]
}

// Kind returns the kind of name, Attribute for undeclared names
func (table *FieldTable) Kind(name string) FieldKind {
	if field, ok := table.FieldsByName[name]; ok {
		return field.Kind
	}
	return Attribute
}

// IsBelongsTo reports whether name is a belongsTo relation
func (table *FieldTable) IsBelongsTo(name string) bool {
	return table.Kind(name) == BelongsToField
}

// IsHasMany reports whether name is a hasMany relation
func (table *FieldTable) IsHasMany(name string) bool {
	return table.Kind(name) == HasManyField
}

// Target returns the entity type of a relation field, nil otherwise
func (table *FieldTable) Target(name string) *Schema {
	if field, ok := table.FieldsByName[name]; ok {
		return field.Target
	}
	return nil
}

// FieldNames returns every declared field name in declaration order
func (table *FieldTable) FieldNames() []string {
	names := make([]string, len(table.Fields))
	for i, field := range table.Fields {
		names[i] = field.Name
	}
	return names
}
