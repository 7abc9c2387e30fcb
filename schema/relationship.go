package schema

// RelationshipType relationship type
type RelationshipType string

const (
	HasMany   RelationshipType = "has_many"   // HasMany has many relationship
	BelongsTo RelationshipType = "belongs_to" // BelongsTo belongs to relationship
)

// Relation declares a nested entity field, Schema is the entity type every
// value of the field is built as
type Relation struct {
	Name   string
	Schema *Schema
}
