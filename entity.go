package entitykit

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/jinzhu/now"

	"github.com/entitykit/entitykit/schema"
	"github.com/entitykit/entitykit/utils"
	"github.com/entitykit/entitykit/validation"
)

// Attrs raw field values, used as construction input and patches
type Attrs map[string]interface{}

// Entity is an immutable value of a declared entity type. Every update
// returns a new *Entity, fields that did not change are shared with the
// entity it was derived from.
type Entity struct {
	schema     *schema.Schema
	table      *schema.FieldTable
	config     *Config
	attributes map[string]interface{}
	relations  map[string]interface{}
}

// New builds an entity of type s from attrs, merged over the declared
// defaults. Undeclared keys are kept as attributes. New panics if s is not a
// valid declaration, see schema.Parse.
func New(s *schema.Schema, attrs Attrs, opts ...Option) *Entity {
	return newEntity(schema.MustParse(s), newConfig(opts), attrs)
}

func newEntity(table *schema.FieldTable, config *Config, attrs Attrs) *Entity {
	input := make(map[string]interface{}, len(table.Fields)+len(attrs))
	for _, field := range table.Fields {
		input[field.Name] = field.Default
	}
	for key, value := range attrs {
		input[key] = value
	}

	input[schema.TokenField] = config.TokenFunc()
	input[schema.CreatedAtField] = createdAt(config, input[schema.CreatedAtField])
	input[schema.ErrorsField] = validation.NewErrors(table.Schema, nil)

	e := &Entity{
		schema:     table.Schema,
		table:      table,
		config:     config,
		attributes: make(map[string]interface{}, len(input)),
		relations:  make(map[string]interface{}, len(table.Relations)),
	}

	for key, value := range input {
		switch field := table.LookUpField(key); {
		case field != nil && field.Kind == schema.BelongsToField:
			e.relations[key] = e.resolveBelongsTo(field, value)
		case field != nil && field.Kind == schema.HasManyField:
			e.relations[key] = e.resolveHasMany(field, value)
		default:
			e.attributes[key] = value
		}
	}
	return e
}

func createdAt(config *Config, value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	case string:
		if utils.IsBlank(v) {
			break
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
		if t, err := now.Parse(v); err == nil {
			return t
		}
		config.Logger.Warn(context.Background(), "unparsable %s %q kept as string", schema.CreatedAtField, v)
		return v
	default:
		if utils.IsPresent(v) {
			return v
		}
	}
	return config.NowFunc()
}

func (e *Entity) clone(attributes, relations map[string]interface{}) *Entity {
	return &Entity{
		schema:     e.schema,
		table:      e.table,
		config:     e.config,
		attributes: attributes,
		relations:  relations,
	}
}

// Schema returns the entity type
func (e *Entity) Schema() *schema.Schema {
	return e.schema
}

// Get returns the relation value of declared relations and the attribute
// value otherwise, nil for unknown fields
func (e *Entity) Get(field string) interface{} {
	if e.table.Kind(field).IsRelation() {
		return e.relations[field]
	}
	return e.attributes[field]
}

// Value returns the field converted to T
//
//	name, ok := entitykit.Value[string](person, "name")
func Value[T any](e *Entity, field string) (T, bool) {
	value, ok := e.Get(field).(T)
	return value, ok
}

// BelongsTo returns the nested entity of a belongs_to field, nil when unset
func (e *Entity) BelongsTo(field string) *Entity {
	value, _ := e.relations[field].(*Entity)
	return value
}

// HasMany returns the collection of a has_many field, nil for unknown fields
func (e *Entity) HasMany(field string) *Collection {
	value, _ := e.relations[field].(*Collection)
	return value
}

// Array returns the nested entities of a has_many field in collection order
func (e *Entity) Array(field string) []*Entity {
	return e.HasMany(field).Values()
}

// Set returns an entity with field replaced by value. Setting an attribute
// to its current value returns e itself, relations are always resolved into
// a new entity.
func (e *Entity) Set(field string, value interface{}) *Entity {
	switch f := e.table.LookUpField(field); {
	case f != nil && f.Kind == schema.BelongsToField:
		return e.withRelation(field, e.resolveBelongsTo(f, value))
	case f != nil && f.Kind == schema.HasManyField:
		return e.withRelation(field, e.resolveHasMany(f, value))
	}

	if utils.SameValue(e.attributes[field], value) {
		return e
	}

	if field == schema.TokenField {
		e.config.Logger.Warn(context.Background(), "%v: %s can not be reassigned", e.schema, schema.TokenField)
		return e
	}

	attributes := make(map[string]interface{}, len(e.attributes)+1)
	for key, v := range e.attributes {
		attributes[key] = v
	}
	attributes[field] = value
	return e.clone(attributes, e.relations)
}

func (e *Entity) withRelation(field string, value interface{}) *Entity {
	relations := make(map[string]interface{}, len(e.relations))
	for key, v := range e.relations {
		relations[key] = v
	}
	relations[field] = value
	return e.clone(e.attributes, relations)
}

// UpdateAttributes applies Set for every key of patch, in key order
func (e *Entity) UpdateAttributes(patch Attrs) *Entity {
	keys := make([]string, 0, len(patch))
	for key := range patch {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	updated := e
	for _, key := range keys {
		updated = updated.Set(key, patch[key])
	}
	return updated
}

// EntityID returns the primary key value
func (e *Entity) EntityID() interface{} {
	return e.attributes[e.table.PrimaryKey]
}

// Token returns the session token assigned at construction
func (e *Entity) Token() string {
	token, _ := e.attributes[schema.TokenField].(string)
	return token
}

// IDOrToken returns the primary key when present, the token otherwise. It is
// the key of the entity in every collection holding it.
func (e *Entity) IDOrToken() interface{} {
	if id := e.EntityID(); utils.IsPresent(id) && reflect.TypeOf(id).Comparable() {
		return id
	}
	return e.Token()
}

// CreatedAt returns _created_at, zero when it is not a time
func (e *Entity) CreatedAt() time.Time {
	t, _ := e.attributes[schema.CreatedAtField].(time.Time)
	return t
}

// IsNewEntity reports whether the primary key is blank
func (e *Entity) IsNewEntity() bool {
	return utils.IsBlank(e.EntityID())
}

// IsPersisted reports whether the primary key is present
func (e *Entity) IsPersisted() bool {
	return !e.IsNewEntity()
}

// Errors returns the validation messages of the last Validate. Other shapes
// stored under errors are read into a new aggregator.
func (e *Entity) Errors() *validation.Errors {
	value := e.attributes[schema.ErrorsField]
	if errs, ok := value.(*validation.Errors); ok && errs != nil {
		return errs
	}
	return validation.NewErrors(e.schema, value)
}

// IsValid reports whether no validation message is recorded
func (e *Entity) IsValid() bool {
	return e.Errors().IsEmpty()
}

// IsMarkedForDestruction reports whether _destroy is set
func (e *Entity) IsMarkedForDestruction() bool {
	return !utils.IsFalsy(e.attributes[schema.DestroyField])
}

func (e *Entity) String() string {
	return fmt.Sprintf("%v(%v)", e.schema, e.IDOrToken())
}
