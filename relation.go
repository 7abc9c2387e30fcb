package entitykit

import (
	"context"
	"reflect"
	"sort"

	"github.com/entitykit/entitykit/schema"
	"github.com/entitykit/entitykit/utils"
)

// resolveBelongsTo coerces value into an entity of the field target, falsy
// values resolve to nil
func (e *Entity) resolveBelongsTo(field *schema.Field, value interface{}) interface{} {
	if utils.IsFalsy(value) {
		return nil
	}
	return e.coerce(field, value)
}

// resolveHasMany builds a collection of the field target from a collection,
// a slice, an iterator or a keyed map of items. Items are keyed by their
// identity, later items win.
func (e *Entity) resolveHasMany(field *schema.Field, value interface{}) *Collection {
	if utils.IsFalsy(value) {
		return newCollection(0)
	}

	var items []interface{}
	switch v := value.(type) {
	case *Collection:
		for _, item := range v.Values() {
			items = append(items, item)
		}
	case []*Entity:
		for _, item := range v {
			items = append(items, item)
		}
	case []Attrs:
		for _, item := range v {
			items = append(items, item)
		}
	case []interface{}:
		items = v
	default:
		rv := reflect.ValueOf(value)
		if converted, ok := utils.ConvertIteratorToSlice(rv); ok {
			rv = converted
		}

		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				items = append(items, rv.Index(i).Interface())
			}
		case reflect.Map:
			if rv.Type().Key().Kind() != reflect.String {
				e.config.Logger.Warn(context.Background(), "%v.%s: can not build a collection from %T", e.schema, field.Name, value)
				return newCollection(0)
			}
			keys := rv.MapKeys()
			sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
			for _, key := range keys {
				items = append(items, rv.MapIndex(key).Interface())
			}
		default:
			e.config.Logger.Warn(context.Background(), "%v.%s: can not build a collection from %T", e.schema, field.Name, value)
			return newCollection(0)
		}
	}

	collection := newCollection(len(items))
	for _, item := range items {
		if utils.IsFalsy(item) {
			continue
		}
		child := e.coerce(field, item)
		collection.put(child.IDOrToken(), child)
	}
	return collection
}

// coerce returns value when it already is an entity of the field target,
// and builds one from value otherwise
func (e *Entity) coerce(field *schema.Field, value interface{}) *Entity {
	table := schema.MustParse(field.Target)

	switch v := value.(type) {
	case *Entity:
		if v.schema == field.Target {
			return v
		}
		return newEntity(table, e.config, v.ToParams())
	case Attrs:
		return newEntity(table, e.config, v)
	case map[string]interface{}:
		return newEntity(table, e.config, v)
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		attrs := make(Attrs, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			attrs[iter.Key().String()] = iter.Value().Interface()
		}
		return newEntity(table, e.config, attrs)
	}

	e.config.Logger.Warn(context.Background(), "%v.%s: can not build %v from %T, using defaults", e.schema, field.Name, field.Target, value)
	return newEntity(table, e.config, nil)
}
