package entitykit

import (
	"context"
	"fmt"
	"time"

	"github.com/entitykit/entitykit/schema"
	"github.com/entitykit/entitykit/utils"
)

func (e *Entity) trace(ctx context.Context, begin time.Time, op string, affected int64, err error) {
	e.config.Logger.Trace(ctx, begin, func() (string, int64) {
		return fmt.Sprintf("%v.%s", e.schema, op), affected
	}, err)
}

func (e *Entity) hasManyField(relation string) (*schema.Field, error) {
	field := e.table.LookUpField(relation)
	if field == nil || field.Kind != schema.HasManyField {
		return nil, fmt.Errorf("%w: %v has no has_many %q", ErrUnknownRelation, e.schema, relation)
	}
	return field, nil
}

// AddNested builds a child of the has_many relation from attrs and returns
// the parent holding it along with the child
func (e *Entity) AddNested(relation string, attrs Attrs) (*Entity, *Entity, error) {
	begin := time.Now()
	op := "add_nested(" + relation + ")"

	field, err := e.hasManyField(relation)
	if err != nil {
		e.trace(context.Background(), begin, op, -1, err)
		return nil, nil, err
	}

	child := newEntity(schema.MustParse(field.Target), e.config, attrs)
	parent := e.withRelation(relation, e.HasMany(relation).Put(child.IDOrToken(), child))

	e.trace(context.Background(), begin, op, 1, nil)
	return parent, child, nil
}

// UpdateNested applies patch to the child stored under key. The updated
// child stays under key even when its identity changes. A blank patch
// returns e and the current child.
func (e *Entity) UpdateNested(relation string, key interface{}, patch Attrs) (*Entity, *Entity, error) {
	begin := time.Now()
	op := "update_nested(" + relation + ")"

	if _, err := e.hasManyField(relation); err != nil {
		e.trace(context.Background(), begin, op, -1, err)
		return nil, nil, err
	}

	collection := e.HasMany(relation)
	child := collection.Get(key)
	if child == nil {
		err := &InvalidRelationKeyError{Relation: relation, Key: key}
		e.trace(context.Background(), begin, op, 0, err)
		return nil, nil, err
	}

	if utils.IsBlank(patch) {
		return e, child, nil
	}

	updated := child.UpdateAttributes(patch)
	parent := e.withRelation(relation, collection.Put(key, updated))

	e.trace(context.Background(), begin, op, 1, nil)
	return parent, updated, nil
}

// UpdateManyNested applies patch to every child whose IDOrToken is listed in
// keys, or to all children when keys are blank. Order is preserved and only
// the updated children are returned. A blank patch returns e.
func (e *Entity) UpdateManyNested(relation string, patch Attrs, keys ...interface{}) (*Entity, []*Entity, error) {
	begin := time.Now()
	op := "update_many_nested(" + relation + ")"

	if _, err := e.hasManyField(relation); err != nil {
		e.trace(context.Background(), begin, op, -1, err)
		return nil, nil, err
	}

	if utils.IsBlank(patch) {
		return e, nil, nil
	}

	var (
		collection = e.HasMany(relation)
		updated    = newCollection(collection.Len())
		changed    []*Entity
	)
	for key, child := range collection.All() {
		if utils.IsBlank(keys) || utils.Contains(keys, child.IDOrToken()) {
			child = child.UpdateAttributes(patch)
			changed = append(changed, child)
		}
		updated.put(key, child)
	}

	e.trace(context.Background(), begin, op, int64(len(changed)), nil)
	return e.withRelation(relation, updated), changed, nil
}

// RemoveNested drops the child stored under key and returns it
func (e *Entity) RemoveNested(relation string, key interface{}) (*Entity, *Entity, error) {
	begin := time.Now()
	op := "remove_nested(" + relation + ")"

	if _, err := e.hasManyField(relation); err != nil {
		e.trace(context.Background(), begin, op, -1, err)
		return nil, nil, err
	}

	collection := e.HasMany(relation)
	child := collection.Get(key)
	if child == nil {
		err := &InvalidRelationKeyError{Relation: relation, Key: key}
		e.trace(context.Background(), begin, op, 0, err)
		return nil, nil, err
	}

	parent := e.withRelation(relation, collection.Delete(key))
	e.trace(context.Background(), begin, op, 1, nil)
	return parent, child, nil
}

// MarkForDestruction sets _destroy on the child stored under key, the child
// stays in the collection
func (e *Entity) MarkForDestruction(relation string, key interface{}) (*Entity, *Entity, error) {
	return e.UpdateNested(relation, key, Attrs{schema.DestroyField: true})
}
