package entitykit

import (
	"encoding/json"
	"fmt"

	"github.com/entitykit/entitykit/schema"
)

// NewFromJSON builds an entity of type s from a JSON object
func NewFromJSON(s *schema.Schema, body []byte, opts ...Option) (*Entity, error) {
	var attrs map[string]interface{}
	if err := json.Unmarshal(body, &attrs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return New(s, attrs, opts...), nil
}

// ToObject returns attributes and relations in one map, relations are left
// as *Entity and *Collection
func (e *Entity) ToObject() Attrs {
	object := make(Attrs, len(e.attributes)+len(e.relations))
	for key, value := range e.attributes {
		object[key] = value
	}
	for key, value := range e.relations {
		object[key] = value
	}
	return object
}

// ToParams flattens the entity graph: belongs_to relations become their own
// params, has_many relations a []Attrs in collection order
func (e *Entity) ToParams() Attrs {
	params := make(Attrs, len(e.attributes)+len(e.relations))
	for key, value := range e.attributes {
		params[key] = value
	}

	for _, field := range e.table.Relations {
		switch field.Kind {
		case schema.BelongsToField:
			if child := e.BelongsTo(field.Name); child != nil {
				params[field.Name] = child.ToParams()
			} else {
				params[field.Name] = nil
			}
		case schema.HasManyField:
			children := e.Array(field.Name)
			list := make([]Attrs, 0, len(children))
			for _, child := range children {
				list = append(list, child.ToParams())
			}
			params[field.Name] = list
		}
	}
	return params
}

// MarshalJSON encodes ToParams
func (e *Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(e.ToParams()))
}
