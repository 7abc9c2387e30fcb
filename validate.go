package entitykit

import (
	"context"
	"time"

	"github.com/entitykit/entitykit/schema"
)

// Validate runs the declared rules and returns an entity holding the fresh
// messages. Later updates do not re-run validation.
func (e *Entity) Validate() *Entity {
	return e.ValidateContext(context.Background())
}

// ValidateContext is Validate with a context passed to the logger trace
func (e *Entity) ValidateContext(ctx context.Context) *Entity {
	begin := time.Now()

	errs := e.Errors().Clone()
	errs.Clear()

	for _, v := range e.schema.Validates {
		for _, rule := range v.Rules {
			if rule == nil {
				continue
			}
			if result := rule(e.Get(v.Field), e); !result.IsValid {
				errs.Add(v.Field, result.Message)
			}
		}
	}

	e.trace(ctx, begin, "validate", int64(errs.Len()), nil)
	return e.Set(schema.ErrorsField, errs)
}
