package entitykit

import (
	"errors"
	"fmt"

	"github.com/entitykit/entitykit/logger"
)

var (
	// ErrUnknownRelation a nested operation names a field that is not a declared relation
	ErrUnknownRelation = errors.New("unknown relation")
	// ErrInvalidRelationKey no nested entity is stored under the given key
	ErrInvalidRelationKey = logger.ErrInvalidRelationKey
	// ErrInvalidJSON input is not a JSON object
	ErrInvalidJSON = errors.New("invalid json")
)

// InvalidRelationKeyError reports the relation and key of a failed nested
// lookup, it matches ErrInvalidRelationKey with errors.Is
type InvalidRelationKeyError struct {
	Relation string
	Key      interface{}
}

func (e *InvalidRelationKeyError) Error() string {
	return fmt.Sprintf("%v: %s has no entry for key %v", ErrInvalidRelationKey, e.Relation, e.Key)
}

// Is reports whether target is ErrInvalidRelationKey
func (e *InvalidRelationKeyError) Is(target error) bool {
	return target == ErrInvalidRelationKey
}
