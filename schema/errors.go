package schema

import "errors"

var (
	// ErrInvalidSchema invalid entity type declaration
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrUnknownSchema a relation references an undeclared entity type
	ErrUnknownSchema = errors.New("unknown schema")
	// ErrUnknownRule a declaration references an unsupported validation rule
	ErrUnknownRule = errors.New("unknown validation rule")
)
