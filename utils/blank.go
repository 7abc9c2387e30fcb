package utils

import (
	"math"
	"reflect"
	"strings"
	"time"
)

type lengther interface {
	Len() int
}

// IsBlank reports whether value carries no content: nil, false, whitespace-only
// strings, NaN, empty maps, and slices that are empty or hold only blank items.
// Times are never blank.
func IsBlank(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return strings.TrimSpace(v) == ""
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case time.Time, *time.Time:
		return false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
	case reflect.Map:
		return rv.Len() == 0
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !IsBlank(rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}

	if l, ok := value.(lengther); ok {
		return l.Len() == 0
	}
	return false
}

// IsPresent is the negation of IsBlank
func IsPresent(value interface{}) bool {
	return !IsBlank(value)
}

// IsFalsy reports whether value is nil, false, a numeric zero, NaN or the empty string
func IsFalsy(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0 || math.IsNaN(rv.Float())
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
