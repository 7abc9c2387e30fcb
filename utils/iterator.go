package utils

import (
	"reflect"
)

var boolType = reflect.TypeOf(true)

// seqArity returns 1 for iter.Seq[V], 2 for iter.Seq2[K, V] and 0 otherwise
func seqArity(v reflect.Value) int {
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}

	t := v.Type()
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return 0
	}

	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumOut() != 1 || yield.Out(0) != boolType {
		return 0
	}

	switch yield.NumIn() {
	case 1, 2:
		return yield.NumIn()
	}
	return 0
}

// collectSeq drains the sequence into a slice of its values, keys of an
// iter.Seq2 are dropped
func collectSeq(v reflect.Value, arity int) reflect.Value {
	yieldType := v.Type().In(0)
	elemType := yieldType.In(arity - 1)
	result := reflect.MakeSlice(reflect.SliceOf(elemType), 0, 0)

	yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
		result = reflect.Append(result, args[arity-1])
		return []reflect.Value{reflect.ValueOf(true)}
	})

	v.Call([]reflect.Value{yield})
	return result
}

// ConvertIteratorToSlice converts iter.Seq[V] and iter.Seq2[K, V] to []V
func ConvertIteratorToSlice(v reflect.Value) (reflect.Value, bool) {
	if arity := seqArity(v); arity > 0 {
		return collectSeq(v, arity), true
	}

	return v, false
}
