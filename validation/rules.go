package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	"github.com/entitykit/entitykit/utils"
)

// Record is the entity a rule is evaluated against
type Record interface {
	Get(field string) interface{}
}

// Result of a single rule
type Result struct {
	IsValid bool
	Message string
}

// Rule checks the value of one attribute, record gives access to the others
type Rule func(value interface{}, record Record) Result

func messageOr(message []string, fallback string) string {
	if len(message) > 0 && message[0] != "" {
		return message[0]
	}
	return fallback
}

// Func builds a rule from a predicate
func Func(fn func(value interface{}, record Record) bool, message string) Rule {
	return func(value interface{}, record Record) Result {
		return Result{IsValid: fn(value, record), Message: message}
	}
}

// WithMessage replaces the message rule reports on failure
func WithMessage(rule Rule, message string) Rule {
	if message == "" {
		return rule
	}
	return func(value interface{}, record Record) Result {
		result := rule(value, record)
		if !result.IsValid {
			result.Message = message
		}
		return result
	}
}

// Required fails on blank values
func Required(message ...string) Rule {
	msg := messageOr(message, "is required")
	return func(value interface{}, _ Record) Result {
		return Result{IsValid: utils.IsPresent(value), Message: msg}
	}
}

// Length checks the character count of strings and the size of lists and maps,
// a zero max means unbounded
func Length(min, max int) Rule {
	return func(value interface{}, _ Record) Result {
		size := sizeOf(value)
		switch {
		case size < min:
			return Result{Message: fmt.Sprintf("is too short (minimum is %d %s)", min, pluralize(min, "character"))}
		case max > 0 && size > max:
			return Result{Message: fmt.Sprintf("is too long (maximum is %d %s)", max, pluralize(max, "character"))}
		}
		return Result{IsValid: true}
	}
}

// Count checks the number of entities held by a collection, a zero max means unbounded
func Count(min, max int) Rule {
	return func(value interface{}, _ Record) Result {
		size := sizeOf(value)
		switch {
		case size < min:
			return Result{Message: fmt.Sprintf("must have at least %d %s", min, pluralize(min, "item"))}
		case max > 0 && size > max:
			return Result{Message: fmt.Sprintf("must have at most %d %s", max, pluralize(max, "item"))}
		}
		return Result{IsValid: true}
	}
}

// Format fails when a present value does not match re, blank values pass
func Format(re *regexp.Regexp, message ...string) Rule {
	msg := messageOr(message, "is invalid")
	return func(value interface{}, _ Record) Result {
		if utils.IsBlank(value) {
			return Result{IsValid: true, Message: msg}
		}

		str, ok := value.(string)
		if !ok {
			str = fmt.Sprint(value)
		}
		return Result{IsValid: re.MatchString(str), Message: msg}
	}
}

// Inclusion fails when value is not one of values
func Inclusion(values ...interface{}) Rule {
	return func(value interface{}, _ Record) Result {
		return Result{IsValid: utils.Contains(values, value), Message: "is not included in the list"}
	}
}

type lengther interface {
	Len() int
}

func sizeOf(value interface{}) int {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return utf8.RuneCountInString(v)
	case lengther:
		return v.Len()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len()
	case reflect.Pointer:
		if rv.IsNil() {
			return 0
		}
	}
	return 1
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return inflection.Plural(noun)
}
