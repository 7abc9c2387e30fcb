package tests

import (
	"fmt"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/entitykit/entitykit"
	"github.com/entitykit/entitykit/schema"
	"github.com/entitykit/entitykit/utils"
)

type Config struct {
	Account bool
	Pets    int
	Toys    int
	Company bool
	Manager bool
}

// GetUser returns construction attrs for a User graph
func GetUser(name string, config Config) entitykit.Attrs {
	var (
		birthday = time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
		user     = entitykit.Attrs{
			"name":     name,
			"age":      18,
			"birthday": birthday,
		}
	)

	if config.Account {
		user["account"] = entitykit.Attrs{"number": name + "_account"}
	}

	var pets []entitykit.Attrs
	for i := 0; i < config.Pets; i++ {
		pets = append(pets, entitykit.Attrs{"name": name + "_pet_" + strconv.Itoa(i+1)})
	}
	user["pets"] = pets

	var toys []entitykit.Attrs
	for i := 0; i < config.Toys; i++ {
		toys = append(toys, entitykit.Attrs{"name": name + "_toy_" + strconv.Itoa(i+1), "owner_type": "users"})
	}
	user["toys"] = toys

	if config.Company {
		user["company"] = entitykit.Attrs{"name": "company-" + name}
	}

	if config.Manager {
		user["manager"] = GetUser(name+"_manager", Config{})
	}

	return user
}

// StripVolatile drops tokens and error aggregators from params, recursively
func StripVolatile(params entitykit.Attrs) entitykit.Attrs {
	stripped := entitykit.Attrs{}
	for key, value := range params {
		switch key {
		case schema.TokenField, schema.ErrorsField:
			continue
		}

		switch v := value.(type) {
		case entitykit.Attrs:
			stripped[key] = StripVolatile(v)
		case []entitykit.Attrs:
			list := make([]entitykit.Attrs, len(v))
			for i, item := range v {
				list[i] = StripVolatile(item)
			}
			stripped[key] = list
		default:
			stripped[key] = value
		}
	}
	return stripped
}

// AssertAttrs checks the listed fields of e against expect
func AssertAttrs(t *testing.T, e *entitykit.Entity, expect entitykit.Attrs, names ...string) {
	for _, name := range names {
		got := e.Get(name)
		t.Run(name, func(t *testing.T) {
			AssertEqual(t, got, expect[name])
		})
	}
}

func AssertEqual(t *testing.T, got, expect interface{}) {
	if reflect.DeepEqual(got, expect) {
		return
	}

	if curTime, ok := got.(time.Time); ok {
		if expectTime, ok := expect.(time.Time); ok {
			format := "2006-01-02T15:04:05Z07:00"
			if curTime.Round(time.Second).UTC().Format(format) != expectTime.Round(time.Second).UTC().Format(format) {
				t.Errorf("%v: expect: %v, got %v after time round", utils.FileWithLineNum(), expectTime, curTime)
			}
			return
		}
	}

	if fmt.Sprint(got) == fmt.Sprint(expect) {
		return
	}

	if reflect.ValueOf(got).Kind() == reflect.Slice && reflect.ValueOf(expect).Kind() == reflect.Slice {
		gv, ev := reflect.ValueOf(got), reflect.ValueOf(expect)
		if gv.Len() != ev.Len() {
			t.Errorf("%v: expects length: %v, got %v (expects: %+v, got %+v)", utils.FileWithLineNum(), ev.Len(), gv.Len(), expect, got)
			return
		}
		for i := 0; i < gv.Len(); i++ {
			t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
				AssertEqual(t, gv.Index(i).Interface(), ev.Index(i).Interface())
			})
		}
		return
	}

	t.Errorf("%v: expect: %#v, got %#v", utils.FileWithLineNum(), expect, got)
}
