package entitykit_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entitykit/entitykit"
	"github.com/entitykit/entitykit/logger"
)

func TestResolveBelongsTo(t *testing.T) {
	fromAttrs := newPerson(entitykit.Attrs{"employer": entitykit.Attrs{"name": "ACME"}})
	employer := fromAttrs.BelongsTo("employer")
	require.NotNil(t, employer)
	assert.Same(t, companySchema, employer.Schema())
	assert.Equal(t, "ACME", employer.Get("name"))

	fromMap := newPerson(entitykit.Attrs{"employer": map[string]interface{}{"name": "Initech"}})
	assert.Equal(t, "Initech", fromMap.BelongsTo("employer").Get("name"))

	fromStrings := newPerson(entitykit.Attrs{"employer": map[string]string{"name": "Globex"}})
	assert.Equal(t, "Globex", fromStrings.BelongsTo("employer").Get("name"))

	reused := newPerson(entitykit.Attrs{"employer": employer})
	assert.Same(t, employer, reused.BelongsTo("employer"))

	for _, falsy := range []interface{}{nil, false, "", 0, (*entitykit.Entity)(nil)} {
		assert.Nil(t, newPerson(entitykit.Attrs{"employer": falsy}).Get("employer"), "%#v", falsy)
	}
}

func TestResolveBelongsToOtherSchema(t *testing.T) {
	car := newCar(entitykit.Attrs{"id": 9, "name": "Civic", "price": 90000})
	person := newPerson(entitykit.Attrs{"employer": car})

	employer := person.BelongsTo("employer")
	require.NotNil(t, employer)
	assert.NotSame(t, car, employer)
	assert.Same(t, companySchema, employer.Schema())
	assert.Equal(t, "Civic", employer.Get("name"))
	assert.Equal(t, 9, employer.EntityID())
}

func TestResolveBelongsToUnsupported(t *testing.T) {
	buf, log := bufferLogger(logger.Warn)
	person := newPerson(entitykit.Attrs{"employer": 42}, entitykit.WithLogger(log))

	employer := person.BelongsTo("employer")
	require.NotNil(t, employer)
	assert.Equal(t, "", employer.Get("name"))
	assert.Contains(t, buf.String(), "can not build Company from int")
}

func TestResolveHasManyShapes(t *testing.T) {
	civic := newCar(entitykit.Attrs{"name": "Civic"})
	gol := newCar(entitykit.Attrs{"name": "Gol"})

	tests := map[string]struct {
		value interface{}
		names []string
	}{
		"attrs slice":  {value: []entitykit.Attrs{{"name": "Civic"}, {"name": "Gol"}}, names: []string{"Civic", "Gol"}},
		"decoded json": {value: []interface{}{map[string]interface{}{"name": "Civic"}, map[string]interface{}{"name": "Gol"}}, names: []string{"Civic", "Gol"}},
		"entities":     {value: []*entitykit.Entity{civic, gol}, names: []string{"Civic", "Gol"}},
		"collection":   {value: entitykit.NewCollection(civic, gol), names: []string{"Civic", "Gol"}},
		"keyed map":    {value: map[string]entitykit.Attrs{"b": {"name": "Gol"}, "a": {"name": "Civic"}}, names: []string{"Civic", "Gol"}},
		"iterator":     {value: slices.Values([]entitykit.Attrs{{"name": "Civic"}, {"name": "Gol"}}), names: []string{"Civic", "Gol"}},
		"array":        {value: [1]entitykit.Attrs{{"name": "Civic"}}, names: []string{"Civic"}},
		"nil items":    {value: []interface{}{nil, entitykit.Attrs{"name": "Gol"}, (*entitykit.Entity)(nil)}, names: []string{"Gol"}},
		"nil":          {value: nil, names: nil},
		"false":        {value: false, names: nil},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			person := newPerson(entitykit.Attrs{"cars": test.value})

			var names []string
			for _, car := range person.Array("cars") {
				assert.Same(t, carSchema, car.Schema())
				names = append(names, car.Get("name").(string))
			}
			assert.Equal(t, test.names, names)
		})
	}
}

func TestResolveHasManyKeepsEntities(t *testing.T) {
	civic := newCar(entitykit.Attrs{"name": "Civic"})
	person := newPerson(entitykit.Attrs{"cars": []*entitykit.Entity{civic}})

	assert.Same(t, civic, person.HasMany("cars").Get(civic.IDOrToken()))
}

func TestResolveHasManyCollisions(t *testing.T) {
	person := newPerson(entitykit.Attrs{"cars": []entitykit.Attrs{
		{"id": 1, "name": "a"},
		{"id": 2, "name": "b"},
		{"id": 1, "name": "c"},
	}})

	cars := person.HasMany("cars")
	assert.Equal(t, []interface{}{1, 2}, cars.Keys())
	assert.Equal(t, "c", cars.Get(1).Get("name"))
}

func TestResolveHasManyUnsupported(t *testing.T) {
	buf, log := bufferLogger(logger.Warn)
	person := newPerson(entitykit.Attrs{"cars": 42}, entitykit.WithLogger(log))

	assert.Equal(t, 0, person.HasMany("cars").Len())
	assert.Contains(t, buf.String(), "can not build a collection from int")
}

func TestNestedEntitiesShareConfig(t *testing.T) {
	person := newPerson(entitykit.Attrs{
		"employer": entitykit.Attrs{"name": "ACME"},
		"cars":     []entitykit.Attrs{{"name": "Civic"}},
	}, sequentialTokens())

	tokens := map[string]bool{person.Token(): true, person.BelongsTo("employer").Token(): true}
	for _, car := range person.Array("cars") {
		tokens[car.Token()] = true
		assert.Equal(t, fixedNow, car.CreatedAt())
	}
	assert.Len(t, tokens, 3)
	for token := range tokens {
		assert.Regexp(t, `^token-\d+$`, token)
	}
}
