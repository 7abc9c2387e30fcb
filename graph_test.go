package entitykit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entitykit/entitykit"
	. "github.com/entitykit/entitykit/utils/tests"
)

func TestUserGraph(t *testing.T) {
	attrs := GetUser("graph", Config{Account: true, Pets: 2, Toys: 3, Company: true, Manager: true})
	user := entitykit.New(User, attrs, testOptions()...)

	AssertAttrs(t, user, attrs, "name", "age", "birthday")
	AssertEqual(t, user.BelongsTo("account").Get("number"), "graph_account")
	AssertEqual(t, user.BelongsTo("company").Get("name"), "company-graph")

	manager := user.BelongsTo("manager")
	require.NotNil(t, manager)
	assert.Same(t, User, manager.Schema())
	AssertEqual(t, manager.Get("name"), "graph_manager")
	assert.Nil(t, manager.Get("manager"))
	assert.Equal(t, 0, manager.HasMany("pets").Len())

	var petNames []interface{}
	for _, pet := range user.Array("pets") {
		petNames = append(petNames, pet.Get("name"))
	}
	AssertEqual(t, petNames, []interface{}{"graph_pet_1", "graph_pet_2"})
	assert.Equal(t, 3, user.HasMany("toys").Len())
}

func TestUserGraphRoundTrip(t *testing.T) {
	user := entitykit.New(User, GetUser("trip", Config{Pets: 2, Toys: 1, Company: true, Manager: true}), testOptions()...)
	rebuilt := entitykit.New(User, user.ToParams(), testOptions()...)

	assert.Equal(t, StripVolatile(user.ToParams()), StripVolatile(rebuilt.ToParams()))
}

func TestUserGraphValidation(t *testing.T) {
	user := entitykit.New(User, GetUser("x", Config{Pets: 4}), testOptions()...).Validate()

	assert.Equal(t, []string{
		"Name is too short (minimum is 2 characters)",
		"Pets must have at most 3 items",
	}, user.Errors().FullMessages())

	user, pet, err := user.AddNested("pets", nil)
	require.NoError(t, err)
	assert.True(t, pet.Validate().Errors().Get("name") != nil)

	user, pets, err := user.UpdateManyNested("pets", entitykit.Attrs{"user_id": 1})
	require.NoError(t, err)
	assert.Len(t, pets, 5)
	for _, pet := range user.Array("pets") {
		AssertEqual(t, pet.Get("user_id"), 1)
	}
}

func TestNestedToysThroughPets(t *testing.T) {
	user := entitykit.New(User, GetUser("deep", Config{Pets: 1}), testOptions()...)
	pet := user.Array("pets")[0]

	pet, toy, err := pet.AddNested("toys", entitykit.Attrs{"name": "ball"})
	require.NoError(t, err)

	user, _, err = user.UpdateNested("pets", pet.IDOrToken(), entitykit.Attrs{"toys": pet.HasMany("toys")})
	require.NoError(t, err)

	stored := user.HasMany("pets").Get(pet.IDOrToken())
	require.NotNil(t, stored)
	assert.Same(t, toy, stored.HasMany("toys").Get(toy.IDOrToken()))
}
