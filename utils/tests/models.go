package tests

import (
	"github.com/entitykit/entitykit/schema"
	"github.com/entitykit/entitykit/validation"
)

// User belongs to a Company and to a Manager (another User), and has many
// Pets and Toys. Every Pet has many Toys.
var (
	Toy = &schema.Schema{
		Name:              "Toy",
		DefaultAttributes: map[string]interface{}{"name": "", "owner_type": ""},
	}

	Pet = &schema.Schema{
		Name:              "Pet",
		DefaultAttributes: map[string]interface{}{"name": "", "user_id": nil},
		HasMany:           []schema.Relation{{Name: "toys", Schema: Toy}},
		Validates: []schema.Validation{
			{Field: "name", Rules: []validation.Rule{validation.Required()}},
		},
	}

	Company = &schema.Schema{
		Name:              "Company",
		DefaultAttributes: map[string]interface{}{"name": ""},
	}

	Account = &schema.Schema{
		Name:              "Account",
		DefaultAttributes: map[string]interface{}{"number": ""},
	}

	User = &schema.Schema{
		Name:              "User",
		DefaultAttributes: map[string]interface{}{"name": "", "age": 0, "birthday": nil, "active": false},
		HasMany: []schema.Relation{
			{Name: "pets", Schema: Pet},
			{Name: "toys", Schema: Toy},
		},
		Validates: []schema.Validation{
			{Field: "name", Rules: []validation.Rule{validation.Required(), validation.Length(2, 40)}},
			{Field: "pets", Rules: []validation.Rule{validation.Count(0, 3)}},
		},
		AttributeNames: map[string]string{"birthday": "Date of birth"},
	}
)

func init() {
	User.BelongsTo = []schema.Relation{
		{Name: "account", Schema: Account},
		{Name: "company", Schema: Company},
		{Name: "manager", Schema: User},
	}
}
