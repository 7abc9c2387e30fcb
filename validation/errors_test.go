package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entitykit/entitykit/utils"
	"github.com/entitykit/entitykit/validation"
)

type labels map[string]string

func (l labels) HumanAttributeName(attr string) string {
	if attr == validation.Base {
		return ""
	}
	if label, ok := l[attr]; ok {
		return label
	}
	return utils.Humanize(attr)
}

func TestErrorsAdd(t *testing.T) {
	errs := validation.NewErrors(labels{}, nil)
	assert.True(t, errs.IsEmpty())

	assert.Equal(t, []string{"is required"}, errs.Add("name", "is required"))
	assert.Equal(t, []string{"is required", "is too short"}, errs.Add("name", "is too short"))
	errs.Add("age", "must be positive")

	assert.False(t, errs.IsEmpty())
	assert.Equal(t, []string{"name", "age"}, errs.Attributes())
	assert.Equal(t, 3, errs.Len())
	assert.Equal(t, []string{"must be positive"}, errs.Get("age"))
	assert.Nil(t, errs.Get("missing"))
}

func TestErrorsAddExternal(t *testing.T) {
	var entries []validation.ExternalError
	require.NoError(t, json.Unmarshal([]byte(`[
		{"field": "email", "detail": "has already been taken"},
		{"field": "base", "detail": "account is locked"}
	]`), &entries))

	errs := validation.NewErrors(labels{}, nil)
	errs.AddExternal(entries)

	assert.Equal(t, []string{"Email has already been taken", "Account is locked"}, errs.FullMessages())
}

func TestErrorsInitialValue(t *testing.T) {
	tests := []struct {
		name     string
		initial  interface{}
		expected map[string][]string
		keys     []string
	}{
		{
			name:     "string seeds base",
			initial:  "  something went wrong ",
			expected: map[string][]string{"base": {"something went wrong"}},
			keys:     []string{"base"},
		},
		{
			name:     "blank string",
			initial:  "   ",
			expected: map[string][]string{},
		},
		{
			name:     "list of strings and nested shapes",
			initial:  []interface{}{"first", map[string]interface{}{"name": []interface{}{"is required"}}, "second"},
			expected: map[string][]string{"base": {"first", "second"}, "name": {"is required"}},
			keys:     []string{"base", "name"},
		},
		{
			name: "keyed structure folds indexed keys into base",
			initial: map[string]interface{}{
				"cars[0]": []string{"price is negative"},
				"cars[1]": "name is required",
				"name":    []string{"is required"},
			},
			expected: map[string][]string{
				"base": {"price is negative", "name is required"},
				"name": {"is required"},
			},
			keys: []string{"base", "name"},
		},
		{
			name:     "keyed structure always has base",
			initial:  map[string][]string{"age": {"is too low"}},
			expected: map[string][]string{"base": {}, "age": {"is too low"}},
			keys:     []string{"base", "age"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validation.NewErrors(labels{}, tt.initial)
			assert.Equal(t, tt.expected, errs.Messages())
			assert.Equal(t, tt.keys, errs.Attributes())
		})
	}
}

func TestErrorsIsEmptyWithEmptyBase(t *testing.T) {
	errs := validation.NewErrors(labels{}, map[string]interface{}{})
	assert.Equal(t, []string{"base"}, errs.Attributes())
	assert.False(t, errs.IsEmpty())

	errs.Clear()
	assert.True(t, errs.IsEmpty())

	errs.Add(validation.Base, "is locked")
	assert.False(t, errs.IsEmpty())
}

func TestErrorsNilAggregator(t *testing.T) {
	errs := validation.NewErrors(labels{}, (*validation.Errors)(nil))

	assert.True(t, errs.IsEmpty())
	assert.Empty(t, errs.Attributes())
}

func TestErrorsNestedShapesAppendOnCollision(t *testing.T) {
	errs := validation.NewErrors(labels{}, []interface{}{
		"first",
		map[string]interface{}{"base": "nested", "name": "is required"},
		[]interface{}{map[string]interface{}{"name": "is taken"}},
	})

	assert.Equal(t, []string{"first", "nested"}, errs.Get(validation.Base))
	assert.Equal(t, []string{"is required", "is taken"}, errs.Get("name"))
	assert.Equal(t, []string{"base", "name"}, errs.Attributes())
}

func TestErrorsFullMessages(t *testing.T) {
	errs := validation.NewErrors(labels{"name": "Full name"}, nil)
	errs.Add("name", "is required")
	errs.Add("created_at", "is in the future")
	errs.Add("base", "record_is_locked")
	errs.Add("firstName", "")

	assert.Equal(t, []string{
		"Full name is required",
		"Created at is in the future",
		"Record is locked",
		"First Name",
	}, errs.FullMessages())

	assert.Equal(t, []string{
		"Is required",
		"Is in the future",
		"Record is locked",
		"",
	}, errs.FullMessages(validation.FullMessagesOptions{ForceBase: true}))
}

func TestErrorsClone(t *testing.T) {
	errs := validation.NewErrors(labels{}, nil)
	errs.Add("name", "is required")

	clone := errs.Clone()
	clone.Add("name", "is too short")
	clone.Clear()
	clone.Add("age", "is required")

	assert.Equal(t, map[string][]string{"name": {"is required"}}, errs.Messages())
	assert.Equal(t, map[string][]string{"age": {"is required"}}, clone.Messages())
	assert.Equal(t, []string{"Age is required"}, clone.FullMessages())
}

func TestErrorsMessagesIsACopy(t *testing.T) {
	errs := validation.NewErrors(labels{}, nil)
	errs.Add("name", "is required")

	messages := errs.Messages()
	messages["name"][0] = "changed"
	delete(messages, "name")

	assert.Equal(t, []string{"is required"}, errs.Get("name"))
}

func TestErrorsJSON(t *testing.T) {
	errs := validation.NewErrors(labels{}, nil)
	errs.Add("name", "is required")

	data, err := json.Marshal(errs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": ["is required"]}`, string(data))
	assert.Equal(t, "Name is required", errs.String())
}
