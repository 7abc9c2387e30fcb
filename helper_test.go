package entitykit_test

import (
	"bytes"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/entitykit/entitykit"
	"github.com/entitykit/entitykit/logger"
	"github.com/entitykit/entitykit/schema"
	"github.com/entitykit/entitykit/validation"
)

var (
	fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	carSchema = &schema.Schema{
		Name:              "Car",
		DefaultAttributes: map[string]interface{}{"name": "", "price": 0},
	}

	companySchema = &schema.Schema{
		Name:              "Company",
		DefaultAttributes: map[string]interface{}{"name": ""},
	}

	personSchema = &schema.Schema{
		Name:              "Person",
		DefaultAttributes: map[string]interface{}{"name": "", "age": 0},
		BelongsTo:         []schema.Relation{{Name: "employer", Schema: companySchema}},
		HasMany:           []schema.Relation{{Name: "cars", Schema: carSchema}},
		Validates: []schema.Validation{
			{Field: "name", Rules: []validation.Rule{validation.Required()}},
		},
		AttributeNames: map[string]string{"dob": "Date of birth"},
	}
)

func sequentialTokens() entitykit.Option {
	var n int64
	return entitykit.WithTokenFunc(func() string {
		return fmt.Sprintf("token-%d", atomic.AddInt64(&n, 1))
	})
}

func testOptions() []entitykit.Option {
	return []entitykit.Option{
		entitykit.WithLogger(logger.Discard),
		entitykit.WithNowFunc(func() time.Time { return fixedNow }),
	}
}

func newPerson(attrs entitykit.Attrs, opts ...entitykit.Option) *entitykit.Entity {
	return entitykit.New(personSchema, attrs, append(testOptions(), opts...)...)
}

func bufferLogger(level logger.LogLevel) (*bytes.Buffer, logger.Interface) {
	var buf bytes.Buffer
	return &buf, logger.New(log.New(&buf, "", 0), logger.Config{LogLevel: level})
}
