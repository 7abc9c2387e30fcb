package logger

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZerologLogger(t *testing.T) {
	var buf bytes.Buffer

	adapter := NewZerologLogger(zerolog.New(&buf), Config{
		LogLevel:      Warn,
		SlowThreshold: time.Second,
	})

	require.NotNil(t, adapter)
	assert.Equal(t, Warn, adapter.(*ZerologLogger).LogLevel)
	assert.Equal(t, time.Second, adapter.(*ZerologLogger).SlowThreshold)

	infoLogger := adapter.LogMode(Info)
	assert.Equal(t, Info, infoLogger.(*ZerologLogger).LogLevel)
	assert.Equal(t, Warn, adapter.(*ZerologLogger).LogLevel)
}

func TestZerologLogger_LogLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf), Config{LogLevel: Warn})

	logger.Info(ctx, "hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Warn(ctx, "coerced %s", "company")
	assert.Contains(t, buf.String(), "coerced company")
	assert.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	logger.Error(ctx, "broken %s", "schema")
	assert.Contains(t, buf.String(), "broken schema")
	assert.Contains(t, buf.String(), "zerolog_test.go")
}

func TestZerologLogger_Trace(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf), Config{
		LogLevel:      Info,
		SlowThreshold: 100 * time.Millisecond,
	})

	t.Run("Normal trace", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "validate Car", 0
		}, nil)

		output := buf.String()
		assert.Contains(t, output, `"op":"validate Car"`)
		assert.Contains(t, output, `"affected":0`)
		assert.Contains(t, output, `"level":"info"`)
	})

	t.Run("Slow operation", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) {
			return "add_nested Person.cars", 1
		}, nil)

		output := buf.String()
		assert.Contains(t, output, "slow_threshold")
		assert.Contains(t, output, `"level":"warn"`)
	})

	t.Run("Error trace", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "update_nested Person.cars", -1
		}, fmt.Errorf("cars: %w", ErrInvalidRelationKey))

		output := buf.String()
		assert.Contains(t, output, `"level":"error"`)
		assert.Contains(t, output, "invalid relation key")
		assert.NotContains(t, output, "affected")
	})

	t.Run("Entity fields", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "Person.add_nested(cars)", 1
		}, nil)

		output := buf.String()
		assert.Contains(t, output, `"entity":"Person"`)
		assert.Contains(t, output, `"relation":"cars"`)

		buf.Reset()
		logger.Trace(ctx, time.Now(), func() (string, int64) {
			return "Person.validate", 0
		}, nil)

		output = buf.String()
		assert.Contains(t, output, `"entity":"Person"`)
		assert.NotContains(t, output, "relation")
	})

	t.Run("Silent", func(t *testing.T) {
		buf.Reset()
		logger.LogMode(Silent).Trace(ctx, time.Now(), func() (string, int64) {
			t.Fatal("fc must not be evaluated when silent")
			return "", 0
		}, assert.AnError)
		assert.Empty(t, buf.String())
	})
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, ZerologLevel(Silent))
	assert.Equal(t, zerolog.ErrorLevel, ZerologLevel(Error))
	assert.Equal(t, zerolog.WarnLevel, ZerologLevel(Warn))
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel(Info))
}
