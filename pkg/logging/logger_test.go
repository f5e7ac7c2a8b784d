package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	FromContext(ctx).Info().Str("target", "postman").Msg("rendered")

	assert.Contains(t, buf.String(), `"target":"postman"`)
	assert.Same(t, Default(), FromContext(context.Background()))
}

func TestDiscardOutput(t *testing.T) {
	logger := NewLoggerFromConfig(&Config{Level: "info", Output: "discard"})
	logger.Info().Msg("nothing to see")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
