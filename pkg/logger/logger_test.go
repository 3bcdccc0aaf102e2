package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestInit_IsSingleton(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Service: "movie-catalog", Output: &first})
	Init(Options{Level: "debug", Output: &second})

	component := Component("catalog")
	component.Info().Msg("hello")
	root := Get()
	root.Debug().Msg("dropped")

	assert.Zero(t, second.Len(), "second Init must not replace the logger")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(first.Bytes(), &entry))
	assert.Equal(t, "movie-catalog", entry["service"])
	assert.Equal(t, "catalog", entry["component"])
	assert.Equal(t, "hello", entry["message"])
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.Panics(t, func() { Get() })
}
