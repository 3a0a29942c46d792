package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"api_key", "abc", "model", "gemini-2.5-flash", "Authorization", "Bearer x"})
	assert.Equal(t, []interface{}{"api_key", "[REDACTED]", "model", "gemini-2.5-flash", "Authorization", "[REDACTED]"}, out)
}

func TestSanitizeOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"skills", 2, "dangling"})
	assert.Equal(t, []interface{}{"skills", 2, "dangling"}, out)
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("request_id", "r-1").Info("plan generated", "lessons", 2, "token", "t")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "plan generated", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "r-1", ctx["request_id"])
	assert.EqualValues(t, 2, ctx["lessons"])
	assert.Equal(t, "[REDACTED]", ctx["token"])
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		require.NoError(t, err)
		require.NotNil(t, l.SugaredLogger)
	}
}
