package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(t, Field{Key: "f", Value: 1.5}, Float64("f", 1.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestNewLogger_Defaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
	// Must not panic on a full round of calls.
	log.Info("msg", String("k", "v"))
	log.With(Int("run", 1)).Named("sub").Debug("quiet")
}

func TestNewLogger_InvalidOutputPath(t *testing.T) {
	_, err := NewLogger(LogConfig{OutputPaths: []string{"/nonexistent-dir-xyz/out.log"}})
	assert.Error(t, err)
}

func TestZapFieldTranslation(t *testing.T) {
	fields := toZapFields([]Field{
		String("s", "x"),
		Int("i", 2),
		Float64("f", 3.5),
		Bool("b", false),
		Duration("d", time.Minute),
		Any("a", []int{1}),
	})
	require.Len(t, fields, 6)
	assert.Equal(t, zap.String("s", "x"), fields[0])
	assert.Equal(t, zap.Int("i", 2), fields[1])
	assert.Equal(t, zap.Float64("f", 3.5), fields[2])
}

func TestNopLogger(t *testing.T) {
	log := NewNop()
	log.Info("discarded")
	assert.Equal(t, log, log.With(String("k", "v")))
	assert.Equal(t, log, log.Named("child"))
}
