package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
}

func TestJSONOutsideLocal(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	log := NewWithOutput(&buf)
	log.WithRun().WithField("component", "test").Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "test", line["component"])
	assert.NotEmpty(t, line["run_id"])
}

func TestWithError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	var buf bytes.Buffer
	log := NewWithOutput(&buf)
	log.WithError(errors.New("boom")).Error("failed")
	log.WithError(nil).Info("no error")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "boom", first["error"])
	assert.NotContains(t, second, "error")
}

func TestDebugSuppressedByDefault(t *testing.T) {
	t.Setenv("ENVIRONMENT", "local")
	t.Setenv("LOG_LEVEL", "")

	var buf bytes.Buffer
	log := NewWithOutput(&buf)
	log.Debug("hidden")
	assert.Empty(t, buf.String())
}
