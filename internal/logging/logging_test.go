package logging

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-projectform/internal/config"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.WithField("title", "House").Debug("project added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "project added", entry["msg"])
	assert.Equal(t, "House", entry["title"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	_, err = New(config.LogConfig{Level: "loud"}, &buf)
	assert.Error(t, err)
}
