package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.True(t, cfg.Server.CSRF)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "createProject", cfg.Form.Operation)
	assert.Empty(t, cfg.Form.Definition)
	assert.Equal(t, "pongo2", cfg.Template.Engine)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "projectform.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  port: 9090
  csrf: false
log:
  format: json
theme:
  variant: dark
template:
  engine: go-template
`), 0o600))
	t.Setenv("PROJECTFORM_LOG_LEVEL", "debug")

	v := viper.New()
	Configure(v, file)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Server.CSRF)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "dark", cfg.Theme.Variant)
	assert.Equal(t, "go-template", cfg.Template.Engine)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "port", key: "server.port", value: 70000},
		{name: "host", key: "server.host", value: "local;host"},
		{name: "level", key: "log.level", value: "chatty"},
		{name: "format", key: "log.format", value: "xml"},
		{name: "operation", key: "form.operation", value: " "},
		{name: "template engine", key: "template.engine", value: "mustache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}
