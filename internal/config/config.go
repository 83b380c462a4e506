// Package config loads projectform settings through viper from a
// .projectform.yml file, PROJECTFORM_ environment variables, and bound flags.
package config

import (
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/goliatone/go-projectform/pkg/render/template/gotemplate"
)

// EnvPrefix prefixes every environment override, e.g. PROJECTFORM_SERVER_PORT.
const EnvPrefix = "PROJECTFORM"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Form     FormConfig     `mapstructure:"form"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Template TemplateConfig `mapstructure:"template"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	CSRF bool   `mapstructure:"csrf"`
}

// Addr joins host and port for listeners.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FormConfig points at an alternative form definition. Empty values select
// the bundled project definition and UI schema.
type FormConfig struct {
	Definition string `mapstructure:"definition"`
	Operation  string `mapstructure:"operation"`
	UISchema   string `mapstructure:"ui_schema"`
	Preset     string `mapstructure:"preset"`
}

type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// TemplateConfig picks the engine the HTML page template runs on.
type TemplateConfig struct {
	Engine string `mapstructure:"engine"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.csrf", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("form.operation", "createProject")
	v.SetDefault("template.engine", gotemplate.EnginePongo2)
}

// Configure points v at the config file and environment. An empty file
// searches for .projectform.yml in the working directory.
func Configure(v *viper.Viper, file string) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".projectform")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port %d is not in valid range 0-65535", cfg.Server.Port)
	}
	if strings.ContainsAny(cfg.Server.Host, " ;|&$`<>\"'\\") {
		return fmt.Errorf("server host %q contains invalid characters", cfg.Server.Host)
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q must be text or json", cfg.Log.Format)
	}
	if strings.TrimSpace(cfg.Form.Operation) == "" {
		return fmt.Errorf("form operation is required")
	}
	if !slices.Contains(gotemplate.Engines(), cfg.Template.Engine) {
		return fmt.Errorf("template engine %q must be one of %s", cfg.Template.Engine, strings.Join(gotemplate.Engines(), ", "))
	}
	return nil
}
