// Package config loads graphnav settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. GRAPHNAV_SERVER_ADDR.
const EnvPrefix = "GRAPHNAV"

type Config struct {
	Database struct {
		Driver string `mapstructure:"driver" yaml:"driver" validate:"oneof=postgres sqlite"`
		URL    string `mapstructure:"url" yaml:"url" validate:"required"`
	} `mapstructure:"database" yaml:"database"`
	Server struct {
		Addr      string  `mapstructure:"addr" yaml:"addr" validate:"required"`
		RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit" validate:"min=0"`
		Burst     int     `mapstructure:"burst" yaml:"burst" validate:"min=0"`
	} `mapstructure:"server" yaml:"server"`
	Reach struct {
		MaxDepth int `mapstructure:"max_depth" yaml:"max_depth" validate:"min=1,max=10000"`
	} `mapstructure:"reach" yaml:"reach"`
	Log struct {
		Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
		Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
	} `mapstructure:"log" yaml:"log"`
	Telemetry struct {
		Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
		Endpoint string `mapstructure:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
	} `mapstructure:"telemetry" yaml:"telemetry"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.burst", 0)
	v.SetDefault("reach.max_depth", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
}

// Load reads the configuration. An empty path skips the YAML file; a
// missing .env file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("config: bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its constraints and reports all
// failures in one error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", fieldKey(fe.Namespace()), fe.Tag()))
	}
	return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
}

// YAML returns the effective configuration in file form with the database
// URL redacted.
func (c *Config) YAML() (string, error) {
	redacted := *c
	if redacted.Database.URL != "" {
		redacted.Database.URL = "<redacted>"
	}
	out, err := yaml.Marshal(&redacted)
	if err != nil {
		return "", fmt.Errorf("config: encode: %w", err)
	}
	return string(out), nil
}

// fieldKey turns "Config.Reach.MaxDepth" into "reach.maxdepth".
func fieldKey(namespace string) string {
	_, key, _ := strings.Cut(namespace, ".")
	return strings.ToLower(key)
}
