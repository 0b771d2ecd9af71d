// Package config provides run configuration for confaudit, layered from
// defaults, an optional confaudit.yaml, and CONFAUDIT_* environment
// variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// PlotsDirName is the subdirectory of the output directory that holds
// rendered charts.
const PlotsDirName = "plots"

// Config holds all tunable settings for a pipeline run.
type Config struct {
	Schema    SchemaConfig    `mapstructure:"schema"`
	Aggregate AggregateConfig `mapstructure:"aggregate"`
	Server    ServerConfig    `mapstructure:"server"`
}

// SchemaConfig selects the document schema.
type SchemaConfig struct {
	// Path to a schema YAML file. Empty means the built-in default schema.
	Path string `mapstructure:"path"`
}

// AggregateConfig tunes the DuckDB-backed row store.
type AggregateConfig struct {
	BatchSize int    `mapstructure:"batch_size"`
	TempDir   string `mapstructure:"temp_dir"`
}

// ServerConfig configures the report server started by `confaudit serve`.
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	BindAddress string `mapstructure:"bind_address"`
}

// SetDefaults configures default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("schema.path", "")
	v.SetDefault("aggregate.batch_size", 500)
	v.SetDefault("aggregate.temp_dir", os.TempDir())
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.bind_address", "127.0.0.1")
}

// Load reads configuration from defaults, an optional confaudit.yaml in the
// working directory, and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CONFAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	v.SetConfigName("confaudit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper loads configuration from a prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Aggregate.BatchSize <= 0 {
		return errors.Newf("aggregate.batch_size must be positive, got %d", c.Aggregate.BatchSize)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Newf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// EnsureDirectories creates the output directory tree for a run.
func EnsureDirectories(outputDir string) error {
	for _, dir := range []string{outputDir, filepath.Join(outputDir, PlotsDirName)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}
	return nil
}
