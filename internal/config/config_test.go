package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	// Isolated viper instance, no user config or environment.
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.Schema.Path != "" {
		t.Errorf("expected empty default schema path, got %q", cfg.Schema.Path)
	}
	if cfg.Aggregate.BatchSize != 500 {
		t.Errorf("expected default batch size 500, got %d", cfg.Aggregate.BatchSize)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFAUDIT_SERVER_PORT", "9999")
	t.Setenv("CONFAUDIT_SCHEMA_PATH", "custom-schema.yaml")

	// Isolated viper instance wired the same way Load wires it.
	v := viper.New()
	v.SetEnvPrefix("CONFAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected env-overridden port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Schema.Path != "custom-schema.yaml" {
		t.Errorf("expected env-overridden schema path, got %q", cfg.Schema.Path)
	}
	if cfg.Aggregate.BatchSize != 500 {
		t.Errorf("expected untouched default batch size 500, got %d", cfg.Aggregate.BatchSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid",
			config: Config{
				Aggregate: AggregateConfig{BatchSize: 100},
				Server:    ServerConfig{Port: 9000},
			},
		},
		{
			name: "zero batch size is invalid",
			config: Config{
				Aggregate: AggregateConfig{BatchSize: 0},
				Server:    ServerConfig{Port: 9000},
			},
			wantErr: true,
		},
		{
			name: "port out of range",
			config: Config{
				Aggregate: AggregateConfig{BatchSize: 100},
				Server:    ServerConfig{Port: 70000},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports")

	if err := EnsureDirectories(out); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, dir := range []string{out, filepath.Join(out, PlotsDirName)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}
