package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "VINAUTO"

// newViper builds a pre-configured Viper instance with the standard settings:
// YAML file type, VINAUTO_ env prefix, automatic env binding, and a key
// replacer that maps "." to "_" so that nested keys like "tools.vina_path"
// resolve to "VINAUTO_TOOLS_VINA_PATH".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Viper only consults the environment for keys it already knows about,
	// so every key is registered with a zero default; ApplyDefaults fills in
	// the real defaults after unmarshalling.
	for _, key := range []string{
		"tools.obabel_path", "tools.vina_path", "tools.convert_timeout",
		"tools.dock_timeout", "tools.retry_attempts", "tools.retry_backoff",
		"docking.num_poses", "docking.exhaustiveness", "docking.padding",
		"docking.spacing", "docking.charge_method", "docking.receptor_ph",
		"run.output_dir", "run.workers",
		"log.level", "log.format", "log.output_paths",
	} {
		v.SetDefault(key, nil)
	}
	return v
}

// Load reads the YAML file at configPath, merges any VINAUTO_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from VINAUTO_* environment variables
// and defaults, with no config file required.  This is the path taken when
// the user passes no --config flag.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// unmarshalAndFinalize unmarshals viper state into a Config, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}
