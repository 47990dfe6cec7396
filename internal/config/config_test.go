package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "obabel", cfg.Tools.ObabelPath)
	assert.Equal(t, "vina", cfg.Tools.VinaPath)
	assert.Equal(t, 2*time.Minute, cfg.Tools.ConvertTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Tools.DockTimeout)
	assert.Equal(t, 2, cfg.Tools.RetryAttempts)

	assert.Equal(t, 20, cfg.Docking.NumPoses)
	assert.Equal(t, 10, cfg.Docking.Exhaustiveness)
	assert.Equal(t, 10.0, cfg.Docking.Padding)
	assert.Equal(t, 0.375, cfg.Docking.Spacing)
	assert.Equal(t, "gasteiger", cfg.Docking.ChargeMethod)
	assert.Equal(t, 7.4, cfg.Docking.ReceptorPH)

	assert.Equal(t, "results", cfg.Run.OutputDir)
	assert.Equal(t, 4, cfg.Run.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Docking.NumPoses = 5
	cfg.Tools.VinaPath = "/opt/vina/bin/vina"
	ApplyDefaults(cfg)

	assert.Equal(t, 5, cfg.Docking.NumPoses)
	assert.Equal(t, "/opt/vina/bin/vina", cfg.Tools.VinaPath)
}

func TestApplyDefaults_NilConfig(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty obabel path", func(c *Config) { c.Tools.ObabelPath = "" }},
		{"empty vina path", func(c *Config) { c.Tools.VinaPath = "" }},
		{"zero convert timeout", func(c *Config) { c.Tools.ConvertTimeout = 0 }},
		{"zero dock timeout", func(c *Config) { c.Tools.DockTimeout = 0 }},
		{"zero retry attempts", func(c *Config) { c.Tools.RetryAttempts = 0 }},
		{"zero poses", func(c *Config) { c.Docking.NumPoses = 0 }},
		{"negative exhaustiveness", func(c *Config) { c.Docking.Exhaustiveness = -1 }},
		{"negative padding", func(c *Config) { c.Docking.Padding = -0.5 }},
		{"zero spacing", func(c *Config) { c.Docking.Spacing = 0 }},
		{"empty charge method", func(c *Config) { c.Docking.ChargeMethod = "" }},
		{"pH out of range", func(c *Config) { c.Docking.ReceptorPH = 15 }},
		{"zero workers", func(c *Config) { c.Run.Workers = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_PaddingZeroAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Docking.Padding = 0
	assert.NoError(t, cfg.Validate())
}
