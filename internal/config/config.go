// Package config defines all configuration structures for the vinauto
// pipeline.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"time"

	"github.com/molscreen/vinauto/internal/logging"
)

// ToolsConfig holds resolution and invocation parameters for the two external
// collaborators: the format converter (Open Babel) and the docking engine
// (AutoDock Vina).
type ToolsConfig struct {
	// ObabelPath is the Open Babel binary: a bare name resolved on PATH or
	// an absolute path.
	ObabelPath string `mapstructure:"obabel_path"`

	// VinaPath is the AutoDock Vina binary, resolved the same way.
	VinaPath string `mapstructure:"vina_path"`

	// ConvertTimeout bounds a single obabel invocation.
	ConvertTimeout time.Duration `mapstructure:"convert_timeout"`

	// DockTimeout bounds a single vina invocation.  Docking runtime grows
	// with exhaustiveness and ligand size, so this default is generous.
	DockTimeout time.Duration `mapstructure:"dock_timeout"`

	// RetryAttempts is the maximum number of invocations per tool call when
	// the failure is classified as transient.  1 disables retries.
	RetryAttempts int `mapstructure:"retry_attempts"`

	// RetryBackoff is the initial delay before a retry; it doubles per attempt.
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// DockingConfig holds the search parameters forwarded to the docking engine
// and to the box calculation.
type DockingConfig struct {
	// NumPoses is the maximum number of conformations generated per ligand.
	NumPoses int `mapstructure:"num_poses"`

	// Exhaustiveness controls how thoroughly the engine samples the
	// conformational space; higher is slower and more accurate.
	Exhaustiveness int `mapstructure:"exhaustiveness"`

	// Padding is the extra distance, in Angstrom, added on every side of the
	// receptor bounding box when computing the search volume.
	Padding float64 `mapstructure:"padding"`

	// Spacing is the engine grid spacing in Angstrom.
	Spacing float64 `mapstructure:"spacing"`

	// ChargeMethod is the partial-charge assignment method passed to the
	// converter when producing docking-format ligands.
	ChargeMethod string `mapstructure:"charge_method"`

	// ReceptorPH is the protonation pH used while preparing the receptor.
	ReceptorPH float64 `mapstructure:"receptor_ph"`
}

// RunConfig holds batch-level execution parameters.
type RunConfig struct {
	// OutputDir is the root of the result tree.
	OutputDir string `mapstructure:"output_dir"`

	// Workers bounds the number of molecules processed concurrently.
	Workers int `mapstructure:"workers"`
}

// Config is the root configuration for the whole application.
type Config struct {
	Tools   ToolsConfig       `mapstructure:"tools"`
	Docking DockingConfig     `mapstructure:"docking"`
	Run     RunConfig         `mapstructure:"run"`
	Log     logging.LogConfig `mapstructure:"log"`
}

// Validate checks cross-field constraints that ApplyDefaults cannot repair.
// It returns the first violation found.
func (c *Config) Validate() error {
	if c.Tools.ObabelPath == "" {
		return fmt.Errorf("tools.obabel_path must not be empty")
	}
	if c.Tools.VinaPath == "" {
		return fmt.Errorf("tools.vina_path must not be empty")
	}
	if c.Tools.ConvertTimeout <= 0 {
		return fmt.Errorf("tools.convert_timeout must be positive, got %s", c.Tools.ConvertTimeout)
	}
	if c.Tools.DockTimeout <= 0 {
		return fmt.Errorf("tools.dock_timeout must be positive, got %s", c.Tools.DockTimeout)
	}
	if c.Tools.RetryAttempts < 1 {
		return fmt.Errorf("tools.retry_attempts must be at least 1, got %d", c.Tools.RetryAttempts)
	}
	if c.Docking.NumPoses <= 0 {
		return fmt.Errorf("docking.num_poses must be positive, got %d", c.Docking.NumPoses)
	}
	if c.Docking.Exhaustiveness <= 0 {
		return fmt.Errorf("docking.exhaustiveness must be positive, got %d", c.Docking.Exhaustiveness)
	}
	if c.Docking.Padding < 0 {
		return fmt.Errorf("docking.padding must be non-negative, got %g", c.Docking.Padding)
	}
	if c.Docking.Spacing <= 0 {
		return fmt.Errorf("docking.spacing must be positive, got %g", c.Docking.Spacing)
	}
	if c.Docking.ChargeMethod == "" {
		return fmt.Errorf("docking.charge_method must not be empty")
	}
	if c.Docking.ReceptorPH < 0 || c.Docking.ReceptorPH > 14 {
		return fmt.Errorf("docking.receptor_ph must be within [0, 14], got %g", c.Docking.ReceptorPH)
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("run.workers must be at least 1, got %d", c.Run.Workers)
	}
	return nil
}
