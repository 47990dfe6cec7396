package config

import "time"

// Default values.  Docking defaults follow the tool's documented CLI surface:
// 20 poses, exhaustiveness 10, padding 10 Angstrom.
const (
	DefaultObabelPath = "obabel"
	DefaultVinaPath   = "vina"

	DefaultConvertTimeout = 2 * time.Minute
	DefaultDockTimeout    = 30 * time.Minute
	DefaultRetryAttempts  = 2
	DefaultRetryBackoff   = 500 * time.Millisecond

	DefaultNumPoses       = 20
	DefaultExhaustiveness = 10
	DefaultPadding        = 10.0
	DefaultSpacing        = 0.375
	DefaultChargeMethod   = "gasteiger"
	DefaultReceptorPH     = 7.4

	DefaultOutputDir = "results"
	DefaultWorkers   = 4

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  It must run after unmarshalling and before
// Validate so that optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Tools.ObabelPath == "" {
		cfg.Tools.ObabelPath = DefaultObabelPath
	}
	if cfg.Tools.VinaPath == "" {
		cfg.Tools.VinaPath = DefaultVinaPath
	}
	if cfg.Tools.ConvertTimeout == 0 {
		cfg.Tools.ConvertTimeout = DefaultConvertTimeout
	}
	if cfg.Tools.DockTimeout == 0 {
		cfg.Tools.DockTimeout = DefaultDockTimeout
	}
	if cfg.Tools.RetryAttempts == 0 {
		cfg.Tools.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.Tools.RetryBackoff == 0 {
		cfg.Tools.RetryBackoff = DefaultRetryBackoff
	}

	if cfg.Docking.NumPoses == 0 {
		cfg.Docking.NumPoses = DefaultNumPoses
	}
	if cfg.Docking.Exhaustiveness == 0 {
		cfg.Docking.Exhaustiveness = DefaultExhaustiveness
	}
	if cfg.Docking.Padding == 0 {
		cfg.Docking.Padding = DefaultPadding
	}
	if cfg.Docking.Spacing == 0 {
		cfg.Docking.Spacing = DefaultSpacing
	}
	if cfg.Docking.ChargeMethod == "" {
		cfg.Docking.ChargeMethod = DefaultChargeMethod
	}
	if cfg.Docking.ReceptorPH == 0 {
		cfg.Docking.ReceptorPH = DefaultReceptorPH
	}

	if cfg.Run.OutputDir == "" {
		cfg.Run.OutputDir = DefaultOutputDir
	}
	if cfg.Run.Workers == 0 {
		cfg.Run.Workers = DefaultWorkers
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
