// Package cli defines the vinauto command tree: run (full screening batch),
// box (standalone search-volume calculation), and convert (one-off ligand
// preparation).
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/molscreen/vinauto/internal/config"
	"github.com/molscreen/vinauto/internal/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	ObabelPath string
	VinaPath   string
}

// setup loads configuration and builds the logger.  Flags the user actually
// set on the command line override whatever the config file or environment
// provided, so `--log-level debug` always wins.
func (o *rootOptions) setup(cmd *cobra.Command) (*config.Config, logging.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.LogFormat
	}
	if flags.Changed("obabel") {
		cfg.Tools.ObabelPath = o.ObabelPath
	}
	if flags.Changed("vina") {
		cfg.Tools.VinaPath = o.VinaPath
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// NewRootCommand creates the root command with global flags and all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "vinauto",
		Short:   "Batch virtual screening with Open Babel and AutoDock Vina",
		Long:    "vinauto converts a table of SMILES into docking-ready ligands, derives the\nsearch box from the receptor geometry, and docks every ligand against the\nreceptor, collecting scores into a single run manifest.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&opts.LogFormat, "log-format", config.DefaultLogFormat, "log format (console, json)")
	pf.StringVar(&opts.ObabelPath, "obabel", config.DefaultObabelPath, "Open Babel binary name or path")
	pf.StringVar(&opts.VinaPath, "vina", config.DefaultVinaPath, "AutoDock Vina binary name or path")

	cmd.AddCommand(
		newRunCmd(opts),
		newBoxCmd(),
		newConvertCmd(opts),
	)

	return cmd
}

// Execute runs the CLI.  SIGINT and SIGTERM cancel the run context so
// in-flight tool processes are killed and the manifest still gets written
// with whatever completed.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand().ExecuteContext(ctx)
}
