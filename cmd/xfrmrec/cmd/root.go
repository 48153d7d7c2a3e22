package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rawbytedev/xfrm/pkg/config"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds the xfrmrec command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "xfrmrec",
		Short: "Build and inspect XFRM netlink records",
		Long: `xfrmrec encodes the fixed-layout records the Linux XFRM netlink
family exchanges (SA lookups, SPI allocation requests) and decodes them back
to YAML. It never opens a netlink socket; it only works on bytes.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (SPI policy, logging)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(
		a.decodeCmd(),
		a.allocSPICmd(),
		a.getSACmd(),
		a.dumpCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = config.DefaultConfig()
	if a.configPath != "" {
		cfg, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	level := a.cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	a.log, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log.Debug("config loaded",
		zap.String("path", a.configPath),
		zap.Uint32("spi_min", a.cfg.SPI.Min),
		zap.Uint32("spi_max", a.cfg.SPI.Max))
	return nil
}
