// Command id3ctl inspects ID3v2 tags and frames and serves the inspect API.
package main

import (
	"fmt"
	"os"

	"github.com/naota/taglib/internal/config"
	"github.com/naota/taglib/internal/id3v2/factory"
	"github.com/naota/taglib/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	verbose    bool

	cfg     config.Config
	factory *factory.Factory
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "id3ctl",
		Short:         "Decode ID3v2 tags and frames",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.ConfigureRuntime()
			if a.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "id3ctl TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newInspectCmd(a),
		newFrameCmd(a),
		newServeCmd(a),
		newConfigCmd(),
	)
	return root
}

func (a *app) load() error {
	cfg, err := loadCLIConfig(a.configPath)
	if err != nil {
		return err
	}
	f, err := config.NewFactory(cfg)
	if err != nil {
		return err
	}
	a.cfg, a.factory = cfg, f
	return nil
}
