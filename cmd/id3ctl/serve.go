package main

import (
	"fmt"
	"strings"

	"github.com/naota/taglib/internal/config"
	"github.com/naota/taglib/internal/observability"
	"github.com/naota/taglib/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP inspect server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listen := a.cfg.ListenAddr
			if cmd.Flags().Changed("addr") {
				listen = strings.TrimSpace(addr)
			}
			observability.InitLogger("id3ctl", listen)
			s := server.New("id3ctl", listen, a.cfg.CorsOrigins, a.factory)
			return s.Serve()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides listen_addr")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or check id3ctl config files",
		// Config files may be broken here; skip the root's load.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var kind, output string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config (--kind id3ctl) or the built-in legacy table (--kind legacy)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := output
			if target == "" {
				target = kind + ".toml"
			}
			if err := config.WriteTemplate(target, kind, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s config template to %s\n", kind, target)
			return nil
		},
	}
	initCmd.Flags().StringVar(&kind, "kind", "id3ctl", "template kind: id3ctl|legacy")
	initCmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <kind>.toml)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Load a config and build a factory from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig(args[0])
			if err != nil {
				return err
			}
			if _, err := config.NewFactory(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validated %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
