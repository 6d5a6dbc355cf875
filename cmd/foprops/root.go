package main

import (
	"fmt"

	"github.com/benoitkugler/foprops/config"
	"github.com/benoitkugler/foprops/logger"
	"github.com/benoitkugler/foprops/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "foprops",
		Short:         "Resolve the indents, margins, paddings and borders of XSL-FO documents.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			if err := logger.Configure(cfg.Logger); err != nil {
				return err
			}
			a.cfg = cfg
			logger.ProgressLogger.Debugf("Starting %s", version.VersionString)
			return nil
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "YAML configuration file")
	flags.String("log-level", "info", "minimum level of the logs (debug, info, warn, error)")
	flags.String("log-format", "console", "encoding of the logs (console or json)")
	_ = a.v.BindPFlag("logger.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logger.format", flags.Lookup("log-format"))

	root.AddCommand(newResolveCmd(a), newPropertiesCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.VersionString)
		},
	}
}
