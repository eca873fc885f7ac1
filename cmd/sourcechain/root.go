package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfigName = "sourcechain"

// newRootCmd creates the root command. Each call gets its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "sourcechain",
		Short:        "Run a chain of source set steps",
		Long:         `sourcechain builds a chain of steps from a config file, runs it and reports what each step read and produced.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"config file (default: ./"+defaultConfigName+".yaml)")
	cmd.PersistentFlags().String("log-level", "",
		"log level: debug, info, warn or error")

	_ = v.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newRunCmd(v), newTypesCmd())

	return cmd
}
