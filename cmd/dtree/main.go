package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dtree",
		Short: "dtree is a tool to grow classification trees",
		Long:  `A tool to grow binary classification trees from your data, test them, and use them to predict classes for samples`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP((*bool)(&config.logger), "verbose", "v", false, "log progress to STDERR")
	rootCmd.AddCommand(versionCmd(), growCmd(config), predictCmd(config), testCmd(config), renderCmd(config), setCmd(config))
	return rootCmd
}
