package main

import (
	goflag "flag"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var rootCmd = &cobra.Command{
	Use:          "liquid2dump",
	Short:        "liquid2dump",
	SilenceUsage: true,
	Long:         `Dumps the markup and query parse trees this package produces, for debugging the front-end in isolation.`,
}

// Execute executes the root command.
func Execute() error {
	fs := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(fs)
	rootCmd.PersistentFlags().AddGoFlagSet(fs)
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(dumpQueryCmd)
}
