package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ustclug/tailr/pkg/info"
	"github.com/ustclug/tailr/pkg/tailrctl"
	"github.com/ustclug/tailr/pkg/tailrctl/factory"
	"github.com/ustclug/tailr/pkg/tailrctl/globalflag"
)

func main() {
	var printVersion bool
	rootCmd := &cobra.Command{
		Use:          "tailrctl",
		Short:        "Control a tailrd server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(info.VersionInfo)
			}
			return cmd.Help()
		},
	}
	rootCmd.Flags().BoolVarP(&printVersion, "version", "V", false, "Print version information and quit")
	flags := globalflag.New()
	flags.AddFlags(rootCmd.PersistentFlags())
	tailrctl.Register(rootCmd, factory.New(flags))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
