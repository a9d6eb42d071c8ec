package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ustclug/tailr/pkg/info"
	"github.com/ustclug/tailr/pkg/server"
	"github.com/ustclug/tailr/pkg/utils"
)

func main() {
	var (
		printVersion bool
		configPath   string
	)
	cmd := &cobra.Command{
		Use:           "tailrd",
		Short:         "Serve the tails of named files over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(info.VersionInfo)
			}
			s, err := server.New(configPath)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return s.Start(ctx)
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&printVersion, "version", "V", false, "Print version information and quit")
	flags.StringVarP(&configPath, "config", "c", "/etc/tailrd/daemon.toml", "Path to the config file")
	utils.CheckError(cmd.Execute())
}
