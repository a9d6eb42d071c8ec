package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ustclug/tailr/pkg/info"
	"github.com/ustclug/tailr/pkg/tailr"
	"github.com/ustclug/tailr/pkg/utils"
)

func main() {
	// Per-file failures have been printed already.
	utils.CheckError(newCmdTailr().Execute(), tailr.ErrFailed)
}

func newCmdTailr() *cobra.Command {
	var printVersion bool
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "tailr [flags] FILE...",
		Short:         "Output the last part of files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(info.VersionInfo)
			}
			if len(args) == 0 {
				return errors.New("requires at least 1 arg(s), only received 0")
			}
			cfg, err := tailr.LoadConfig(v, args)
			if err != nil {
				return err
			}
			return tailr.New(cfg,
				tailr.WithStdin(cmd.InOrStdin()),
				tailr.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
			).Run()
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&printVersion, "version", "V", false, "Print version information and quit")
	utils.CheckError(tailr.BindFlags(v, flags))
	cmd.MarkFlagsMutuallyExclusive("lines", "bytes")
	return cmd
}
