package source

import (
	"github.com/spf13/cobra"

	"github.com/ustclug/tailr/pkg/tailrctl/factory"
)

func NewCmdSource(f factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Manage sources",
	}
	cmd.AddCommand(
		NewCmdSourceLs(f),
		NewCmdSourceRm(f),
		NewCmdSourceTail(f),
	)
	return cmd
}
