package tailrctl

import (
	"github.com/spf13/cobra"

	"github.com/ustclug/tailr/pkg/tailrctl/cmd"
	"github.com/ustclug/tailr/pkg/tailrctl/cmd/source"
	"github.com/ustclug/tailr/pkg/tailrctl/factory"
)

func Register(root *cobra.Command, f factory.Factory) {
	root.AddCommand(
		cmd.NewCmdCompletion(),
		cmd.NewCmdReload(f),
		source.NewCmdSource(f),
	)
}
