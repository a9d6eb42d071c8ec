package source

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/ustclug/tailr/pkg/tailrctl/factory"
)

type rmOptions struct {
	name string
}

func (o *rmOptions) Run(out io.Writer, f factory.Factory) error {
	cli, err := f.RESTClient()
	if err != nil {
		return err
	}
	var errMsg echo.HTTPError
	resp, err := cli.R().
		SetError(&errMsg).
		SetPathParam("name", o.name).
		Delete("sources/{name}")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%v", errMsg.Message)
	}
	_, _ = fmt.Fprintf(out, "Successfully removed: <%s>\n", o.name)
	return nil
}

func NewCmdSourceRm(f factory.Factory) *cobra.Command {
	o := rmOptions{}
	return &cobra.Command{
		Use:   "rm NAME",
		Short: "Remove the given source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.name = args[0]
			return o.Run(cmd.OutOrStdout(), f)
		},
	}
}
