package cmd

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/ustclug/tailr/pkg/tailrctl/factory"
)

type reloadOptions struct {
	source string
}

func (o *reloadOptions) Complete(args []string) error {
	if len(args) > 0 {
		o.source = args[0]
	}
	return nil
}

func (o *reloadOptions) Run(out io.Writer, f factory.Factory) error {
	cli, err := f.RESTClient()
	if err != nil {
		return err
	}
	var errMsg echo.HTTPError
	req := cli.R().SetError(&errMsg)
	url := "sources"
	if len(o.source) > 0 {
		req.SetPathParam("name", o.source)
		url = "sources/{name}"
	}
	resp, err := req.Post(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%v", errMsg.Message)
	}
	if len(o.source) > 0 {
		_, _ = fmt.Fprintf(out, "Successfully reloaded: <%s>\n", o.source)
	} else {
		_, _ = fmt.Fprintln(out, "Successfully reloaded all sources")
	}
	return nil
}

func NewCmdReload(f factory.Factory) *cobra.Command {
	o := reloadOptions{}
	cmd := &cobra.Command{
		Use:   "reload [NAME]",
		Short: "Reload the definition of one or all sources",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(args); err != nil {
				return err
			}
			return o.Run(cmd.OutOrStdout(), f)
		},
	}
	return cmd
}
