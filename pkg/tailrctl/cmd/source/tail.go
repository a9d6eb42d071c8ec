package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/ustclug/tailr/pkg/tailrctl/factory"
	"github.com/ustclug/tailr/pkg/take"
)

type tailOptions struct {
	name  string
	lines string
	bytes string
}

func (o *tailOptions) Validate(cmd *cobra.Command) error {
	if cmd.Flags().Changed("bytes") {
		if _, err := take.Parse(o.bytes); err != nil {
			return fmt.Errorf("illegal byte count -- %w", err)
		}
	}
	if cmd.Flags().Changed("lines") {
		if _, err := take.Parse(o.lines); err != nil {
			return fmt.Errorf("illegal line count -- %w", err)
		}
	}
	return nil
}

func (o *tailOptions) Run(cmd *cobra.Command, out io.Writer, f factory.Factory) error {
	cli, err := f.RESTClient()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	req := cli.R()
	if flags.Changed("lines") {
		req.SetQueryParam("lines", o.lines)
	}
	if flags.Changed("bytes") {
		req.SetQueryParam("bytes", o.bytes)
	}

	resp, err := req.
		SetDoNotParseResponse(true).
		SetPathParam("name", o.name).
		Get("sources/{name}/tail")
	if err != nil {
		return err
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.IsError() {
		var errMsg echo.HTTPError
		err = json.NewDecoder(body).Decode(&errMsg)
		if err != nil {
			return err
		}
		return fmt.Errorf("%v", errMsg.Message)
	}
	_, err = io.Copy(out, body)
	return err
}

func NewCmdSourceTail(f factory.Factory) *cobra.Command {
	o := tailOptions{}
	cmd := &cobra.Command{
		Use:   "tail NAME",
		Short: "Print the tail of the given source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.name = args[0]
			if err := o.Validate(cmd); err != nil {
				return err
			}
			return o.Run(cmd, cmd.OutOrStdout(), f)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&o.lines, "lines", "n", "", "Number of lines (server default when unset)")
	flags.StringVarP(&o.bytes, "bytes", "c", "", "Number of bytes")
	cmd.MarkFlagsMutuallyExclusive("lines", "bytes")
	return cmd
}
