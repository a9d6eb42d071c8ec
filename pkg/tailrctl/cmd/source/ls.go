package source

import (
	"fmt"
	"io"
	"time"

	"github.com/docker/go-units"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/ustclug/tailr/pkg/api"
	"github.com/ustclug/tailr/pkg/tabwriter"
	"github.com/ustclug/tailr/pkg/tailrctl/factory"
)

type lsOptions struct {
	name string
}

// sourceDetail is what `source ls NAME` prints.
type sourceDetail struct {
	api.GetSourceResponse
	HumanSize string `json:"humanSize"`
	Updated   string `json:"updated,omitempty"`
}

func (o *lsOptions) Run(out io.Writer, f factory.Factory) error {
	cli, err := f.RESTClient()
	if err != nil {
		return err
	}
	var errMsg echo.HTTPError
	req := cli.R().SetError(&errMsg)
	if len(o.name) > 0 {
		var result api.GetSourceResponse
		resp, err := req.
			SetResult(&result).
			SetPathParam("name", o.name).
			Get("sources/{name}")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("%v", errMsg.Message)
		}
		detail := sourceDetail{
			GetSourceResponse: result,
			HumanSize:         "unknown",
		}
		if result.Size >= 0 {
			detail.HumanSize = units.BytesSize(float64(result.Size))
		}
		if result.UpdatedAt > 0 {
			detail.Updated = time.Unix(result.UpdatedAt, 0).Format(time.RFC3339)
		}
		return f.JSONEncoder(out).Encode(detail)
	}

	var result api.ListSourcesResponse
	resp, err := req.SetResult(&result).Get("sources")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%v", errMsg.Message)
	}
	printer := tabwriter.New(out, "name", "path", "description")
	for _, r := range result {
		printer.Append(r.Name, r.Path, r.Description)
	}
	return printer.Render()
}

func NewCmdSourceLs(f factory.Factory) *cobra.Command {
	o := lsOptions{}
	cmd := &cobra.Command{
		Use:   "ls [NAME]",
		Short: "List one or all sources",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				o.name = args[0]
			}
			return o.Run(cmd.OutOrStdout(), f)
		},
	}
	return cmd
}
