package commands

import (
	"github.com/spf13/cobra"

	"github.com/openfroyo/provider-s3object/pkg/handler"
)

func newUpdateCommand() *cobra.Command {
	var flags objectFlags

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rewrite an existing object and wait for it to stabilize",
		Example: `  # Replace the object's contents
  s3object update -b my-bucket -k conf/app.yaml --contents "retries: 5"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ctx, err := newRunner(cmd.Context())
			if err != nil {
				return err
			}
			req, err := flags.request()
			if err != nil {
				return err
			}
			return printEvent(drive(ctx, r.dispatch[handler.ActionUpdate], r.sess, req))
		},
	}

	flags.register(cmd)
	return cmd
}
