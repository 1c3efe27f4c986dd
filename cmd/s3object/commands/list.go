package commands

import (
	"github.com/spf13/cobra"

	"github.com/openfroyo/provider-s3object/pkg/handler"
	"github.com/openfroyo/provider-s3object/pkg/model"
)

func newListCommand() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the objects in a bucket",
		Example: `  s3object list -b my-bucket`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ctx, err := newRunner(cmd.Context())
			if err != nil {
				return err
			}
			req := &handler.Request{
				DesiredResourceState: &model.ResourceModel{
					BucketName: bucket,
				},
			}
			return printEvent(drive(ctx, r.dispatch[handler.ActionList], r.sess, req))
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "bucket name")
	cmd.MarkFlagRequired("bucket")
	return cmd
}
