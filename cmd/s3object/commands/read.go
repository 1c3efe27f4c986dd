package commands

import (
	"github.com/spf13/cobra"

	"github.com/openfroyo/provider-s3object/pkg/handler"
	"github.com/openfroyo/provider-s3object/pkg/model"
)

func newReadCommand() *cobra.Command {
	var (
		bucket string
		key    string
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read an object's contents, ARN, and tags",
		Example: `  s3object read -b my-bucket -k conf/app.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ctx, err := newRunner(cmd.Context())
			if err != nil {
				return err
			}
			req := &handler.Request{
				DesiredResourceState: &model.ResourceModel{
					BucketName: bucket,
					ObjectKey:  key,
				},
			}
			return printEvent(drive(ctx, r.dispatch[handler.ActionRead], r.sess, req))
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "bucket name")
	cmd.Flags().StringVarP(&key, "key", "k", "", "object key")
	cmd.MarkFlagRequired("bucket")
	cmd.MarkFlagRequired("key")
	return cmd
}
