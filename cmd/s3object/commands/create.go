package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openfroyo/provider-s3object/pkg/handler"
	"github.com/openfroyo/provider-s3object/pkg/model"
)

// objectFlags are the model flags shared by create and update.
type objectFlags struct {
	bucket       string
	key          string
	contents     string
	contentsFile string
	tags         []string
	stackTags    []string
}

func (f *objectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.bucket, "bucket", "b", "", "bucket name")
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "object key")
	cmd.Flags().StringVar(&f.contents, "contents", "", "object contents")
	cmd.Flags().StringVar(&f.contentsFile, "contents-file", "", "read object contents from a file")
	cmd.Flags().StringArrayVar(&f.tags, "tag", nil, "resource tag as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.stackTags, "stack-tag", nil, "stack-level tag as key=value (repeatable)")
	cmd.MarkFlagRequired("bucket")
	cmd.MarkFlagRequired("key")
}

// request builds the handler request from the flags.
func (f *objectFlags) request() (*handler.Request, error) {
	contents := f.contents
	if f.contentsFile != "" {
		data, err := os.ReadFile(f.contentsFile)
		if err != nil {
			return nil, fmt.Errorf("reading contents file: %w", err)
		}
		contents = string(data)
	}

	tags, err := parseTags(f.tags)
	if err != nil {
		return nil, err
	}
	stackTags, err := parseTagMap(f.stackTags)
	if err != nil {
		return nil, err
	}

	return &handler.Request{
		DesiredResourceState: &model.ResourceModel{
			BucketName:     f.bucket,
			ObjectKey:      f.key,
			ObjectContents: contents,
			Tags:           tags,
		},
		DesiredResourceTags: stackTags,
	}, nil
}

func newCreateCommand() *cobra.Command {
	var flags objectFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an object and wait for it to stabilize",
		Example: `  # Create an object from a literal string
  s3object create -b my-bucket -k conf/app.yaml --contents "retries: 3"

  # Create an object from a file, with tags
  s3object create -b my-bucket -k conf/app.yaml --contents-file app.yaml \
    --tag team=infra --stack-tag env=prod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ctx, err := newRunner(cmd.Context())
			if err != nil {
				return err
			}
			req, err := flags.request()
			if err != nil {
				return err
			}
			return printEvent(drive(ctx, r.dispatch[handler.ActionCreate], r.sess, req))
		},
	}

	flags.register(cmd)
	return cmd
}
