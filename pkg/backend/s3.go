package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/openfroyo/provider-s3object/pkg/model"
)

// s3API is the subset of the AWS S3 client used by the adapter. Narrowing
// the surface lets tests substitute the SDK client.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	GetObjectTagging(ctx context.Context, params *s3.GetObjectTaggingInput, optFns ...func(*s3.Options)) (*s3.GetObjectTaggingOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Compile-time check that the real client satisfies the subset.
var _ s3API = (*s3.Client)(nil)

// s3Client adapts the AWS SDK client to the ObjectClient capability
// interface, translating SDK errors into *APIError.
type s3Client struct {
	api s3API
}

func newS3Client(cfg aws.Config, optFns ...func(*s3.Options)) *s3Client {
	return &s3Client{api: s3.NewFromConfig(cfg, optFns...)}
}

// PutObject uploads the object body, attaching the tagging string when set.
func (c *s3Client) PutObject(ctx context.Context, in PutObjectInput) (*PutObjectOutput, error) {
	params := &s3.PutObjectInput{
		Bucket: aws.String(in.Bucket),
		Key:    aws.String(in.Key),
		Body:   strings.NewReader(in.Body),
	}
	if in.Tagging != "" {
		params.Tagging = aws.String(in.Tagging)
	}

	out, err := c.api.PutObject(ctx, params)
	if err != nil {
		return nil, wrapSDKError(err)
	}
	return &PutObjectOutput{VersionID: out.VersionId, ETag: out.ETag}, nil
}

// GetObject fetches the object body.
func (c *s3Client) GetObject(ctx context.Context, bucket, key string) (*Object, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapSDKError(err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object body: %w", err)
	}
	return &Object{Body: string(body)}, nil
}

// GetObjectTagging fetches the object's tag set.
func (c *s3Client) GetObjectTagging(ctx context.Context, bucket, key string) ([]model.Tag, error) {
	out, err := c.api.GetObjectTagging(ctx, &s3.GetObjectTaggingInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapSDKError(err)
	}

	tags := make([]model.Tag, 0, len(out.TagSet))
	for _, t := range out.TagSet {
		tags = append(tags, model.Tag{
			Key:   aws.ToString(t.Key),
			Value: aws.ToString(t.Value),
		})
	}
	return tags, nil
}

// DeleteObject removes the object.
func (c *s3Client) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapSDKError(err)
	}
	return nil
}

// ListObjects enumerates all objects in the bucket, following pagination.
func (c *s3Client) ListObjects(ctx context.Context, bucket string) ([]ObjectSummary, error) {
	var (
		summaries []ObjectSummary
		token     *string
	)
	for {
		out, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, wrapSDKError(err)
		}
		for _, obj := range out.Contents {
			summaries = append(summaries, ObjectSummary{Key: aws.ToString(obj.Key)})
		}
		if !aws.ToBool(out.IsTruncated) {
			return summaries, nil
		}
		token = out.NextContinuationToken
	}
}

// wrapSDKError converts a service-reported SDK error into *APIError so the
// classifier sees the raw service code. Errors that did not come from the
// API (connection faults, context cancellation) pass through untouched and
// classify as internal failures.
func wrapSDKError(err error) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return &APIError{Code: ae.ErrorCode(), Message: ae.ErrorMessage()}
	}
	return err
}
