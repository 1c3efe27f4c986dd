package backend

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/openfroyo/provider-s3object/pkg/model"
)

// ObjectClient is the capability interface consumed by the handlers. All
// methods block until the call completes and return either a value or an
// error; backend-reported failures are *APIError.
type ObjectClient interface {
	// PutObject uploads the object body, optionally with a tagging string.
	PutObject(ctx context.Context, in PutObjectInput) (*PutObjectOutput, error)

	// GetObject fetches the object body.
	GetObject(ctx context.Context, bucket, key string) (*Object, error)

	// GetObjectTagging fetches only the object's tag set.
	GetObjectTagging(ctx context.Context, bucket, key string) ([]model.Tag, error)

	// DeleteObject removes the object.
	DeleteObject(ctx context.Context, bucket, key string) error

	// ListObjects enumerates the objects in a bucket.
	ListObjects(ctx context.Context, bucket string) ([]ObjectSummary, error)
}

// PutObjectInput carries the parameters for a PutObject call.
type PutObjectInput struct {
	Bucket string
	Key    string
	Body   string

	// Tagging is the encoded tag string (key1=value1&key2=value2). Empty
	// means no tags are attached.
	Tagging string
}

// PutObjectOutput is the backend's acknowledgment of a write. A nil or empty
// VersionID means the write was not confirmed by a versioning backend.
type PutObjectOutput struct {
	VersionID *string
	ETag      *string
}

// Object is the read-back projection of a stored object.
type Object struct {
	Body string
}

// ObjectSummary is one entry of a bucket listing.
type ObjectSummary struct {
	Key string
}

// Session is the optional capability handle from which clients are built.
// A nil *Session means no backend access is available to this invocation.
type Session struct {
	cfg    aws.Config
	optFns []func(*s3.Options)
}

// NewSession wraps an AWS configuration into a session capability. Optional
// service options (custom endpoint, path-style addressing) are applied to
// every client built from the session.
func NewSession(cfg aws.Config, optFns ...func(*s3.Options)) *Session {
	return &Session{cfg: cfg, optFns: optFns}
}

// ClientFor constructs an object-store client from a session capability.
// It is a pure function of capability presence: a nil session yields a nil
// client and the caller fails the invocation.
func ClientFor(sess *Session) ObjectClient {
	if sess == nil {
		return nil
	}
	return newS3Client(sess.cfg, sess.optFns...)
}
