package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for model checks.
var validate = validator.New()

// ResourceModel is the declared state of one S3 object. BucketName and
// ObjectKey are immutable once the object exists; changing the key implies
// replacement, not update.
type ResourceModel struct {
	// BucketName identifies the containing bucket.
	BucketName string `json:"BucketName" validate:"required"`

	// ObjectKey is the object's path within the bucket.
	ObjectKey string `json:"ObjectKey" validate:"required"`

	// ObjectContents is the object's UTF-8 payload. Supplied on create and
	// update; populated from the backend on read. Unset on list results.
	ObjectContents string `json:"ObjectContents,omitempty"`

	// ObjectArn is the derived identifier. It is never supplied by the
	// caller; handlers set it once the object is confirmed persisted.
	ObjectArn string `json:"ObjectArn,omitempty"`

	// Tags are resource-level tags, merged with stack-level tags before a
	// write. Order is preserved.
	Tags []Tag `json:"Tags,omitempty"`
}

// Tag is a single key/value pair attached to the object.
type Tag struct {
	Key   string `json:"Key" validate:"required"`
	Value string `json:"Value"`
}

// ObjectARN derives the object's ARN from its bucket and key. The model's
// ObjectArn field must never diverge from this formula.
func ObjectARN(bucket, key string) string {
	return fmt.Sprintf("arn:aws:s3:::%s/%s", bucket, key)
}

// SetARN stamps the derived ARN onto the model.
func (m *ResourceModel) SetARN() {
	m.ObjectArn = ObjectARN(m.BucketName, m.ObjectKey)
}

// Validate checks the fields every operation needs: bucket name and key.
func Validate(m *ResourceModel) error {
	if m == nil {
		return fmt.Errorf("resource model is not set")
	}
	return validate.Struct(m)
}

// ValidateForWrite checks the fields a create or update needs. The contents
// may legitimately be empty on read or list, so it is enforced here rather
// than in the struct tags.
func ValidateForWrite(m *ResourceModel) error {
	if err := Validate(m); err != nil {
		return err
	}
	if m.ObjectContents == "" {
		return fmt.Errorf("ObjectContents is required for create and update")
	}
	return nil
}
