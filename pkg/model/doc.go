// Package model defines the resource model for the S3 object resource type:
// the desired/actual state of a single object in a bucket, its derived ARN,
// and the tag transforms used when writing the object to the backend.
package model
