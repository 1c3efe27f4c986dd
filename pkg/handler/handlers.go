package handler

import (
	"context"

	"github.com/openfroyo/provider-s3object/pkg/backend"
	"github.com/openfroyo/provider-s3object/pkg/model"
	"github.com/openfroyo/provider-s3object/pkg/progress"
	"github.com/openfroyo/provider-s3object/pkg/telemetry"
)

// Create uploads the object on the fresh invocation and confirms
// stabilization on resumed ones.
func (h *Handlers) Create(ctx context.Context, sess *backend.Session, req *Request, cb CallbackContext) progress.Event {
	return h.upsert(ctx, ActionCreate, sess, req, cb)
}

// Update rewrites the object. The bucket and key are immutable, so an update
// is the same write path as a create.
func (h *Handlers) Update(ctx context.Context, sess *backend.Session, req *Request, cb CallbackContext) progress.Event {
	return h.upsert(ctx, ActionUpdate, sess, req, cb)
}

// upsert is the shared create/update transition function.
func (h *Handlers) upsert(ctx context.Context, action Action, sess *backend.Session, req *Request, cb CallbackContext) progress.Event {
	m := req.DesiredResourceState

	if cb.IsResumed() {
		h.metrics.RecordResume(string(action))
		return h.stabilize(ctx, sess, req, m, false)
	}

	if err := model.ValidateForWrite(m); err != nil {
		return progress.Failed(ctx, progress.ErrorInvalidRequest, err.Error())
	}

	client := h.clientFn(sess)
	if client == nil {
		return progress.Failed(ctx, progress.ErrorInternalFailure, "no backend session available")
	}

	tags := model.BuildTagList(m, req.DesiredResourceTags)
	out, err := client.PutObject(ctx, backend.PutObjectInput{
		Bucket:  m.BucketName,
		Key:     m.ObjectKey,
		Body:    m.ObjectContents,
		Tagging: model.EncodeTagging(tags),
	})
	if err != nil {
		return h.failBackend(ctx, err)
	}

	// A versioning backend acknowledges a durable write with a version id.
	// Without one the write is not confirmed and must not be reported as
	// anything but a failure.
	if out == nil || out.VersionID == nil || *out.VersionID == "" {
		return progress.Failed(ctx, progress.ErrorInternalFailure,
			"object upload not confirmed by backend")
	}

	m.SetARN()
	telemetry.FromContext(ctx).Debugf("object written, polling for visibility of %s", m.ObjectArn)
	return progress.Callback(m)
}

// Delete confirms the object exists, issues the delete on the fresh
// invocation, and polls via callback until the backend reports it gone.
func (h *Handlers) Delete(ctx context.Context, sess *backend.Session, req *Request, cb CallbackContext) progress.Event {
	m := req.DesiredResourceState

	if cb.IsResumed() {
		h.metrics.RecordResume(string(ActionDelete))
		return h.stabilize(ctx, sess, req, m, true)
	}

	if err := model.Validate(m); err != nil {
		return progress.Failed(ctx, progress.ErrorInvalidRequest, err.Error())
	}

	client := h.clientFn(sess)
	if client == nil {
		return progress.Failed(ctx, progress.ErrorInternalFailure, "no backend session available")
	}

	// The object must exist before a delete is attempted; deleting a
	// resource the backend never had is a NotFound failure, not a no-op.
	if rh := h.Read(ctx, sess, req, nil); rh.Status == progress.StatusFailed {
		return rh
	}

	if err := client.DeleteObject(ctx, m.BucketName, m.ObjectKey); err != nil {
		return h.failBackend(ctx, err)
	}

	// Success is only reported once a read-back confirms the deletion is
	// durable, so hand control back and poll.
	return progress.Callback(m)
}

// Read projects current backend state into the resource model: body,
// derived ARN, and tag set.
func (h *Handlers) Read(ctx context.Context, sess *backend.Session, req *Request, _ CallbackContext) progress.Event {
	m := req.DesiredResourceState

	if err := model.Validate(m); err != nil {
		return progress.Failed(ctx, progress.ErrorInvalidRequest, err.Error())
	}

	client := h.clientFn(sess)
	if client == nil {
		return progress.Failed(ctx, progress.ErrorInternalFailure, "no backend session available")
	}

	obj, err := client.GetObject(ctx, m.BucketName, m.ObjectKey)
	if err != nil {
		return h.failBackend(ctx, err)
	}
	m.ObjectContents = obj.Body
	m.SetARN()

	tags, err := client.GetObjectTagging(ctx, m.BucketName, m.ObjectKey)
	if err != nil {
		return h.failBackend(ctx, err)
	}
	m.Tags = tags

	return progress.Success(m)
}

// List enumerates the bucket and projects each entry into a minimal model:
// bucket, key, and derived ARN. Contents and tags are not fetched.
func (h *Handlers) List(ctx context.Context, sess *backend.Session, req *Request, _ CallbackContext) progress.Event {
	m := req.DesiredResourceState
	if m == nil || m.BucketName == "" {
		return progress.Failed(ctx, progress.ErrorInvalidRequest, "BucketName is required for list")
	}

	client := h.clientFn(sess)
	if client == nil {
		return progress.Failed(ctx, progress.ErrorInternalFailure, "no backend session available")
	}

	summaries, err := client.ListObjects(ctx, m.BucketName)
	if err != nil {
		return h.failBackend(ctx, err)
	}

	models := make([]model.ResourceModel, 0, len(summaries))
	for _, s := range summaries {
		models = append(models, model.ResourceModel{
			BucketName: m.BucketName,
			ObjectKey:  s.Key,
			ObjectArn:  model.ObjectARN(m.BucketName, s.Key),
		})
	}
	return progress.ListSuccess(models)
}

// stabilize is the resumed-invocation transition: it reads the object back
// to decide whether the prior mutation has taken durable effect.
//
// For create/update, a successful read means the object is visible and the
// operation succeeded; a NotFound read means the object is not yet visible
// (eventual consistency) and polling continues. For delete the signals
// invert: NotFound confirms the deletion and a successful read means the
// object still exists, so polling continues. Any other classified error is
// terminal.
func (h *Handlers) stabilize(ctx context.Context, sess *backend.Session, req *Request, m *model.ResourceModel, isDelete bool) progress.Event {
	rh := h.Read(ctx, sess, req, nil)

	if rh.Status == progress.StatusSuccess {
		if isDelete {
			return progress.Callback(m)
		}
		m.SetARN()
		return progress.Success(m)
	}

	if rh.ErrorCode == progress.ErrorNotFound {
		if isDelete {
			return progress.DeleteSuccess()
		}
		return progress.Callback(m)
	}

	return rh
}

// failBackend classifies an adapter error, records it, and builds the
// failure event.
func (h *Handlers) failBackend(ctx context.Context, err error) progress.Event {
	code, msg := progress.ClassifyError(err)
	h.metrics.RecordBackendError(string(code))
	return progress.Failed(ctx, code, msg)
}
