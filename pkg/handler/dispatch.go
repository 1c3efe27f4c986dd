package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openfroyo/provider-s3object/pkg/backend"
	"github.com/openfroyo/provider-s3object/pkg/model"
	"github.com/openfroyo/provider-s3object/pkg/progress"
	"github.com/openfroyo/provider-s3object/pkg/telemetry"
)

// Action identifies one of the five handler operations.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionRead   Action = "read"
	ActionList   Action = "list"
)

// Request is the per-invocation input from the orchestrator.
type Request struct {
	// DesiredResourceState is the declared model for this operation.
	DesiredResourceState *model.ResourceModel

	// PreviousResourceState is the model before an update, when known.
	PreviousResourceState *model.ResourceModel

	// DesiredResourceTags are stack-level tags to merge into the write.
	DesiredResourceTags map[string]string

	// PreviousResourceTags are the stack-level tags before an update.
	PreviousResourceTags map[string]string

	// LogicalResourceID names the resource within the orchestrator's stack.
	LogicalResourceID string
}

// CallbackContext is the opaque state round-tripped by the orchestrator
// between invocations of the same logical operation. It is created empty on
// the first invocation and discarded after a terminal outcome.
type CallbackContext map[string]string

// IsResumed reports whether this invocation resumes a prior in-progress
// operation rather than starting a fresh one.
func (c CallbackContext) IsResumed() bool {
	return c[progress.CallbackStatusKey] == string(progress.StatusInProgress)
}

// HandlerFunc is the signature shared by all five operations. The session is
// an optional capability: a nil session means no backend client can be
// constructed and the invocation fails.
type HandlerFunc func(ctx context.Context, sess *backend.Session, req *Request, cb CallbackContext) progress.Event

// Handlers holds the dependencies shared by every operation. Construct with
// New and build the dispatch table once at startup; there is no process-wide
// registry.
type Handlers struct {
	metrics  *telemetry.Metrics
	clientFn func(*backend.Session) backend.ObjectClient
}

// New creates the handler set. metrics may be nil to disable recording.
func New(metrics *telemetry.Metrics) *Handlers {
	return &Handlers{
		metrics:  metrics,
		clientFn: backend.ClientFor,
	}
}

// Dispatch builds the operation table handed to the orchestrator boundary.
// Every entry is instrumented with an invocation id, contextual logger, and
// invocation metrics.
func (h *Handlers) Dispatch() map[Action]HandlerFunc {
	return map[Action]HandlerFunc{
		ActionCreate: h.instrument(ActionCreate, h.Create),
		ActionUpdate: h.instrument(ActionUpdate, h.Update),
		ActionDelete: h.instrument(ActionDelete, h.Delete),
		ActionRead:   h.instrument(ActionRead, h.Read),
		ActionList:   h.instrument(ActionList, h.List),
	}
}

// instrument wraps a handler with logging and metrics.
func (h *Handlers) instrument(action Action, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, sess *backend.Session, req *Request, cb CallbackContext) progress.Event {
		logger := telemetry.FromContext(ctx).
			WithAction(string(action)).
			WithInvocationID(uuid.NewString())
		ctx = logger.WithContext(ctx)

		start := time.Now()
		logger.Debug("handler invoked")

		ev := fn(ctx, sess, req, cb)

		h.metrics.RecordInvocation(string(action), string(ev.Status), time.Since(start))
		logger.WithField("status", string(ev.Status)).Debug("handler returned")
		return ev
	}
}
