package progress

import (
	"context"
	"errors"

	"github.com/openfroyo/provider-s3object/pkg/model"
	"github.com/openfroyo/provider-s3object/pkg/telemetry"
)

// Status is the state of a progress event.
type Status string

const (
	// StatusInProgress means the operation is not yet complete and the
	// orchestrator should re-invoke after the delay hint.
	StatusInProgress Status = "IN_PROGRESS"

	// StatusSuccess is the terminal success state.
	StatusSuccess Status = "SUCCESS"

	// StatusFailed is the terminal failure state.
	StatusFailed Status = "FAILED"
)

// CallbackDelaySeconds is the fixed delay hint attached to every in-progress
// event.
const CallbackDelaySeconds int64 = 5

// CallbackStatusKey is the single recognized key of the callback context.
const CallbackStatusKey = "status"

// Event is the handler's entire return contract to the orchestrator. One
// Event is produced per invocation and never persisted.
type Event struct {
	// Status is the event state.
	Status Status `json:"status"`

	// ResourceModel is the current model; set on in-progress events and on
	// single-model successes, never on delete successes.
	ResourceModel *model.ResourceModel `json:"resourceModel,omitempty"`

	// ResourceModels is the model list of a list-operation success.
	ResourceModels []model.ResourceModel `json:"resourceModels,omitempty"`

	// ErrorCode is set on failed events only.
	ErrorCode ErrorCode `json:"errorCode,omitempty"`

	// Message is the human-readable failure message, prefixed "Error: ".
	Message string `json:"message,omitempty"`

	// CallbackContext is round-tripped by the orchestrator into the next
	// invocation of the same logical operation.
	CallbackContext map[string]string `json:"callbackContext,omitempty"`

	// CallbackDelaySeconds is the minimum delay before re-invocation.
	CallbackDelaySeconds int64 `json:"callbackDelaySeconds,omitempty"`
}

// Callback builds the in-progress event that hands control back to the
// orchestrator: it carries the in-progress callback context and the fixed
// delay hint.
func Callback(m *model.ResourceModel) Event {
	return Event{
		Status:        StatusInProgress,
		ResourceModel: m,
		CallbackContext: map[string]string{
			CallbackStatusKey: string(StatusInProgress),
		},
		CallbackDelaySeconds: CallbackDelaySeconds,
	}
}

// SuccessOptions selects exactly one of the three success shapes. Used by
// NewSuccess; handler code should prefer the typed constructors.
type SuccessOptions struct {
	// Model is the single-model success payload.
	Model *model.ResourceModel

	// Models is the list-success payload. Only consulted when List is set.
	Models []model.ResourceModel

	// Delete selects the payload-free delete success.
	Delete bool

	// List selects the model-list success.
	List bool
}

// NewSuccess builds a success event after validating that exactly one shape
// was selected. Selecting nothing, or selecting the delete and list shapes
// simultaneously, is a caller contract violation.
func NewSuccess(opts SuccessOptions) (Event, error) {
	switch {
	case opts.Model == nil && opts.Models == nil && !opts.Delete && !opts.List:
		return Event{}, errors.New("model, models, delete, or list must be selected")
	case opts.Delete && opts.List:
		return Event{}, errors.New("select either delete or list, not both")
	case opts.Delete:
		return Event{Status: StatusSuccess}, nil
	case opts.List:
		models := opts.Models
		if models == nil {
			models = []model.ResourceModel{}
		}
		return Event{Status: StatusSuccess, ResourceModels: models}, nil
	default:
		return Event{Status: StatusSuccess, ResourceModel: opts.Model}, nil
	}
}

// Success builds a single-model success event.
func Success(m *model.ResourceModel) Event {
	ev, _ := NewSuccess(SuccessOptions{Model: m})
	return ev
}

// ListSuccess builds a list success event. The model list is always present
// on the event, possibly empty, never nil.
func ListSuccess(models []model.ResourceModel) Event {
	ev, _ := NewSuccess(SuccessOptions{Models: models, List: true})
	return ev
}

// DeleteSuccess builds the payload-free success event of a completed delete.
func DeleteSuccess() Event {
	ev, _ := NewSuccess(SuccessOptions{Delete: true})
	return ev
}

// Failed builds a failure event and emits a diagnostic whose severity
// depends on the error code: internal failures are operator-visible errors,
// not-found conditions are routine, everything else is a warning.
func Failed(ctx context.Context, code ErrorCode, message string) Event {
	logger := telemetry.FromContext(ctx).WithField("error_code", string(code))
	switch code {
	case ErrorInternalFailure:
		logger.Error(message)
	case ErrorNotFound:
		logger.Debug(message)
	default:
		logger.Warn(message)
	}

	return Event{
		Status:    StatusFailed,
		ErrorCode: code,
		Message:   "Error: " + message,
	}
}
