package progress

import (
	"github.com/openfroyo/provider-s3object/pkg/backend"
)

// ErrorCode is the fixed taxonomy of handler error codes understood by the
// orchestrator.
type ErrorCode string

const (
	// ErrorNotFound means the resource does not exist at the backend.
	ErrorNotFound ErrorCode = "NotFound"

	// ErrorInvalidRequest means the request carried invalid or missing
	// parameters.
	ErrorInvalidRequest ErrorCode = "InvalidRequest"

	// ErrorThrottling means the backend rejected the call for rate limiting.
	ErrorThrottling ErrorCode = "Throttling"

	// ErrorGeneralServiceException covers every backend error code with no
	// more specific classification.
	ErrorGeneralServiceException ErrorCode = "GeneralServiceException"

	// ErrorInternalFailure means the failure did not originate from the
	// backend API: a local logic or contract fault.
	ErrorInternalFailure ErrorCode = "InternalFailure"
)

// invalidRequestCodes are the parameter/validation-shaped service codes.
var invalidRequestCodes = map[string]struct{}{
	"InvalidParameter":            {},
	"InvalidParameterCombination": {},
	"InvalidParameterValue":       {},
	"InvalidTagKey.Malformed":     {},
	"MissingAction":               {},
	"MissingParameter":            {},
	"UnknownParameter":            {},
	"ValidationError":             {},
}

// Classify maps a backend service error code onto the handler taxonomy. The
// mapping is total: any code without a specific mapping resolves to
// ErrorGeneralServiceException.
func Classify(apiErrorCode string) ErrorCode {
	if apiErrorCode == "NoSuchKey" {
		return ErrorNotFound
	}
	if _, ok := invalidRequestCodes[apiErrorCode]; ok {
		return ErrorInvalidRequest
	}
	if apiErrorCode == "RequestLimitExceeded" {
		return ErrorThrottling
	}
	return ErrorGeneralServiceException
}

// ClassifyError classifies any error returned by the adapter layer. Errors
// reported by the backend API are classified by their service code; anything
// else is an internal failure.
func ClassifyError(err error) (ErrorCode, string) {
	if ae, ok := backend.AsAPIError(err); ok {
		return Classify(ae.Code), ae.Error()
	}
	return ErrorInternalFailure, err.Error()
}
