package progress

import (
	"errors"
	"testing"

	"github.com/openfroyo/provider-s3object/pkg/backend"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want ErrorCode
	}{
		{"NoSuchKey", ErrorNotFound},
		{"InvalidParameter", ErrorInvalidRequest},
		{"InvalidParameterCombination", ErrorInvalidRequest},
		{"InvalidParameterValue", ErrorInvalidRequest},
		{"InvalidTagKey.Malformed", ErrorInvalidRequest},
		{"MissingAction", ErrorInvalidRequest},
		{"MissingParameter", ErrorInvalidRequest},
		{"UnknownParameter", ErrorInvalidRequest},
		{"ValidationError", ErrorInvalidRequest},
		{"RequestLimitExceeded", ErrorThrottling},
		{"TotallyUnknownCode", ErrorGeneralServiceException},
		{"", ErrorGeneralServiceException},
	}

	for _, tt := range tests {
		if got := Classify(tt.code); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestClassifyErrorAPIError(t *testing.T) {
	code, msg := ClassifyError(&backend.APIError{Code: "NoSuchKey", Message: "missing"})

	if code != ErrorNotFound {
		t.Errorf("expected NotFound, got %s", code)
	}
	if msg == "" {
		t.Error("expected a message")
	}
}

func TestClassifyErrorLocalFault(t *testing.T) {
	code, msg := ClassifyError(errors.New("nil pointer in handler"))

	if code != ErrorInternalFailure {
		t.Errorf("expected InternalFailure for non-API error, got %s", code)
	}
	if msg != "nil pointer in handler" {
		t.Errorf("unexpected message %q", msg)
	}
}
