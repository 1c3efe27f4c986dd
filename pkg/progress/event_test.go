package progress

import (
	"context"
	"strings"
	"testing"

	"github.com/openfroyo/provider-s3object/pkg/model"
)

func TestCallbackShape(t *testing.T) {
	m := &model.ResourceModel{BucketName: "b", ObjectKey: "k"}

	ev := Callback(m)

	if ev.Status != StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", ev.Status)
	}
	if ev.CallbackContext[CallbackStatusKey] != string(StatusInProgress) {
		t.Errorf("callback context missing in-progress marker: %v", ev.CallbackContext)
	}
	if ev.CallbackDelaySeconds != CallbackDelaySeconds {
		t.Errorf("expected delay %d, got %d", CallbackDelaySeconds, ev.CallbackDelaySeconds)
	}
	if ev.ResourceModel != m {
		t.Error("callback event should carry the model")
	}
}

func TestNewSuccessRejectsEmptySelection(t *testing.T) {
	_, err := NewSuccess(SuccessOptions{})
	if err == nil {
		t.Fatal("expected an error when no success shape is selected")
	}
}

func TestNewSuccessRejectsDeleteAndList(t *testing.T) {
	_, err := NewSuccess(SuccessOptions{Delete: true, List: true})
	if err == nil {
		t.Fatal("expected an error when delete and list are both selected")
	}
}

func TestDeleteSuccessCarriesNoPayload(t *testing.T) {
	ev := DeleteSuccess()

	if ev.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", ev.Status)
	}
	if ev.ResourceModel != nil || ev.ResourceModels != nil {
		t.Errorf("delete success must not carry a model: %+v", ev)
	}
}

func TestListSuccessNeverNil(t *testing.T) {
	ev := ListSuccess(nil)

	if ev.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", ev.Status)
	}
	if ev.ResourceModels == nil {
		t.Error("list success must carry a non-nil model list")
	}
	if len(ev.ResourceModels) != 0 {
		t.Errorf("expected empty list, got %d entries", len(ev.ResourceModels))
	}
}

func TestSuccessCarriesModel(t *testing.T) {
	m := &model.ResourceModel{BucketName: "b", ObjectKey: "k"}

	ev := Success(m)

	if ev.Status != StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", ev.Status)
	}
	if ev.ResourceModel != m {
		t.Error("success event should carry the model")
	}
}

func TestFailedPrefixesMessage(t *testing.T) {
	ev := Failed(context.Background(), ErrorThrottling, "RequestLimitExceeded: slow down")

	if ev.Status != StatusFailed {
		t.Fatalf("expected FAILED, got %s", ev.Status)
	}
	if ev.ErrorCode != ErrorThrottling {
		t.Errorf("expected Throttling, got %s", ev.ErrorCode)
	}
	if !strings.HasPrefix(ev.Message, "Error: ") {
		t.Errorf("message missing prefix: %q", ev.Message)
	}
}
