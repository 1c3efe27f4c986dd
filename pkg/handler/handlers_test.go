package handler

import (
	"context"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/openfroyo/provider-s3object/pkg/backend"
	"github.com/openfroyo/provider-s3object/pkg/model"
	"github.com/openfroyo/provider-s3object/pkg/progress"
)

// storedObject is one object held by the fake backend.
type storedObject struct {
	body string
	tags []model.Tag
}

// fakeClient is an in-memory ObjectClient for driving the state machine.
type fakeClient struct {
	objects map[string]*storedObject

	// putVersioned controls whether PutObject acknowledges with a version id.
	putVersioned bool

	// error injection per call
	putErr  error
	getErr  error
	tagErr  error
	delErr  error
	listErr error

	// recorded calls
	putCalls    int
	lastTagging string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		objects:      make(map[string]*storedObject),
		putVersioned: true,
	}
}

func objKey(bucket, key string) string { return bucket + "/" + key }

func (f *fakeClient) PutObject(_ context.Context, in backend.PutObjectInput) (*backend.PutObjectOutput, error) {
	f.putCalls++
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.lastTagging = in.Tagging
	f.objects[objKey(in.Bucket, in.Key)] = &storedObject{body: in.Body}
	if !f.putVersioned {
		return &backend.PutObjectOutput{}, nil
	}
	return &backend.PutObjectOutput{VersionID: aws.String("v1")}, nil
}

func (f *fakeClient) GetObject(_ context.Context, bucket, key string) (*backend.Object, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	obj, ok := f.objects[objKey(bucket, key)]
	if !ok {
		return nil, &backend.APIError{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	return &backend.Object{Body: obj.body}, nil
}

func (f *fakeClient) GetObjectTagging(_ context.Context, bucket, key string) ([]model.Tag, error) {
	if f.tagErr != nil {
		return nil, f.tagErr
	}
	obj, ok := f.objects[objKey(bucket, key)]
	if !ok {
		return nil, &backend.APIError{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	return obj.tags, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, bucket, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.objects, objKey(bucket, key))
	return nil
}

func (f *fakeClient) ListObjects(_ context.Context, bucket string) ([]backend.ObjectSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var summaries []backend.ObjectSummary
	for k := range f.objects {
		summaries = append(summaries, backend.ObjectSummary{Key: k[len(bucket)+1:]})
	}
	return summaries, nil
}

// newTestHandlers wires a Handlers instance to the fake client.
func newTestHandlers(fake *fakeClient) *Handlers {
	return &Handlers{
		clientFn: func(*backend.Session) backend.ObjectClient { return fake },
	}
}

// sess is a non-nil session; the fake ignores it but the handlers require
// capability presence.
var sess = backend.NewSession(aws.Config{})

func newRequest(contents string) *Request {
	return &Request{
		DesiredResourceState: &model.ResourceModel{
			BucketName:     "my-bucket",
			ObjectKey:      "conf/app.yaml",
			ObjectContents: contents,
		},
	}
}

var resumed = CallbackContext{progress.CallbackStatusKey: string(progress.StatusInProgress)}

func TestCreateFreshReturnsCallback(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandlers(fake)

	ev := h.Create(context.Background(), sess, newRequest("retries: 3"), CallbackContext{})

	if ev.Status != progress.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s (%s)", ev.Status, ev.Message)
	}
	if ev.CallbackContext[progress.CallbackStatusKey] != string(progress.StatusInProgress) {
		t.Errorf("callback context not marked in progress: %v", ev.CallbackContext)
	}
	if ev.CallbackDelaySeconds != progress.CallbackDelaySeconds {
		t.Errorf("expected delay %d, got %d", progress.CallbackDelaySeconds, ev.CallbackDelaySeconds)
	}
	if want := "arn:aws:s3:::my-bucket/conf/app.yaml"; ev.ResourceModel.ObjectArn != want {
		t.Errorf("expected ARN %q, got %q", want, ev.ResourceModel.ObjectArn)
	}
	if fake.putCalls != 1 {
		t.Errorf("expected exactly one write, got %d", fake.putCalls)
	}
}

func TestCreateThenReadRoundTrip(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandlers(fake)
	ctx := context.Background()

	ev := h.Create(ctx, sess, newRequest("retries: 3"), CallbackContext{})
	if ev.Status != progress.StatusInProgress {
		t.Fatalf("fresh create: expected IN_PROGRESS, got %s", ev.Status)
	}

	// Resumed invocation confirms stabilization without repeating the write.
	ev = h.Create(ctx, sess, newRequest("retries: 3"), resumed)
	if ev.Status != progress.StatusSuccess {
		t.Fatalf("resumed create: expected SUCCESS, got %s (%s)", ev.Status, ev.Message)
	}
	if fake.putCalls != 1 {
		t.Errorf("resumed create repeated the write: %d calls", fake.putCalls)
	}

	read := h.Read(ctx, sess, newRequest(""), nil)
	if read.Status != progress.StatusSuccess {
		t.Fatalf("read: expected SUCCESS, got %s (%s)", read.Status, read.Message)
	}
	if read.ResourceModel.ObjectContents != "retries: 3" {
		t.Errorf("expected contents %q, got %q", "retries: 3", read.ResourceModel.ObjectContents)
	}
	if want := "arn:aws:s3:::my-bucket/conf/app.yaml"; read.ResourceModel.ObjectArn != want {
		t.Errorf("expected ARN %q, got %q", want, read.ResourceModel.ObjectArn)
	}
}

func TestReadIsIdempotent(t *testing.T) {
	fake := newFakeClient()
	fake.objects["my-bucket/conf/app.yaml"] = &storedObject{
		body: "retries: 3",
		tags: []model.Tag{{Key: "team", Value: "infra"}},
	}
	h := newTestHandlers(fake)

	first := h.Read(context.Background(), sess, newRequest(""), nil)
	second := h.Read(context.Background(), sess, newRequest(""), nil)

	if first.Status != progress.StatusSuccess || second.Status != progress.StatusSuccess {
		t.Fatalf("expected both reads to succeed: %s / %s", first.Status, second.Status)
	}
	if !reflect.DeepEqual(first.ResourceModel, second.ResourceModel) {
		t.Errorf("reads diverged:\n%+v\n%+v", first.ResourceModel, second.ResourceModel)
	}
}

func TestCreateUnconfirmedWriteFails(t *testing.T) {
	fake := newFakeClient()
	fake.putVersioned = false
	h := newTestHandlers(fake)

	ev := h.Create(context.Background(), sess, newRequest("body"), CallbackContext{})

	if ev.Status != progress.StatusFailed {
		t.Fatalf("expected FAILED for unconfirmed write, got %s", ev.Status)
	}
	if ev.ErrorCode != progress.ErrorInternalFailure {
		t.Errorf("expected InternalFailure, got %s", ev.ErrorCode)
	}
}

func TestCreateBackendErrorClassified(t *testing.T) {
	fake := newFakeClient()
	fake.putErr = &backend.APIError{Code: "RequestLimitExceeded", Message: "slow down"}
	h := newTestHandlers(fake)

	ev := h.Create(context.Background(), sess, newRequest("body"), CallbackContext{})

	if ev.Status != progress.StatusFailed {
		t.Fatalf("expected FAILED, got %s", ev.Status)
	}
	if ev.ErrorCode != progress.ErrorThrottling {
		t.Errorf("expected Throttling, got %s", ev.ErrorCode)
	}
}

func TestResumedCreateNotFoundKeepsPolling(t *testing.T) {
	fake := newFakeClient() // object never becomes visible
	h := newTestHandlers(fake)

	ev := h.Create(context.Background(), sess, newRequest("body"), resumed)

	if ev.Status != progress.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS while object not yet visible, got %s (%s)", ev.Status, ev.Message)
	}
	if fake.putCalls != 0 {
		t.Errorf("resumed create performed a write")
	}
}

func TestResumedCreateOtherErrorFails(t *testing.T) {
	fake := newFakeClient()
	fake.getErr = &backend.APIError{Code: "RequestLimitExceeded", Message: "slow down"}
	h := newTestHandlers(fake)

	ev := h.Create(context.Background(), sess, newRequest("body"), resumed)

	if ev.Status != progress.StatusFailed {
		t.Fatalf("expected FAILED, got %s", ev.Status)
	}
	if ev.ErrorCode != progress.ErrorThrottling {
		t.Errorf("expected Throttling, got %s", ev.ErrorCode)
	}
}

func TestUpdateFollowsCreatePath(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandlers(fake)

	ev := h.Update(context.Background(), sess, newRequest("v2"), CallbackContext{})
	if ev.Status != progress.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", ev.Status)
	}

	ev = h.Update(context.Background(), sess, newRequest("v2"), resumed)
	if ev.Status != progress.StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s (%s)", ev.Status, ev.Message)
	}
}

func TestDeleteFreshMissingObjectFails(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandlers(fake)

	ev := h.Delete(context.Background(), sess, newRequest(""), CallbackContext{})

	if ev.Status != progress.StatusFailed {
		t.Fatalf("expected FAILED, got %s", ev.Status)
	}
	if ev.ErrorCode != progress.ErrorNotFound {
		t.Errorf("expected NotFound, got %s", ev.ErrorCode)
	}
}

func TestDeleteFreshIssuesDeleteAndPolls(t *testing.T) {
	fake := newFakeClient()
	fake.objects["my-bucket/conf/app.yaml"] = &storedObject{body: "x"}
	h := newTestHandlers(fake)

	ev := h.Delete(context.Background(), sess, newRequest(""), CallbackContext{})

	if ev.Status != progress.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS after issuing delete, got %s (%s)", ev.Status, ev.Message)
	}
	if _, ok := fake.objects["my-bucket/conf/app.yaml"]; ok {
		t.Errorf("delete call was not issued")
	}
}

func TestDeleteResumedNotFoundIsSuccess(t *testing.T) {
	fake := newFakeClient() // object already gone
	h := newTestHandlers(fake)

	ev := h.Delete(context.Background(), sess, newRequest(""), resumed)

	if ev.Status != progress.StatusSuccess {
		t.Fatalf("expected SUCCESS once object is gone, got %s (%s)", ev.Status, ev.Message)
	}
	if ev.ResourceModel != nil || ev.ResourceModels != nil {
		t.Errorf("delete success must carry no model: %+v", ev)
	}
}

func TestDeleteResumedStillPresentKeepsPolling(t *testing.T) {
	fake := newFakeClient()
	fake.objects["my-bucket/conf/app.yaml"] = &storedObject{body: "x"}
	h := newTestHandlers(fake)

	ev := h.Delete(context.Background(), sess, newRequest(""), resumed)

	if ev.Status != progress.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS while object persists, got %s", ev.Status)
	}
}

func TestDeleteResumedOtherErrorFails(t *testing.T) {
	fake := newFakeClient()
	fake.getErr = &backend.APIError{Code: "AccessDenied", Message: "denied"}
	h := newTestHandlers(fake)

	ev := h.Delete(context.Background(), sess, newRequest(""), resumed)

	if ev.Status != progress.StatusFailed {
		t.Fatalf("expected FAILED, got %s", ev.Status)
	}
	if ev.ErrorCode != progress.ErrorGeneralServiceException {
		t.Errorf("expected GeneralServiceException, got %s", ev.ErrorCode)
	}
}

func TestListEmptyBucketSucceeds(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandlers(fake)

	ev := h.List(context.Background(), sess, newRequest(""), nil)

	if ev.Status != progress.StatusSuccess {
		t.Fatalf("expected SUCCESS for empty bucket, got %s (%s)", ev.Status, ev.Message)
	}
	if ev.ResourceModels == nil {
		t.Fatal("expected an empty model list, got nil")
	}
	if len(ev.ResourceModels) != 0 {
		t.Errorf("expected no models, got %d", len(ev.ResourceModels))
	}
}

func TestListProjectsMinimalModels(t *testing.T) {
	fake := newFakeClient()
	fake.objects["my-bucket/a.txt"] = &storedObject{body: "a"}
	h := newTestHandlers(fake)

	ev := h.List(context.Background(), sess, newRequest(""), nil)

	if ev.Status != progress.StatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", ev.Status)
	}
	if len(ev.ResourceModels) != 1 {
		t.Fatalf("expected 1 model, got %d", len(ev.ResourceModels))
	}
	got := ev.ResourceModels[0]
	want := model.ResourceModel{
		BucketName: "my-bucket",
		ObjectKey:  "a.txt",
		ObjectArn:  "arn:aws:s3:::my-bucket/a.txt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestWriteAttachesMergedTags(t *testing.T) {
	fake := newFakeClient()
	h := newTestHandlers(fake)

	req := newRequest("body")
	req.DesiredResourceState.Tags = []model.Tag{{Key: "team", Value: "infra"}}
	req.DesiredResourceTags = map[string]string{"env": "prod"}

	ev := h.Create(context.Background(), sess, req, CallbackContext{})
	if ev.Status != progress.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s (%s)", ev.Status, ev.Message)
	}
	if fake.lastTagging != "env=prod&team=infra" {
		t.Errorf("expected tagging %q, got %q", "env=prod&team=infra", fake.lastTagging)
	}
}

func TestNilSessionFailsInternally(t *testing.T) {
	h := New(nil)

	ev := h.Create(context.Background(), nil, newRequest("body"), CallbackContext{})

	if ev.Status != progress.StatusFailed {
		t.Fatalf("expected FAILED, got %s", ev.Status)
	}
	if ev.ErrorCode != progress.ErrorInternalFailure {
		t.Errorf("expected InternalFailure, got %s", ev.ErrorCode)
	}
}

func TestMissingContentsIsInvalidRequest(t *testing.T) {
	h := newTestHandlers(newFakeClient())

	ev := h.Create(context.Background(), sess, newRequest(""), CallbackContext{})

	if ev.Status != progress.StatusFailed {
		t.Fatalf("expected FAILED, got %s", ev.Status)
	}
	if ev.ErrorCode != progress.ErrorInvalidRequest {
		t.Errorf("expected InvalidRequest, got %s", ev.ErrorCode)
	}
}

func TestDispatchCoversAllActions(t *testing.T) {
	dispatch := New(nil).Dispatch()

	for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete, ActionRead, ActionList} {
		if dispatch[action] == nil {
			t.Errorf("no handler registered for %s", action)
		}
	}
}
