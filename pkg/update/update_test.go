package update

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/circuitbreaker"
	"github.com/DSACMS/enrollment-form-api/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://dashboard.test/api/candidates/"

func testRecord(t *testing.T) candidate.Record {
	t.Helper()

	var rec candidate.Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"_id": "665f1c",
		"batchId": "B-12",
		"fullName": "Asha Verma",
		"contactNumber": "9876543210",
		"selectedCourse": ["Java Backend"],
		"paymentType": "Partial Payment",
		"paymentMode": "Cash",
		"partialPaidAmount": "10000"
	}`), &rec))
	rec.TotalPayableAmount = 40000
	rec.RemainingAmount = 30000
	return rec
}

func newTestClient(ft *fakeTransport, fb *fakeBreaker) Client {
	opts := Options{HTTPClient: ft}
	if fb != nil {
		opts.Breaker = fb
	}
	return New(&core.UpdateAPIConfig{URL: testURL}, opts)
}

func TestUpdate_Success(t *testing.T) {
	ft := &fakeTransport{resp: response(http.StatusOK, `{"message":"ok"}`)}
	fb := &fakeBreaker{}

	err := newTestClient(ft, fb).Update(context.Background(), "665f1c", testRecord(t))
	require.NoError(t, err)

	require.Equal(t, 1, ft.called)
	require.Equal(t, http.MethodPut, ft.req.Method)
	require.Equal(t, "https://dashboard.test/api/candidates/665f1c", ft.req.URL.String())
	require.Equal(t, "application/json", ft.req.Header.Get("Content-Type"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(ft.body, &sent))
	assert.Equal(t, "B-12", sent["batchId"], "unknown fields are echoed back")
	assert.Equal(t, 40000.0, sent["totalPayableAmount"])
	assert.Equal(t, 30000.0, sent["remainingAmount"])
	assert.Equal(t, []any{"Java Backend"}, sent["selectedCourse"])

	assert.Equal(t, 1, fb.successes)
	assert.Zero(t, fb.failures)
}

func TestUpdate_RejectedWithMessage(t *testing.T) {
	ft := &fakeTransport{resp: response(http.StatusBadRequest, `{"message":"Email already registered"}`)}
	fb := &fakeBreaker{}

	err := newTestClient(ft, fb).Update(context.Background(), "1", testRecord(t))

	rejected, ok := IsRejected(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, rejected.Status)
	assert.Equal(t, "Email already registered", rejected.Message)
	assert.False(t, errors.Is(err, ErrTransport))
	assert.Equal(t, 1, fb.successes, "4xx means the backend is up")
}

func TestUpdate_NonOKSuccessStatusIsRejected(t *testing.T) {
	ft := &fakeTransport{resp: response(http.StatusCreated, `{}`)}

	err := newTestClient(ft, nil).Update(context.Background(), "1", testRecord(t))

	rejected, ok := IsRejected(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusCreated, rejected.Status)
	assert.Empty(t, rejected.Message)
}

func TestUpdate_ServerErrorCountsAgainstBreaker(t *testing.T) {
	ft := &fakeTransport{resp: response(http.StatusBadGateway, `<html>bad gateway</html>`)}
	fb := &fakeBreaker{}

	err := newTestClient(ft, fb).Update(context.Background(), "1", testRecord(t))

	rejected, ok := IsRejected(err)
	require.True(t, ok)
	assert.Empty(t, rejected.Message, "non-JSON bodies carry no message")
	assert.Equal(t, 1, fb.failures)
}

func TestUpdate_TransportError(t *testing.T) {
	ft := &fakeTransport{err: errors.New("connection refused")}
	fb := &fakeBreaker{}

	err := newTestClient(ft, fb).Update(context.Background(), "1", testRecord(t))

	require.ErrorIs(t, err, ErrTransport)
	_, ok := IsRejected(err)
	assert.False(t, ok)
	assert.Equal(t, 1, fb.failures)
}

func TestUpdate_OpenBreakerSkipsCall(t *testing.T) {
	ft := &fakeTransport{resp: response(http.StatusOK, `{}`)}
	fb := &fakeBreaker{allowErr: circuitbreaker.ErrCircuitOpen}

	err := newTestClient(ft, fb).Update(context.Background(), "1", testRecord(t))

	require.ErrorIs(t, err, ErrTransport)
	require.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Zero(t, ft.called)
}

func TestUpdate_EscapesCandidateID(t *testing.T) {
	ft := &fakeTransport{resp: response(http.StatusOK, `{}`)}

	require.NoError(t, newTestClient(ft, nil).Update(context.Background(), "a/b", testRecord(t)))

	assert.Equal(t, "/api/candidates/a%2Fb", ft.req.URL.EscapedPath())
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "update rejected: status=500", (&Error{Status: 500}).Error())
	assert.Equal(t, `update rejected: status=409 message="taken"`, (&Error{Status: 409, Message: "taken"}).Error())
}
