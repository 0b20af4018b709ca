package update

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/DSACMS/enrollment-form-api/pkg/circuitbreaker"
	"github.com/DSACMS/enrollment-form-api/pkg/core"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	called int
	req    *http.Request
	body   []byte
	resp   *http.Response
	err    error
}

func (f *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	f.called++
	f.req = req
	if req.Body != nil {
		f.body, _ = io.ReadAll(req.Body)
	}
	return f.resp, f.err
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

type fakeBreaker struct {
	allowErr  error
	successes int
	failures  int
}

func (f *fakeBreaker) Allow(context.Context) error { return f.allowErr }
func (f *fakeBreaker) OnSuccess(context.Context)   { f.successes++ }
func (f *fakeBreaker) OnFailure(context.Context)   { f.failures++ }

func TestNew_UsesInjectedHTTPClient(t *testing.T) {
	cfg := &core.UpdateAPIConfig{
		URL:     "https://example.com/api/candidates",
		Timeout: 3 * time.Second,
	}

	ft := &fakeTransport{}

	c := New(cfg, Options{
		HTTPClient: ft,
	})

	impl, ok := c.(*service)
	require.True(t, ok, "New should return *service implementation")
	require.Same(t, cfg, impl.cfg, "should preserve cfg pointer")
	require.Same(t, ft, impl.client, "should use injected HTTP client")
	require.Equal(t, 3*time.Second, impl.timeout, "falls back to the config timeout")
	require.IsType(t, circuitbreaker.Nop{}, impl.breaker)
}

func TestNew_OptionsOverride(t *testing.T) {
	cfg := &core.UpdateAPIConfig{URL: "https://example.com", Timeout: time.Second}
	fb := &fakeBreaker{}

	impl := New(cfg, Options{HTTPClient: &fakeTransport{}, Timeout: time.Minute, Breaker: fb}).(*service)

	require.Equal(t, time.Minute, impl.timeout)
	require.Same(t, fb, impl.breaker)
}
