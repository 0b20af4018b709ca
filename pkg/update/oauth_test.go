package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DSACMS/enrollment-form-api/pkg/core"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_PreservesAuthOnRedirect(t *testing.T) {
	var seenAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {

		case "/token":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "test-token",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})

		case "/api/candidates/42":
			http.Redirect(w, r, "/v2/candidates/42", http.StatusTemporaryRedirect)

		case "/v2/candidates/42":
			seenAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))

		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	cfg := &core.UpdateAPIConfig{
		URL:          ts.URL + "/api/candidates",
		ClientID:     "abc",
		ClientSecret: "secret",
		TokenURL:     ts.URL + "/token",
	}

	client := newHTTPClient(context.Background(), cfg)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/candidates/42", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, "Bearer test-token", seenAuth)
}

func TestNewHTTPClient_NoTokenURLSendsNoAuth(t *testing.T) {
	var seenAuth = "unset"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := newHTTPClient(context.Background(), &core.UpdateAPIConfig{URL: ts.URL})

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Empty(t, seenAuth)
}
