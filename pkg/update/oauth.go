package update

import (
	"context"
	"net/http"

	"github.com/DSACMS/enrollment-form-api/pkg/core"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// headerPreservingClient copies the original headers onto redirected
// requests. net/http drops Authorization when the host changes.
func headerPreservingClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(r *http.Request, via []*http.Request) error {
			if len(via) > 0 {
				r.Header = via[0].Header.Clone()
			}

			return nil
		},
	}
}

// newHTTPClient returns a client-credentials client when a token URL is
// configured, otherwise a plain client.
func newHTTPClient(ctx context.Context, cfg *core.UpdateAPIConfig) *http.Client {
	base := headerPreservingClient()
	if cfg.TokenURL == "" {
		return base
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}

	return oauth2.NewClient(ctx, cc.TokenSource(ctx))
}
