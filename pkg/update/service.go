package update

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/circuitbreaker"
	"github.com/DSACMS/enrollment-form-api/pkg/core"
)

// ErrTransport marks failures where no usable answer came back from the
// dashboard backend: network errors, timeouts, an open breaker.
var ErrTransport = errors.New("update transport failure")

// Error is a response other than 200. Message is the backend's "message"
// field when the body carried one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("update rejected: status=%d", e.Status)
	}
	return fmt.Sprintf("update rejected: status=%d message=%q", e.Status, e.Message)
}

// Client sends an edited candidate record back to the dashboard backend.
type Client interface {
	Update(ctx context.Context, candidateID string, rec candidate.Record) error
}

type HTTPTransport interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	// Override for testing the HTTP client
	HTTPClient HTTPTransport
	// Structured logger using slog package
	Logger *slog.Logger
	// Context timeout, defaults to the config timeout
	Timeout time.Duration
	// Guards the backend; nil means no breaker
	Breaker circuitbreaker.Breaker
}

type service struct {
	cfg     *core.UpdateAPIConfig
	client  HTTPTransport
	logger  *slog.Logger
	breaker circuitbreaker.Breaker
	timeout time.Duration
}

func New(cfg *core.UpdateAPIConfig, opts Options) Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "update"),
	)

	client := opts.HTTPClient
	if client == nil {
		client = newHTTPClient(context.Background(), cfg)
	}

	breaker := opts.Breaker
	if breaker == nil {
		breaker = circuitbreaker.Nop{}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}

	return &service{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		breaker: breaker,
		timeout: timeout,
	}
}
