package circuitbreaker

import (
	"context"
	"errors"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

const (
	defaultFailureThreshold = 5
	defaultFailWindow       = 10
	defaultOpenCooldown     = 30
	defaultHalfOpenLease    = 5
	defaultFailOpen         = true
	defaultPrefix           = "cb:"
)

// State names reported by RedisBreaker.State.
const (
	StateClosed   = "closed"
	StateOpen     = "open"
	StateHalfOpen = "half-open"
	StateUnknown  = "unknown"
)

type Breaker interface {
	Allow(ctx context.Context) error
	OnSuccess(ctx context.Context)
	OnFailure(ctx context.Context)
}

type Options struct {
	// Number of failures inside FailWindow that opens the breaker.
	FailureThreshold int
	// Rolling window failures are counted in.
	FailWindow time.Duration
	// How long the breaker stays open before a probe is let through.
	OpenCoolDown time.Duration
	// Lease held by the single probe request while half-open.
	HalfOpenLease time.Duration
	// Behaviour of Allow when redis cannot be reached.
	// TRUE: let requests through
	// FALSE: block them
	FailOpen bool
	// Key prefix to prevent name clashing.
	Prefix string
}

func DefaultOptions() Options {
	return Options{
		FailureThreshold: defaultFailureThreshold,
		FailWindow:       defaultFailWindow * time.Second,
		OpenCoolDown:     defaultOpenCooldown * time.Second,
		HalfOpenLease:    defaultHalfOpenLease * time.Second,
		FailOpen:         defaultFailOpen,
		Prefix:           defaultPrefix,
	}
}

// Nop never trips. Used when no redis is configured.
type Nop struct{}

func (Nop) Allow(context.Context) error { return nil }
func (Nop) OnSuccess(context.Context)   {}
func (Nop) OnFailure(context.Context)   {}
