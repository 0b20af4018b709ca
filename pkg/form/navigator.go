package form

import (
	"context"
	"log/slog"
	"time"
)

// Navigator moves the user away from the form once it is saved.
type Navigator interface {
	Navigate(ctx context.Context, candidateID, path string)
}

type NavigatorFunc func(ctx context.Context, candidateID, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, candidateID, path string) {
	f(ctx, candidateID, path)
}

// LogNavigator only records that the navigation is due. The HTTP API hands
// the redirect to the dashboard through Session.Redirect instead.
type LogNavigator struct {
	Logger *slog.Logger
}

func (n LogNavigator) Navigate(ctx context.Context, candidateID, path string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "navigation due",
		slog.String("candidate_id", candidateID),
		slog.String("path", path),
	)
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
