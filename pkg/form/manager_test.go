package form

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(h *harness) *Manager {
	return NewManager(h.form, NewMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestManager_OpenDoGet(t *testing.T) {
	h := newHarness(Options{})
	m := newTestManager(h)
	ctx := context.Background()

	s, err := m.Open(ctx, "cand-1", validCandidate())
	require.NoError(t, err)

	_, err = m.Do(ctx, s.ID, func(f *Form, s *Session) error {
		return f.SetField(s, "fullName", "Asha V.")
	})
	require.NoError(t, err)

	loaded, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha V.", loaded.Record.FullName)
}

func TestManager_FailedOperationIsNotSaved(t *testing.T) {
	h := newHarness(Options{})
	m := newTestManager(h)
	ctx := context.Background()

	s, err := m.Open(ctx, "cand-1", validCandidate())
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = m.Do(ctx, s.ID, func(f *Form, s *Session) error {
		s.Record.FullName = "half-applied"
		return boom
	})
	require.ErrorIs(t, err, boom)

	loaded, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", loaded.Record.FullName)
}

func TestManager_AdvanceSubmits(t *testing.T) {
	h := newHarness(Options{})
	m := newTestManager(h)
	ctx := context.Background()

	s, err := m.Open(ctx, "cand-1", validCandidate())
	require.NoError(t, err)

	var outcome Outcome
	for range 4 {
		_, outcome, err = m.Advance(ctx, s.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, OutcomeSubmitted, outcome)
	require.Len(t, h.updater.calls, 1)

	loaded, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, SeveritySuccess, loaded.Notification.Severity)
	assert.NotNil(t, loaded.Redirect)
}

func TestManager_UnknownSession(t *testing.T) {
	m := newTestManager(newHarness(Options{}))

	_, err := m.Do(context.Background(), "missing", func(*Form, *Session) error { return nil })
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, _, err = m.Advance(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Close(t *testing.T) {
	m := newTestManager(newHarness(Options{}))
	ctx := context.Background()

	s, err := m.Open(ctx, "cand-1", candidate.Record{})
	require.NoError(t, err)
	require.NoError(t, m.Close(ctx, s.ID))

	_, err = m.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
