package form

import (
	"context"
	"log/slog"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
)

// Manager runs form operations against stored sessions: load, apply, save.
type Manager struct {
	form   *Form
	store  Store
	logger *slog.Logger
}

func NewManager(f *Form, store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		form:   f,
		store:  store,
		logger: logger.With(slog.String("component", "form_manager")),
	}
}

func (m *Manager) Form() *Form { return m.form }

func (m *Manager) Open(ctx context.Context, candidateID string, rec candidate.Record) (*Session, error) {
	s := m.form.Open(candidateID, rec)
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Load(ctx, id)
}

// Do loads the session, applies fn and saves the result. Nothing is saved
// when fn fails.
func (m *Manager) Do(ctx context.Context, id string, fn func(*Form, *Session) error) (*Session, error) {
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(m.form, s); err != nil {
		return s, err
	}

	if err := m.store.Save(ctx, s); err != nil {
		m.logger.Error("form session save failed",
			slog.String("session_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return s, nil
}

// Advance is Do with Form.Advance, returning the outcome.
func (m *Manager) Advance(ctx context.Context, id string) (*Session, Outcome, error) {
	var outcome Outcome
	s, err := m.Do(ctx, id, func(f *Form, s *Session) error {
		outcome = f.Advance(ctx, s)
		return nil
	})
	return s, outcome, err
}

func (m *Manager) Close(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
