package form

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/catalog"
	"github.com/DSACMS/enrollment-form-api/pkg/update"
)

type fakeUpdater struct {
	mu    sync.Mutex
	calls []updateCall
	err   error
}

type updateCall struct {
	candidateID string
	record      candidate.Record
}

func (f *fakeUpdater) Update(_ context.Context, candidateID string, rec candidate.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, updateCall{candidateID: candidateID, record: rec})
	return f.err
}

type scheduled struct {
	delay time.Duration
	fn    func()
}

type fakeScheduler struct {
	pending []scheduled
}

func (f *fakeScheduler) AfterFunc(d time.Duration, fn func()) {
	f.pending = append(f.pending, scheduled{delay: d, fn: fn})
}

func (f *fakeScheduler) fire() {
	for _, p := range f.pending {
		p.fn()
	}
	f.pending = nil
}

type navigation struct {
	candidateID string
	path        string
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	form        *Form
	updater     *fakeUpdater
	scheduler   *fakeScheduler
	clock       *fakeClock
	navigations []navigation
}

func newHarness(opts Options) *harness {
	h := &harness{
		updater:   &fakeUpdater{},
		scheduler: &fakeScheduler{},
		clock:     &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)},
	}

	h.form = New(Deps{
		Catalog: catalog.Default(),
		Updater: h.updater,
		Navigator: NavigatorFunc(func(_ context.Context, candidateID, path string) {
			h.navigations = append(h.navigations, navigation{candidateID: candidateID, path: path})
		}),
		Scheduler: h.scheduler,
		Clock:     h.clock.Now,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, opts)

	return h
}

// validCandidate passes every field rule.
func validCandidate() candidate.Record {
	return candidate.Record{
		FullName:       "Asha Verma",
		ContactNumber:  "9876543210",
		Email:          "asha@example.com",
		AadharCard:     "123412341234",
		PanCard:        "ABCDE1234F",
		YearOfPassing:  "2021",
		SelectedCourse: []string{"Java Backend"},
		PaymentType:    candidate.PartialPayment,
		PaymentMode:    candidate.Online,
	}
}

func onPayment(h *harness, rec candidate.Record) *Session {
	s := h.form.Open("cand-1", rec)
	for !s.Step.Last() {
		h.form.Advance(context.Background(), s)
	}
	return s
}

var testRejection = update.Error{Status: 400, Message: "Invalid batch"}
