package form

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/pricing"
	"github.com/DSACMS/enrollment-form-api/pkg/update"
	"github.com/DSACMS/enrollment-form-api/pkg/validation"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var ErrUnknownCourse = errors.New("course not in catalog")

const (
	MessageUpdated    = "Candidate Updated Successfully!"
	MessageRejected   = "Something went wrong!"
	MessageUnexpected = "An unexpected error occured."

	defaultRedirectPath    = "/dashboard/candidates"
	defaultRedirectDelay   = 800 * time.Millisecond
	defaultNotificationTTL = 4 * time.Second
)

type Options struct {
	// Leaving the personal step requires the validated fields to pass.
	GatePersonalStep bool
	RedirectPath     string
	RedirectDelay    time.Duration
	NotificationTTL  time.Duration
}

type Deps struct {
	Catalog   pricing.PriceLookup
	Updater   update.Client
	Navigator Navigator
	Scheduler Scheduler
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *slog.Logger
	// Defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Form applies edits and step transitions to sessions.
type Form struct {
	catalog   pricing.PriceLookup
	updater   update.Client
	navigator Navigator
	scheduler Scheduler
	now       func() time.Time
	logger    *slog.Logger
	tracer    trace.Tracer
	opts      Options
}

func New(deps Deps, opts Options) *Form {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "form"))

	if deps.Navigator == nil {
		deps.Navigator = LogNavigator{Logger: logger}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = TimerScheduler{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.TracerProvider == nil {
		deps.TracerProvider = otel.GetTracerProvider()
	}

	if opts.RedirectPath == "" {
		opts.RedirectPath = defaultRedirectPath
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = defaultRedirectDelay
	}
	if opts.NotificationTTL <= 0 {
		opts.NotificationTTL = defaultNotificationTTL
	}

	return &Form{
		catalog:   deps.Catalog,
		updater:   deps.Updater,
		navigator: deps.Navigator,
		scheduler: deps.Scheduler,
		now:       deps.Clock,
		logger:    logger,
		tracer:    deps.TracerProvider.Tracer(instrumentation),
		opts:      opts,
	}
}

// Open starts a session on the first step with the totals computed once.
// Errors start out empty; validation runs on the first edit.
func (f *Form) Open(candidateID string, rec candidate.Record) *Session {
	now := f.now()

	s := &Session{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		Record:      rec.Clone(),
		Step:        StepPersonal,
		Errors:      validation.NewErrors(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pricing.Apply(&s.Record, f.catalog)

	f.logger.Info("form session opened",
		slog.String("session_id", s.ID),
		slog.String("candidate_id", candidateID),
	)
	return s
}

// SetField applies a single scalar edit. Phone edits longer than ten digits
// are dropped without error, the way the input field ignores the keystroke.
func (f *Form) SetField(s *Session, name, value string) error {
	if name == candidate.FieldPartialPaidAmount {
		f.SetPartialPaidAmount(s, value)
		return nil
	}

	err := s.Record.Set(name, value)
	if errors.Is(err, candidate.ErrPhoneTooLong) {
		f.logger.Debug("phone edit ignored",
			slog.String("session_id", s.ID),
			slog.String("field", name),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}

	s.Errors, _ = validation.Validate(&s.Record)
	if candidate.IsPricingField(name) {
		pricing.Apply(&s.Record, f.catalog)
	}
	f.touch(s)
	return nil
}

// SetPartialPaidAmount parses raw like a number input does. Anything that
// does not start with a number counts as zero.
func (f *Form) SetPartialPaidAmount(s *Session, raw string) {
	s.Record.PartialPaidAmount = candidate.Amount(candidate.ParseAmount(raw))
	pricing.Apply(&s.Record, f.catalog)
	f.touch(s)
}

// SelectCourse ticks or unticks a catalog course.
func (f *Form) SelectCourse(s *Session, name string, checked bool) error {
	if _, ok := f.catalog.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCourse, name)
	}

	if s.Record.SelectCourse(name, checked) {
		pricing.Apply(&s.Record, f.catalog)
		f.touch(s)
	}
	return nil
}

// Retreat moves one step back. It reports false on the first step, where
// going back is disabled.
func (f *Form) Retreat(s *Session) bool {
	if s.Step == StepPersonal {
		return false
	}
	s.Step--
	f.touch(s)
	return true
}

func (f *Form) DismissNotification(s *Session) {
	s.Notification.Open = false
	f.touch(s)
}

func (f *Form) notify(s *Session, severity Severity, message string) {
	s.Notification = Notification{
		Open:      true,
		Message:   message,
		Severity:  severity,
		ExpiresAt: f.now().Add(f.opts.NotificationTTL),
	}
}

func (f *Form) touch(s *Session) {
	s.UpdatedAt = f.now()
}
