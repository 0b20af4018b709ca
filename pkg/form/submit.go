package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DSACMS/enrollment-form-api/pkg/choice"
	"github.com/DSACMS/enrollment-form-api/pkg/pricing"
	"github.com/DSACMS/enrollment-form-api/pkg/update"
	"github.com/DSACMS/enrollment-form-api/pkg/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Outcome is the result of Advance.
type Outcome string

const (
	// Moved to the next step.
	OutcomeMoved Outcome = "moved"
	// Validation failed; nothing was sent and the step is unchanged.
	OutcomeInvalid Outcome = "invalid"
	// The record was saved.
	OutcomeSubmitted Outcome = "submitted"
	// The backend answered with something other than 200.
	OutcomeRejected Outcome = "rejected"
	// No answer from the backend.
	OutcomeFailed Outcome = "failed"
)

const instrumentation = "github.com/DSACMS/enrollment-form-api/pkg/form"

var submissions = newSubmissionCounter(otel.Meter(instrumentation), otel.Handle)

// newSubmissionCounter reports a failed registration to handle and counts
// into a noop instrument instead.
func newSubmissionCounter(meter metric.Meter, handle func(error)) metric.Int64Counter {
	counter, err := meter.Int64Counter(
		"form.submissions",
		metric.WithDescription("Form submissions by outcome"),
	)
	if err != nil {
		handle(fmt.Errorf("form.submissions counter: %w", err))
		return noop.Int64Counter{}
	}
	return counter
}

// Advance moves to the next step, or submits when already on the last one.
func (f *Form) Advance(ctx context.Context, s *Session) Outcome {
	if s.Step.Last() {
		return f.submit(ctx, s)
	}

	if s.Step == StepPersonal && f.opts.GatePersonalStep {
		errs, ok := validation.Validate(&s.Record)
		s.Errors = errs
		if !ok {
			f.touch(s)
			return OutcomeInvalid
		}
	}

	s.Step++
	f.touch(s)
	return OutcomeMoved
}

func (f *Form) submit(ctx context.Context, s *Session) (outcome Outcome) {
	ctx, span := f.tracer.Start(ctx, "form.submit")
	span.SetAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("candidate.id", s.CandidateID),
	)
	defer func() {
		span.SetAttributes(attribute.String("form.outcome", string(outcome)))
		submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
		span.End()
		f.touch(s)
	}()

	log := f.logger.With(
		slog.String("session_id", s.ID),
		slog.String("candidate_id", s.CandidateID),
	)

	errs, ok := validation.Validate(&s.Record)
	s.Errors = errs
	if !ok {
		log.Info("form submit blocked by validation", slog.Any("fields", errs.Invalid()))
		return OutcomeInvalid
	}

	totals := pricing.Apply(&s.Record, f.catalog)
	log.Debug("form totals applied",
		slog.Float64("total_payable", totals.Taxed),
		slog.Float64("remaining", totals.Remaining),
	)

	err := f.updater.Update(ctx, s.CandidateID, s.Record.Clone())
	if err == nil {
		f.notify(s, SeveritySuccess, MessageUpdated)
		s.Redirect = &Redirect{
			To:      f.opts.RedirectPath,
			DelayMs: f.opts.RedirectDelay.Milliseconds(),
		}

		navCtx := context.WithoutCancel(ctx)
		candidateID, path := s.CandidateID, f.opts.RedirectPath
		f.scheduler.AfterFunc(f.opts.RedirectDelay, func() {
			f.navigator.Navigate(navCtx, candidateID, path)
		})

		log.Info("form submitted")
		return OutcomeSubmitted
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if rejected, ok := update.IsRejected(err); ok {
		f.notify(s, SeverityError, choice.Coalesce(rejected.Message, MessageRejected))
		log.Warn("form submit rejected",
			slog.Int("status", rejected.Status),
			slog.String("message", rejected.Message),
		)
		return OutcomeRejected
	}

	f.notify(s, SeverityError, MessageUnexpected)
	log.Error("form submit failed", slog.Any("error", err))
	return OutcomeFailed
}
