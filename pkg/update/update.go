package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxSnippet = 800

var tracer = otel.Tracer("github.com/DSACMS/enrollment-form-api/pkg/update")

type errorBody struct {
	Message string `json:"message"`
}

func (s *service) endpoint(candidateID string) string {
	return strings.TrimRight(s.cfg.URL, "/") + "/" + url.PathEscape(candidateID)
}

// Update PUTs the full record to {URL}/{candidateID}. Only 200 counts as
// success. A non-200 answer is returned as *Error, anything else wraps
// ErrTransport.
func (s *service) Update(ctx context.Context, candidateID string, rec candidate.Record) (err error) {
	ctx, span := tracer.Start(ctx, "update.candidate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("candidate.id", candidateID)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if s.timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
	}

	target := s.endpoint(candidateID)
	log := s.logger.With(
		slog.String("candidate_id", candidateID),
		slog.String("update_url", target),
	)

	if err := s.breaker.Allow(ctx); err != nil {
		log.Warn("update blocked by circuit breaker", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	body, err := json.Marshal(rec)
	if err != nil {
		log.Error("update marshal failed", slog.Any("error", err))
		return fmt.Errorf("marshal candidate: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	if err != nil {
		log.Error("update create request failed", slog.Any("error", err))
		return fmt.Errorf("%w: create request: %w", ErrTransport, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug("update request prepared",
		slog.String("method", req.Method),
		slog.String("host", req.URL.Host),
		slog.String("path", req.URL.Path),
	)

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		s.breaker.OnFailure(ctx)
		log.Error("update request failed",
			slog.Any("error", err),
			slog.Duration("latency", latency),
		)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(resp.Body)

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	log.Info("update response received",
		slog.Int("status", resp.StatusCode),
		slog.String("content_type", resp.Header.Get("Content-Type")),
		slog.Duration("latency", latency),
	)

	if resp.StatusCode >= http.StatusInternalServerError {
		s.breaker.OnFailure(ctx)
	} else {
		s.breaker.OnSuccess(ctx)
	}

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	snippet := string(respBytes)
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet] + "..."
	}

	log.Error("update non-200",
		slog.Int("status", resp.StatusCode),
		slog.String("www_authenticate", resp.Header.Get("WWW-Authenticate")),
		slog.String("body_snippet", snippet),
	)

	var eb errorBody
	_ = json.Unmarshal(respBytes, &eb)

	return &Error{Status: resp.StatusCode, Message: eb.Message}
}

// IsRejected reports whether err is a backend answer rather than a
// transport failure.
func IsRejected(err error) (*Error, bool) {
	var rejected *Error
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
