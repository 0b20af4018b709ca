package handlers

import (
	"log/slog"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/form"
	"github.com/gofiber/fiber/v2"
)

type fieldRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}

type amountRequest struct {
	Value string `json:"value"`
}

type courseRequest struct {
	CourseName string `json:"courseName" validate:"required"`
	Checked    bool   `json:"checked"`
}

type advanceResponse struct {
	Outcome form.Outcome `json:"outcome"`
	form.View
}

type retreatResponse struct {
	Moved bool `json:"moved"`
	form.View
}

// FormHandlers serves the edit form sessions.
type FormHandlers struct {
	forms  *form.Manager
	logger *slog.Logger
}

func NewFormHandlers(forms *form.Manager, logger *slog.Logger) *FormHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &FormHandlers{
		forms:  forms,
		logger: logger.With(slog.String("component", "form_handlers")),
	}
}

func (h *FormHandlers) view(c *fiber.Ctx, status int, s *form.Session) error {
	return c.Status(status).JSON(h.forms.Form().View(s))
}

// Open starts a session from the candidate document in the body.
func (h *FormHandlers) Open() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rec candidate.Record
		if err := c.BodyParser(&rec); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid candidate record")
		}

		s, err := h.forms.Open(c.UserContext(), c.Params("id"), rec)
		if err != nil {
			return toFiberError(err)
		}

		c.Location("/api/forms/" + s.ID)
		return h.view(c, fiber.StatusCreated, s)
	}
}

func (h *FormHandlers) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := h.forms.Get(c.UserContext(), c.Params("session"))
		if err != nil {
			return toFiberError(err)
		}
		return h.view(c, fiber.StatusOK, s)
	}
}

func (h *FormHandlers) SetField() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req fieldRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		s, err := h.forms.Do(c.UserContext(), c.Params("session"), func(f *form.Form, s *form.Session) error {
			return f.SetField(s, req.Name, req.Value)
		})
		if err != nil {
			return toFiberError(err)
		}
		return h.view(c, fiber.StatusOK, s)
	}
}

func (h *FormHandlers) SetPartialAmount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req amountRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		s, err := h.forms.Do(c.UserContext(), c.Params("session"), func(f *form.Form, s *form.Session) error {
			f.SetPartialPaidAmount(s, req.Value)
			return nil
		})
		if err != nil {
			return toFiberError(err)
		}
		return h.view(c, fiber.StatusOK, s)
	}
}

func (h *FormHandlers) SelectCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req courseRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		s, err := h.forms.Do(c.UserContext(), c.Params("session"), func(f *form.Form, s *form.Session) error {
			return f.SelectCourse(s, req.CourseName, req.Checked)
		})
		if err != nil {
			return toFiberError(err)
		}
		return h.view(c, fiber.StatusOK, s)
	}
}

// Next advances the step, submitting on the last one. A failed submission
// is still a 200: the outcome and notification describe it.
func (h *FormHandlers) Next() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, outcome, err := h.forms.Advance(c.UserContext(), c.Params("session"))
		if err != nil {
			return toFiberError(err)
		}

		h.logger.DebugContext(c.UserContext(), "form advanced",
			slog.String("session_id", s.ID),
			slog.String("outcome", string(outcome)),
		)

		return c.JSON(advanceResponse{
			Outcome: outcome,
			View:    h.forms.Form().View(s),
		})
	}
}

func (h *FormHandlers) Back() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var moved bool
		s, err := h.forms.Do(c.UserContext(), c.Params("session"), func(f *form.Form, s *form.Session) error {
			moved = f.Retreat(s)
			return nil
		})
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(retreatResponse{
			Moved: moved,
			View:  h.forms.Form().View(s),
		})
	}
}

func (h *FormHandlers) DismissNotification() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := h.forms.Do(c.UserContext(), c.Params("session"), func(f *form.Form, s *form.Session) error {
			f.DismissNotification(s)
			return nil
		})
		if err != nil {
			return toFiberError(err)
		}
		return h.view(c, fiber.StatusOK, s)
	}
}
