package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/form"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// bind decodes the JSON body into out and checks its validate tags.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	err := requestValidator.Struct(out)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("field %s failed %s", fe.Field(), fe.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, ", "))
	}
	return err
}

// toFiberError maps domain errors onto HTTP statuses. Anything unknown is
// passed through and becomes a 500 in the error handler.
func toFiberError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, form.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, "form session not found")
	case errors.Is(err, candidate.ErrUnknownField),
		errors.Is(err, candidate.ErrDerivedField),
		errors.Is(err, candidate.ErrInvalidOption),
		errors.Is(err, form.ErrUnknownCourse):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}
