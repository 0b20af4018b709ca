package handlers

import (
	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/catalog"
	"github.com/DSACMS/enrollment-form-api/pkg/form"
	"github.com/gofiber/fiber/v2"
)

type courseResponse struct {
	catalog.Course
	FormattedPrice string `json:"formattedPrice"`
}

func ListCourses(cat catalog.Catalog) fiber.Handler {
	courses := cat.Courses()
	out := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, courseResponse{
			Course:         course,
			FormattedPrice: catalog.FormatPrice(course.CoursePrice),
		})
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(out)
	}
}

type quoteRequest struct {
	SelectedCourse    []string              `json:"selectedCourse"`
	PaymentType       candidate.PaymentType `json:"paymentType" validate:"omitempty,oneof='Full Payment' 'Partial Payment'"`
	PaymentMode       candidate.PaymentMode `json:"paymentMode" validate:"omitempty,oneof=Online Cash"`
	PartialPaidAmount candidate.Amount      `json:"partialPaidAmount"`
}

// Quote prices a selection without opening a session.
func Quote(f *form.Form) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req quoteRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		s := &form.Session{Record: candidate.Record{
			SelectedCourse:    req.SelectedCourse,
			PaymentType:       req.PaymentType,
			PaymentMode:       req.PaymentMode,
			PartialPaidAmount: req.PartialPaidAmount,
		}}

		return c.JSON(f.Summary(s))
	}
}
