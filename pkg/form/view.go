package form

import (
	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/catalog"
	"github.com/DSACMS/enrollment-form-api/pkg/choice"
	"github.com/DSACMS/enrollment-form-api/pkg/pricing"
	"github.com/DSACMS/enrollment-form-api/pkg/validation"
)

const unset = "-/-"

// Summary is the checkout panel shown next to the course table. Amounts are
// rupees formatted for en-IN.
type Summary struct {
	CoursesSelected int    `json:"coursesSelected"`
	PaymentType     string `json:"paymentType"`
	PaymentMode     string `json:"paymentMode"`
	GST             string `json:"gst"`
	Price           string `json:"price"`
	Remaining       string `json:"remaining"`
	Subtotal        string `json:"subtotal"`

	Totals pricing.Totals `json:"totals"`
}

func (f *Form) Summary(s *Session) Summary {
	rec := &s.Record
	totals := pricing.Compute(rec, f.catalog)

	return Summary{
		CoursesSelected: len(rec.Courses()),
		PaymentType:     choice.Coalesce(string(rec.PaymentType), unset),
		PaymentMode:     choice.Coalesce(string(rec.PaymentMode), unset),
		GST:             choice.Ternary(rec.PaymentMode == candidate.Online, "18%", "NA"),
		Price:           catalog.FormatPrice(totals.Base),
		Remaining: choice.FuncTernary(rec.PaymentType == candidate.PartialPayment,
			func() string { return catalog.FormatPrice(totals.DisplayRemaining()) },
			func() string { return "NA" },
		),
		Subtotal: catalog.FormatPrice(totals.Taxed),
		Totals:   totals,
	}
}

// View is everything the dashboard needs to render a session.
type View struct {
	ID           string            `json:"id"`
	CandidateID  string            `json:"candidateId"`
	Step         Step              `json:"step"`
	StepLabel    string            `json:"stepLabel"`
	Steps        []string          `json:"steps"`
	CanRetreat   bool              `json:"canRetreat"`
	Record       candidate.Record  `json:"record"`
	Errors       validation.Errors `json:"errors"`
	Summary      Summary           `json:"summary"`
	Notification *Notification     `json:"notification"`
	Redirect     *Redirect         `json:"redirect,omitempty"`
	// Years since graduation, from the PG year when present.
	YearGap *int `json:"yearGap,omitempty"`
}

func (f *Form) View(s *Session) View {
	now := f.now()

	v := View{
		ID:          s.ID,
		CandidateID: s.CandidateID,
		Step:        s.Step,
		StepLabel:   s.Step.String(),
		Steps:       Steps(),
		CanRetreat:  s.Step != StepPersonal,
		Record:      s.Record,
		Errors:      s.Errors,
		Summary:     f.Summary(s),
		Redirect:    s.Redirect,
	}

	if s.Notification.Visible(now) {
		n := s.Notification
		v.Notification = &n
	}

	if gap, ok := s.Record.YearGap(now); ok {
		v.YearGap = &gap
	}

	return v
}
