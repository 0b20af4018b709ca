package pricing

import (
	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/catalog"
)

// GSTRate is the surcharge applied to the course total for online payments.
const GSTRate = 0.18

type PriceLookup interface {
	Lookup(name string) (catalog.Course, bool)
}

type Totals struct {
	// Sum of catalog prices of the selected courses.
	Base float64 `json:"base"`
	// GST component, zero unless paying online.
	GST float64 `json:"gst"`
	// Base plus GST. Stored as totalPayableAmount.
	Taxed float64 `json:"taxed"`
	// Taxed minus the partial amount. Not clamped, may be negative when the
	// partial amount exceeds the total. Stored as remainingAmount.
	Remaining float64 `json:"remaining"`
}

// DisplayRemaining is the remaining amount as shown to the user.
func (t Totals) DisplayRemaining() float64 {
	if t.Remaining < 0 {
		return 0
	}
	return t.Remaining
}

// BaseTotal sums the catalog price of each distinct name. Unknown names add
// nothing.
func BaseTotal(courses []string, prices PriceLookup) float64 {
	seen := make(map[string]struct{}, len(courses))
	var total float64
	for _, name := range courses {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if course, ok := prices.Lookup(name); ok {
			total += course.CoursePrice
		}
	}
	return total
}

// Compute derives the totals for rec without modifying it.
func Compute(rec *candidate.Record, prices PriceLookup) Totals {
	base := BaseTotal(rec.SelectedCourse, prices)

	taxed := base
	if rec.PaymentMode == candidate.Online {
		taxed = base * (1 + GSTRate)
	}

	var remaining float64
	if rec.PaymentType != candidate.FullPayment {
		remaining = taxed - rec.PartialPaidAmount.Float64()
	}

	return Totals{
		Base:      base,
		GST:       taxed - base,
		Taxed:     taxed,
		Remaining: remaining,
	}
}

// Apply computes the totals and writes them into rec's derived fields. It is
// the only writer of totalPayableAmount and remainingAmount.
func Apply(rec *candidate.Record, prices PriceLookup) Totals {
	totals := Compute(rec, prices)
	rec.TotalPayableAmount = totals.Taxed
	rec.RemainingAmount = totals.Remaining
	return totals
}
