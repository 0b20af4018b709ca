package form

import (
	"time"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/DSACMS/enrollment-form-api/pkg/validation"
)

// Step is a page of the edit form. Steps are visited in order, there is no
// skipping ahead.
type Step int

const (
	StepPersonal Step = iota
	StepEducation
	StepSelection
	StepPayment
)

var stepLabels = [...]string{
	StepPersonal:  "Personal Details",
	StepEducation: "Educational Qualification",
	StepSelection: "Offering Course",
	StepPayment:   "Payment",
}

// Steps lists the step labels in order.
func Steps() []string {
	return append([]string(nil), stepLabels[:]...)
}

func (s Step) String() string {
	if s < StepPersonal || s > StepPayment {
		return "Unknown"
	}
	return stepLabels[s]
}

func (s Step) Last() bool { return s == StepPayment }

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the transient message shown after a submission.
type Notification struct {
	Open      bool      `json:"open"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Visible reports whether the notification should still be shown at now.
func (n Notification) Visible(now time.Time) bool {
	if !n.Open {
		return false
	}
	return n.ExpiresAt.IsZero() || now.Before(n.ExpiresAt)
}

// Redirect tells the dashboard where to go once the record is saved.
type Redirect struct {
	To      string `json:"to"`
	DelayMs int64  `json:"delayMs"`
}

// Session is the state of one candidate's edit form. It is plain data so
// it can be stored between requests; Form holds the behaviour.
type Session struct {
	ID           string            `json:"id"`
	CandidateID  string            `json:"candidateId"`
	Record       candidate.Record  `json:"record"`
	Step         Step              `json:"step"`
	Errors       validation.Errors `json:"errors"`
	Notification Notification      `json:"notification"`
	Redirect     *Redirect         `json:"redirect,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
