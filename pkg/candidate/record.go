package candidate

import (
	"encoding/json"
	"reflect"
	"strings"
)

type PaymentType string

const (
	FullPayment    PaymentType = "Full Payment"
	PartialPayment PaymentType = "Partial Payment"
)

type PaymentMode string

const (
	Online PaymentMode = "Online"
	Cash   PaymentMode = "Cash"
)

// Record is the candidate being edited. JSON names match the dashboard's
// candidate document so the record can be sent back unchanged.
type Record struct {
	FullName         string `json:"fullName"`
	DOB              string `json:"dob"`
	Gender           string `json:"gender"`
	ContactNumber    string `json:"contactNumber"`
	AlternateNumber  string `json:"alternateNumber"`
	Email            string `json:"email"`
	CurrentAddress   string `json:"currentAddress"`
	PermanentAddress string `json:"permanentAddress"`
	FatherName       string `json:"fatherName"`
	MotherName       string `json:"motherName"`
	AadharCard       string `json:"aadharCard"`
	PanCard          string `json:"panCard"`
	Reference        string `json:"reference"`

	Degree                  string `json:"degree"`
	UniversityCollegeName   string `json:"universityCollegeName"`
	YearOfPassing           Text   `json:"yearOfPassing"`
	SpecializationMajor     string `json:"specializationMajor"`
	PercentageCgpa          Text   `json:"percentageCgpa"`
	HighestDegree           string `json:"highestDegree"`
	PGUniversityCollegeName string `json:"pgUniversityCollegeName"`
	PGYearOfPassing         Text   `json:"pgYearOfPassing"`
	PGSpecializationMajor   string `json:"pgSpecializationMajor"`
	PGPercentageCgpa        Text   `json:"pgPercentageCgpa"`

	SelectedCourse    []string    `json:"selectedCourse"`
	PaymentType       PaymentType `json:"paymentType"`
	PaymentMode       PaymentMode `json:"paymentMode"`
	PartialPaidAmount Amount      `json:"partialPaidAmount"`

	// Written only by the pricing engine.
	TotalPayableAmount float64 `json:"totalPayableAmount"`
	RemainingAmount    float64 `json:"remainingAmount"`

	// Fields of the loaded document this form does not edit (ids, batch,
	// timestamps). They are echoed back on submission.
	Extra map[string]json.RawMessage `json:"-"`
}

type recordAlias Record

var knownFields = jsonFieldNames(reflect.TypeOf(Record{}))

func jsonFieldNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		names[name] = struct{}{}
	}
	return names
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var alias recordAlias
	if err := json.Unmarshal(b, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for name := range raw {
		if _, ok := knownFields[name]; ok {
			delete(raw, name)
		}
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*r = Record(alias)
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.SelectedCourse == nil {
		r.SelectedCourse = []string{}
	}

	b, err := json.Marshal(recordAlias(r))
	if err != nil || len(r.Extra) == 0 {
		return b, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for name, value := range r.Extra {
		if _, ok := merged[name]; !ok {
			merged[name] = value
		}
	}

	return json.Marshal(merged)
}

// HasCourse reports whether name is in the selected set.
func (r *Record) HasCourse(name string) bool {
	for _, selected := range r.SelectedCourse {
		if selected == name {
			return true
		}
	}
	return false
}

// SelectCourse adds or removes name from the selected set and reports
// whether the set changed.
func (r *Record) SelectCourse(name string, checked bool) bool {
	if checked {
		if r.HasCourse(name) {
			return false
		}
		r.SelectedCourse = append(r.SelectedCourse, name)
		return true
	}

	kept := r.SelectedCourse[:0]
	changed := false
	for _, selected := range r.SelectedCourse {
		if selected == name {
			changed = true
			continue
		}
		kept = append(kept, selected)
	}
	r.SelectedCourse = kept
	return changed
}

// Courses returns the selected names with duplicates removed, in selection
// order.
func (r *Record) Courses() []string {
	seen := make(map[string]struct{}, len(r.SelectedCourse))
	out := make([]string, 0, len(r.SelectedCourse))
	for _, name := range r.SelectedCourse {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Clone returns a deep copy, used to keep the submitted payload independent
// of later edits.
func (r Record) Clone() Record {
	out := r
	if r.SelectedCourse != nil {
		out.SelectedCourse = append([]string(nil), r.SelectedCourse...)
	}
	if r.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}
