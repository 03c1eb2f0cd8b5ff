package assignment

import (
	"github.com/go-playground/validator/v10"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/engine"
)

// Defaults applied to fields omitted at creation.
const (
	DefaultConfidence = 3
	DefaultWeight     = 0.0
	DefaultEstHours   = 0.0
)

// Assignment is the stored form of an assignment, owned by one user.
// Field names follow the persisted JSON shape; ToEngine converts to engine.Assignment.
type Assignment struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	WeightPercent float64 `json:"weightPercent" db:"weight_percent"`
	DueDate       string  `json:"dueDate" db:"due_date"` // YYYY-MM-DD
	Confidence    int     `json:"confidence" db:"confidence"`
	EstHours      float64 `json:"estHours" db:"est_hours"`
	CreatedAt     int64   `json:"createdAt" db:"created_at"` // unix milliseconds
}

// ToEngine converts a stored record to its engine form.
func (a Assignment) ToEngine() (engine.Assignment, error) {
	if core.CleanString(a.Name) == "" {
		return engine.Assignment{}, core.NewValidationError(nil, core.FieldError{Field: "name", Error: "this field cannot be blank"})
	}
	due, err := engine.ParseDate(a.DueDate)
	if err != nil {
		return engine.Assignment{}, core.NewValidationError(err, core.FieldError{Field: "dueDate", Error: err.Error()})
	}
	if a.Confidence < 1 || a.Confidence > 5 {
		return engine.Assignment{}, core.NewValidationError(nil, core.FieldError{Field: "confidence", Error: "must be between 1 and 5"})
	}
	return engine.Assignment{
		Name:           a.Name,
		WeightPercent:  a.WeightPercent,
		DueDate:        due,
		Confidence:     a.Confidence,
		EstimatedHours: a.EstHours,
	}, nil
}

// ToEngine converts every well-formed record, skipping the malformed ones.
func ToEngine(items []Assignment) []engine.Assignment {
	as := make([]engine.Assignment, 0, len(items))
	for _, item := range items {
		if a, err := item.ToEngine(); err == nil {
			as = append(as, a)
		}
	}
	return as
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Name          string   `json:"name" validate:"notblank,max=200"`
	WeightPercent *float64 `json:"weightPercent" validate:"omitempty,min=0,max=100"`
	DueDate       string   `json:"dueDate" validate:"required,isodate"`
	Confidence    *int     `json:"confidence" validate:"omitempty,min=1,max=5"`
	EstHours      *float64 `json:"estHours" validate:"omitempty,min=0"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.DueDate = core.CleanString(na.DueDate)
	return validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
// Omitted fields keep their current value.
type UpdateAssignment struct {
	Name          *string  `json:"name" validate:"omitempty,notblank,max=200"`
	WeightPercent *float64 `json:"weightPercent" validate:"omitempty,min=0,max=100"`
	DueDate       *string  `json:"dueDate" validate:"omitempty,isodate"`
	Confidence    *int     `json:"confidence" validate:"omitempty,min=1,max=5"`
	EstHours      *float64 `json:"estHours" validate:"omitempty,min=0"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	if ua.Name != nil {
		name := core.CleanString(*ua.Name)
		ua.Name = &name
	}
	if ua.DueDate != nil {
		due := core.CleanString(*ua.DueDate)
		ua.DueDate = &due
	}
	return validate.Struct(ua)
}

func (ua UpdateAssignment) apply(a Assignment) Assignment {
	if ua.Name != nil {
		a.Name = *ua.Name
	}
	if ua.WeightPercent != nil {
		a.WeightPercent = *ua.WeightPercent
	}
	if ua.DueDate != nil {
		a.DueDate = *ua.DueDate
	}
	if ua.Confidence != nil {
		a.Confidence = *ua.Confidence
	}
	if ua.EstHours != nil {
		a.EstHours = *ua.EstHours
	}
	return a
}
