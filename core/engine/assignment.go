package engine

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// Assignment is one piece of graded coursework as seen by the engine.
// DueDate is a calendar date; its time-of-day part is ignored everywhere.
type Assignment struct {
	Name           string
	WeightPercent  float64 // 0..100, not enforced here
	DueDate        time.Time
	Confidence     int // 1..5, not enforced here
	EstimatedHours float64
}

type assignmentJSON struct {
	Name           string  `json:"name"`
	WeightPercent  float64 `json:"weight_percent"`
	DueDate        string  `json:"due_date"`
	Confidence     int     `json:"confidence"`
	EstimatedHours float64 `json:"estimated_hours"`
}

func (a Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(assignmentJSON{
		Name:           a.Name,
		WeightPercent:  a.WeightPercent,
		DueDate:        FormatDate(a.DueDate),
		Confidence:     a.Confidence,
		EstimatedHours: a.EstimatedHours,
	})
}

func (a *Assignment) UnmarshalJSON(data []byte) error {
	var aux assignmentJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	due, err := ParseDate(aux.DueDate)
	if err != nil {
		return errors.Wrap(err, "decoding due_date")
	}
	*a = Assignment{
		Name:           aux.Name,
		WeightPercent:  aux.WeightPercent,
		DueDate:        due,
		Confidence:     aux.Confidence,
		EstimatedHours: aux.EstimatedHours,
	}
	return nil
}
