package filestore

import (
	"context"
	"encoding/json"

	"github.com/rpeck07/StudentoS/core/assignment"
)

type assignmentRepository struct {
	store *Store
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(s *Store) assignment.Repository {
	return &assignmentRepository{store: s}
}

// assignmentRecord mirrors assignment.Assignment with pointers, so that
// missing keys can be told apart from zero values.
type assignmentRecord struct {
	ID            string   `json:"id"`
	Name          *string  `json:"name"`
	WeightPercent *float64 `json:"weightPercent"`
	DueDate       *string  `json:"dueDate"`
	Confidence    *float64 `json:"confidence"`
	EstHours      *float64 `json:"estHours"`
	CreatedAt     int64    `json:"createdAt"`
}

func (r assignmentRecord) toAssignment() (assignment.Assignment, bool) {
	if r.Name == nil || r.WeightPercent == nil || r.DueDate == nil || r.Confidence == nil || r.EstHours == nil {
		return assignment.Assignment{}, false
	}
	return assignment.Assignment{
		ID:            r.ID,
		Name:          *r.Name,
		WeightPercent: *r.WeightPercent,
		DueDate:       *r.DueDate,
		Confidence:    int(*r.Confidence),
		EstHours:      *r.EstHours,
		CreatedAt:     r.CreatedAt,
	}, true
}

// ReadAll skips records that cannot be decoded or lack a required key.
func (repo *assignmentRepository) ReadAll(_ context.Context, owner string) ([]assignment.Assignment, error) {
	var raw []json.RawMessage
	items := make([]assignment.Assignment, 0)
	if !readJSON(repo.store.dataPath(owner), &raw) {
		return items, nil
	}
	for _, msg := range raw {
		var rec assignmentRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			continue
		}
		if item, ok := rec.toAssignment(); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (repo *assignmentRepository) WriteAll(_ context.Context, owner string, items []assignment.Assignment) error {
	if items == nil {
		items = []assignment.Assignment{}
	}
	return writeJSON(repo.store.dataPath(owner), items)
}
