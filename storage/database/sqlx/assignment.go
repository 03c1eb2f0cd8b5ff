package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/rpeck07/StudentoS/core/assignment"
)

const assignmentColumns = "id, name, weight_percent, due_date, confidence, est_hours, created_at"

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) ReadAll(ctx context.Context, owner string) ([]assignment.Assignment, error) {
	items := make([]assignment.Assignment, 0)
	q := repo.db.Rebind("SELECT " + assignmentColumns + " FROM assignments WHERE owner_id = ? ORDER BY position")
	if err := repo.db.SelectContext(ctx, &items, q, owner); err != nil {
		return nil, wrapErr(err, "selecting assignments")
	}
	return items, nil
}

// WriteAll replaces the owner's list in one transaction.
func (repo *assignmentRepository) WriteAll(ctx context.Context, owner string, items []assignment.Assignment) (err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind("DELETE FROM assignments WHERE owner_id = ?"), owner); err != nil {
		return wrapErr(err, "deleting assignments")
	}

	insert := tx.Rebind("INSERT INTO assignments (owner_id, position, " + assignmentColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	for pos, a := range items {
		if _, err = tx.ExecContext(ctx, insert, owner, pos, a.ID, a.Name, a.WeightPercent, a.DueDate, a.Confidence, a.EstHours, a.CreatedAt); err != nil {
			return wrapErr(err, "inserting assignment")
		}
	}

	if err = tx.Commit(); err != nil {
		return wrapErr(err, "committing assignments")
	}
	return nil
}
