package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrStateExists = errors.New("allocation state already recorded for the department, session and semester")

// AllocationStateRepository handles the submit/vet workflow records.
type AllocationStateRepository struct {
	pool *pgxpool.Pool
}

func NewAllocationStateRepository(pool *pgxpool.Pool) *AllocationStateRepository {
	return &AllocationStateRepository{pool: pool}
}

// Get returns the workflow record for (department, session, semester), or
// (nil, nil) when none exists. Absence means the department has not
// submitted.
func (r *AllocationStateRepository) Get(ctx context.Context, departmentID, sessionID, semesterID int) (*model.DepartmentAllocationState, error) {
	s := &model.DepartmentAllocationState{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, department_id, session_id, semester_id, is_submitted, is_vetted,
		        submitted_at, vetted_at, submitted_by, vetted_by
		 FROM department_allocation_states
		 WHERE department_id = $1 AND session_id = $2 AND semester_id = $3`,
		departmentID, sessionID, semesterID,
	).Scan(&s.ID, &s.DepartmentID, &s.SessionID, &s.SemesterID, &s.Submitted, &s.Vetted,
		&s.SubmittedAt, &s.VettedAt, &s.SubmittedBy, &s.VettedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create records a submission. The unique constraint on (department, session,
// semester) turns a concurrent double submit into ErrStateExists.
func (r *AllocationStateRepository) Create(ctx context.Context, s *model.DepartmentAllocationState) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO department_allocation_states
		   (department_id, session_id, semester_id, is_submitted, is_vetted, submitted_at, submitted_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		s.DepartmentID, s.SessionID, s.SemesterID, s.Submitted, s.Vetted, s.SubmittedAt, s.SubmittedBy,
	).Scan(&s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrStateExists
		}
		return err
	}
	return nil
}

func (r *AllocationStateRepository) Update(ctx context.Context, s *model.DepartmentAllocationState) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE department_allocation_states
		 SET is_submitted = $1, is_vetted = $2, submitted_at = $3, vetted_at = $4,
		     submitted_by = $5, vetted_by = $6
		 WHERE id = $7`,
		s.Submitted, s.Vetted, s.SubmittedAt, s.VettedAt, s.SubmittedBy, s.VettedBy, s.ID)
	return err
}

// Delete removes the workflow record, returning the department to its
// pre-submission state.
func (r *AllocationStateRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM department_allocation_states WHERE id = $1`, id)
	return err
}

// ListBySession returns every workflow record of a session keyed by
// (department_id, semester_id).
func (r *AllocationStateRepository) ListBySession(ctx context.Context, sessionID int) ([]model.DepartmentAllocationState, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, department_id, session_id, semester_id, is_submitted, is_vetted,
		        submitted_at, vetted_at, submitted_by, vetted_by
		 FROM department_allocation_states WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []model.DepartmentAllocationState
	for rows.Next() {
		var s model.DepartmentAllocationState
		if err := rows.Scan(&s.ID, &s.DepartmentID, &s.SessionID, &s.SemesterID,
			&s.Submitted, &s.Vetted, &s.SubmittedAt, &s.VettedAt, &s.SubmittedBy, &s.VettedBy); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}
