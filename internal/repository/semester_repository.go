package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

type SemesterRepository struct {
	pool *pgxpool.Pool
}

func NewSemesterRepository(pool *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{pool: pool}
}

func (r *SemesterRepository) Create(ctx context.Context, s *model.Semester) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO semesters (name, is_active) VALUES ($1, $2) RETURNING id`,
		s.Name, s.IsActive).Scan(&s.ID)
}

func (r *SemesterRepository) GetByID(ctx context.Context, id int) (*model.Semester, error) {
	s := &model.Semester{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, is_active FROM semesters WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByName returns the semester with the given name, or (nil, nil) when it
// does not exist.
func (r *SemesterRepository) GetByName(ctx context.Context, name string) (*model.Semester, error) {
	s := &model.Semester{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, is_active FROM semesters WHERE name = $1`, name,
	).Scan(&s.ID, &s.Name, &s.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SemesterRepository) GetAll(ctx context.Context) ([]model.Semester, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, is_active FROM semesters ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []model.Semester
	for rows.Next() {
		var s model.Semester
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive); err != nil {
			return nil, err
		}
		semesters = append(semesters, s)
	}
	return semesters, rows.Err()
}

func (r *SemesterRepository) Update(ctx context.Context, s *model.Semester) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE semesters SET name = $1, is_active = $2 WHERE id = $3`,
		s.Name, s.IsActive, s.ID)
	return err
}
