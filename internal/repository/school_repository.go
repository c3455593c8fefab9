package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

type SchoolRepository struct {
	pool *pgxpool.Pool
}

func NewSchoolRepository(pool *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{pool: pool}
}

func (r *SchoolRepository) Create(ctx context.Context, s *model.School) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO schools (name) VALUES ($1) RETURNING id`,
		s.Name).Scan(&s.ID)
}

func (r *SchoolRepository) GetByID(ctx context.Context, id int) (*model.School, error) {
	s := &model.School{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM schools WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SchoolRepository) GetAll(ctx context.Context) ([]model.School, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM schools ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schools []model.School
	for rows.Next() {
		var s model.School
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

func (r *SchoolRepository) Update(ctx context.Context, s *model.School) error {
	_, err := r.pool.Exec(ctx, `UPDATE schools SET name = $1 WHERE id = $2`, s.Name, s.ID)
	return err
}

func (r *SchoolRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	return err
}
