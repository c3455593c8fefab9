package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrDuplicateProgram = errors.New("program with this name already exists in the department")

type ProgramRepository struct {
	pool *pgxpool.Pool
}

func NewProgramRepository(pool *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{pool: pool}
}

func (r *ProgramRepository) Create(ctx context.Context, p *model.Program) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO programs (name, department_id) VALUES ($1, $2) RETURNING id`,
		p.Name, p.DepartmentID,
	).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateProgram
		}
		return err
	}
	return nil
}

func (r *ProgramRepository) GetByID(ctx context.Context, id int) (*model.Program, error) {
	p := &model.Program{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, department_id FROM programs WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.DepartmentID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByName resolves a program by name within one department, case
// insensitively. Returns (nil, nil) when no program matches.
func (r *ProgramRepository) GetByName(ctx context.Context, departmentID int, name string) (*model.Program, error) {
	p := &model.Program{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, department_id FROM programs
		 WHERE department_id = $1 AND LOWER(name) = LOWER($2)`, departmentID, name,
	).Scan(&p.ID, &p.Name, &p.DepartmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProgramRepository) GetAll(ctx context.Context) ([]model.Program, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, department_id FROM programs ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPrograms(rows)
}

func (r *ProgramRepository) GetByDepartment(ctx context.Context, departmentID int) ([]model.Program, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, department_id FROM programs WHERE department_id = $1 ORDER BY name ASC`,
		departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPrograms(rows)
}

func scanPrograms(rows pgx.Rows) ([]model.Program, error) {
	var programs []model.Program
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.DepartmentID); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *ProgramRepository) Update(ctx context.Context, p *model.Program) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE programs SET name = $1, department_id = $2 WHERE id = $3`,
		p.Name, p.DepartmentID, p.ID)
	return err
}

func (r *ProgramRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	return err
}
