package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrDuplicateDepartment = errors.New("department with this name already exists")

// DepartmentRepository handles department data access.
type DepartmentRepository struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

func (r *DepartmentRepository) Create(ctx context.Context, d *model.Department) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO departments (name, acronym, school_id) VALUES ($1, $2, $3) RETURNING id`,
		d.Name, d.Acronym, d.SchoolID,
	).Scan(&d.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateDepartment
		}
		return err
	}
	return nil
}

// CreateBatch inserts several departments in one transaction; any duplicate
// rolls back the whole batch.
func (r *DepartmentRepository) CreateBatch(ctx context.Context, departments []model.Department) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range departments {
		d := &departments[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO departments (name, acronym, school_id) VALUES ($1, $2, $3) RETURNING id`,
			d.Name, d.Acronym, d.SchoolID,
		).Scan(&d.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDuplicateDepartment
			}
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int) (*model.Department, error) {
	d := &model.Department{}
	err := r.pool.QueryRow(ctx,
		`SELECT d.id, d.name, d.acronym, d.school_id, s.name
		 FROM departments d JOIN schools s ON s.id = d.school_id
		 WHERE d.id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Acronym, &d.SchoolID, &d.SchoolName)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]model.Department, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT d.id, d.name, d.acronym, d.school_id, s.name
		 FROM departments d JOIN schools s ON s.id = d.school_id
		 ORDER BY s.name, d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []model.Department
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Acronym, &d.SchoolID, &d.SchoolName); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// GetAllAcademic returns departments that take part in course allocation,
// excluding administrative service units.
func (r *DepartmentRepository) GetAllAcademic(ctx context.Context) ([]model.Department, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	academic := make([]model.Department, 0, len(all))
	for _, d := range all {
		if !d.IsAdministrative() {
			academic = append(academic, d)
		}
	}
	return academic, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d *model.Department) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE departments SET name = $1, acronym = $2, school_id = $3 WHERE id = $4`,
		d.Name, d.Acronym, d.SchoolID, d.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateDepartment
		}
		return err
	}
	return nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	return err
}
