package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrDuplicateStaffID = errors.New("lecturer with this staff id already exists")

const lecturerSelect = `
	SELECT lec.id, lec.staff_id, COALESCE(lec.gender, ''), COALESCE(lec.phone, ''),
	       COALESCE(lec.rank, ''), COALESCE(lec.specialization, ''),
	       COALESCE(lec.qualification, ''), COALESCE(lec.other_responsibilities, ''),
	       lec.department_id, COALESCE(u.name, '')
	FROM lecturers lec
	LEFT JOIN users u ON u.lecturer_id = lec.id`

// LecturerRepository handles lecturer profile data access.
type LecturerRepository struct {
	pool *pgxpool.Pool
}

func NewLecturerRepository(pool *pgxpool.Pool) *LecturerRepository {
	return &LecturerRepository{pool: pool}
}

func (r *LecturerRepository) Create(ctx context.Context, l *model.Lecturer) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO lecturers (staff_id, gender, phone, rank, specialization, qualification, other_responsibilities, department_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		l.StaffID, l.Gender, l.Phone, l.Rank, l.Specialization, l.Qualification, l.OtherResponsibilities, l.DepartmentID,
	).Scan(&l.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateStaffID
		}
		return err
	}
	return nil
}

func (r *LecturerRepository) GetByID(ctx context.Context, id int) (*model.Lecturer, error) {
	l := &model.Lecturer{}
	err := r.pool.QueryRow(ctx, lecturerSelect+` WHERE lec.id = $1`, id).Scan(
		&l.ID, &l.StaffID, &l.Gender, &l.Phone, &l.Rank, &l.Specialization,
		&l.Qualification, &l.OtherResponsibilities, &l.DepartmentID, &l.UserName)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetByStaffID returns the lecturer with the given staff id, or (nil, nil)
// when none exists.
func (r *LecturerRepository) GetByStaffID(ctx context.Context, staffID string) (*model.Lecturer, error) {
	l := &model.Lecturer{}
	err := r.pool.QueryRow(ctx, lecturerSelect+` WHERE lec.staff_id = $1`, staffID).Scan(
		&l.ID, &l.StaffID, &l.Gender, &l.Phone, &l.Rank, &l.Specialization,
		&l.Qualification, &l.OtherResponsibilities, &l.DepartmentID, &l.UserName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// FindByName returns every lecturer whose login name matches, case
// insensitively. Callers decide how to treat zero or multiple matches.
func (r *LecturerRepository) FindByName(ctx context.Context, name string) ([]model.Lecturer, error) {
	rows, err := r.pool.Query(ctx, lecturerSelect+` WHERE LOWER(u.name) = LOWER($1)`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLecturers(rows)
}

func (r *LecturerRepository) GetByDepartment(ctx context.Context, departmentID int) ([]model.Lecturer, error) {
	rows, err := r.pool.Query(ctx,
		lecturerSelect+` WHERE lec.department_id = $1 ORDER BY u.name NULLS LAST`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLecturers(rows)
}

func (r *LecturerRepository) GetAll(ctx context.Context) ([]model.Lecturer, error) {
	rows, err := r.pool.Query(ctx, lecturerSelect+` ORDER BY u.name NULLS LAST`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLecturers(rows)
}

func scanLecturers(rows pgx.Rows) ([]model.Lecturer, error) {
	var lecturers []model.Lecturer
	for rows.Next() {
		var l model.Lecturer
		if err := rows.Scan(&l.ID, &l.StaffID, &l.Gender, &l.Phone, &l.Rank, &l.Specialization,
			&l.Qualification, &l.OtherResponsibilities, &l.DepartmentID, &l.UserName); err != nil {
			return nil, err
		}
		lecturers = append(lecturers, l)
	}
	return lecturers, rows.Err()
}

func (r *LecturerRepository) Update(ctx context.Context, l *model.Lecturer) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE lecturers SET gender = $1, phone = $2, rank = $3, specialization = $4,
		   qualification = $5, other_responsibilities = $6, department_id = $7
		 WHERE id = $8`,
		l.Gender, l.Phone, l.Rank, l.Specialization, l.Qualification,
		l.OtherResponsibilities, l.DepartmentID, l.ID)
	return err
}

func (r *LecturerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lecturers WHERE id = $1`, id)
	return err
}
