package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrDuplicateEmail = errors.New("user with this email already exists")

// UserRepository handles login identity data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role, department_id, lecturer_id, admin_user_id, password_hash
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.DepartmentID, &u.LecturerID, &u.AdminUserID, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role, department_id, lecturer_id, admin_user_id, password_hash
		 FROM users WHERE LOWER(email) = LOWER($1)`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.DepartmentID, &u.LecturerID, &u.AdminUserID, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByLecturerID returns the user linked to a lecturer profile, or
// (nil, nil) when the lecturer has no login.
func (r *UserRepository) GetByLecturerID(ctx context.Context, lecturerID int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role, department_id, lecturer_id, admin_user_id, password_hash
		 FROM users WHERE lecturer_id = $1`, lecturerID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.DepartmentID, &u.LecturerID, &u.AdminUserID, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateRole changes a user's role only.
func (r *UserRepository) UpdateRole(ctx context.Context, id int, role model.Role) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	return err
}

// GetHODByDepartment returns the head-of-department user, or (nil, nil) when
// the department has none.
func (r *UserRepository) GetHODByDepartment(ctx context.Context, departmentID int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role, department_id, lecturer_id, admin_user_id, password_hash
		 FROM users WHERE role = 'hod' AND department_id = $1`, departmentID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.DepartmentID, &u.LecturerID, &u.AdminUserID, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// HODNames returns the head-of-department display name per department id.
func (r *UserRepository) HODNames(ctx context.Context) (map[int]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT department_id, name FROM users WHERE role = 'hod' AND department_id IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[int]string)
	for rows.Next() {
		var departmentID int
		var name string
		if err := rows.Scan(&departmentID, &name); err != nil {
			return nil, err
		}
		names[departmentID] = name
	}
	return names, rows.Err()
}

// CreateAcademic inserts a hod/lecturer user together with its lecturer
// profile in one transaction.
func (r *UserRepository) CreateAcademic(ctx context.Context, u *model.User, l *model.Lecturer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
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

	u.LecturerID = &l.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, role, department_id, lecturer_id, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.Name, u.Email, u.Role, u.DepartmentID, u.LecturerID, u.PasswordHash,
	).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return tx.Commit(ctx)
}

// CreateForLecturer inserts a user row attached to an existing lecturer
// profile.
func (r *UserRepository) CreateForLecturer(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, role, department_id, lecturer_id, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.Name, u.Email, u.Role, u.DepartmentID, u.LecturerID, u.PasswordHash,
	).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// CreateAdmin inserts an admin/vetter/superadmin user together with its
// admin profile in one transaction.
func (r *UserRepository) CreateAdmin(ctx context.Context, u *model.User, a *model.AdminUser) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO admin_users (gender, phone, department_id)
		 VALUES ($1, $2, $3) RETURNING id`,
		a.Gender, a.Phone, a.DepartmentID,
	).Scan(&a.ID)
	if err != nil {
		return err
	}

	u.AdminUserID = &a.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, role, department_id, admin_user_id, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		u.Name, u.Email, u.Role, u.DepartmentID, u.AdminUserID, u.PasswordHash,
	).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return tx.Commit(ctx)
}

// ListDetailed returns joined user rows for management listings, paginated.
func (r *UserRepository) ListDetailed(ctx context.Context, limit, offset int) ([]model.UserDetail, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.name, u.email, u.role,
		        COALESCE(lec.gender, au.gender, ''), COALESCE(lec.phone, au.phone, ''),
		        COALESCE(lec.rank, ''), COALESCE(lec.specialization, ''),
		        COALESCE(lec.qualification, ''), COALESCE(lec.other_responsibilities, ''),
		        COALESCE(d.name, '')
		 FROM users u
		 LEFT JOIN lecturers lec ON lec.id = u.lecturer_id
		 LEFT JOIN admin_users au ON au.id = u.admin_user_id
		 LEFT JOIN departments d ON d.id = u.department_id
		 ORDER BY u.name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.UserDetail
	for rows.Next() {
		var d model.UserDetail
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Role, &d.Gender, &d.Phone,
			&d.Rank, &d.Specialization, &d.Qualification, &d.OtherResponsibilities, &d.Department); err != nil {
			return nil, 0, err
		}
		users = append(users, d)
	}
	return users, total, rows.Err()
}

// Update modifies a user and any linked lecturer profile in one transaction.
// Empty request fields leave the stored value unchanged.
func (r *UserRepository) Update(ctx context.Context, id int, req *model.UpdateUserRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE users SET
		   name = COALESCE(NULLIF($1, ''), name),
		   email = COALESCE(NULLIF($2, ''), email),
		   role = COALESCE(NULLIF($3, ''), role),
		   department_id = CASE WHEN $4 > 0 THEN $4 ELSE department_id END
		 WHERE id = $5`,
		req.Name, req.Email, string(req.Role), req.DepartmentID, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE lecturers SET
		   gender = COALESCE(NULLIF($1, ''), gender),
		   phone = COALESCE(NULLIF($2, ''), phone),
		   rank = COALESCE(NULLIF($3, ''), rank),
		   specialization = COALESCE(NULLIF($4, ''), specialization),
		   qualification = COALESCE(NULLIF($5, ''), qualification),
		   other_responsibilities = COALESCE(NULLIF($6, ''), other_responsibilities),
		   department_id = CASE WHEN $7 > 0 THEN $7 ELSE department_id END
		 WHERE id = (SELECT lecturer_id FROM users WHERE id = $8)`,
		req.Gender, req.Phone, req.Rank, req.Specialization, req.Qualification,
		req.OtherResponsibilities, req.DepartmentID, id)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
