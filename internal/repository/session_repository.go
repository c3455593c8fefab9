package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrDuplicateSession = errors.New("academic session with this name already exists")

// SessionRepository handles academic session data access.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Init creates a session and makes it the only active one. Existing sessions
// are deactivated in the same transaction.
func (r *SessionRepository) Init(ctx context.Context, s *model.AcademicSession) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE academic_sessions SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return err
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO academic_sessions (name, is_active) VALUES ($1, TRUE) RETURNING id`,
		s.Name,
	).Scan(&s.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSession
		}
		return err
	}
	s.IsActive = true
	return tx.Commit(ctx)
}

// GetActive returns the active session, or (nil, nil) when none is active.
func (r *SessionRepository) GetActive(ctx context.Context) (*model.AcademicSession, error) {
	s := &model.AcademicSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, is_active FROM academic_sessions WHERE is_active = TRUE`,
	).Scan(&s.ID, &s.Name, &s.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int) (*model.AcademicSession, error) {
	s := &model.AcademicSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, is_active FROM academic_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) GetAll(ctx context.Context) ([]model.AcademicSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, is_active FROM academic_sessions ORDER BY name DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.AcademicSession
	for rows.Next() {
		var s model.AcademicSession
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SetActive switches the active session in a single transaction.
func (r *SessionRepository) SetActive(ctx context.Context, id int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE academic_sessions SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE academic_sessions SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}
