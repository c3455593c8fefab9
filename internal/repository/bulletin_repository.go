package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrDuplicateBulletin = errors.New("bulletin with this name already exists")

// BulletinRepository handles curriculum bulletin data access.
type BulletinRepository struct {
	pool *pgxpool.Pool
}

func NewBulletinRepository(pool *pgxpool.Pool) *BulletinRepository {
	return &BulletinRepository{pool: pool}
}

func (r *BulletinRepository) Create(ctx context.Context, b *model.Bulletin) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO bulletins (name, start_year, end_year, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		b.Name, b.StartYear, b.EndYear, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateBulletin
		}
		return err
	}
	return nil
}

func (r *BulletinRepository) GetByID(ctx context.Context, id int) (*model.Bulletin, error) {
	b := &model.Bulletin{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, start_year, end_year, is_active, created_at, updated_at
		 FROM bulletins WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.StartYear, &b.EndYear, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetActive returns the active bulletin, or (nil, nil) when none is active.
func (r *BulletinRepository) GetActive(ctx context.Context) (*model.Bulletin, error) {
	b := &model.Bulletin{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, start_year, end_year, is_active, created_at, updated_at
		 FROM bulletins WHERE is_active = TRUE`,
	).Scan(&b.ID, &b.Name, &b.StartYear, &b.EndYear, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BulletinRepository) GetAll(ctx context.Context) ([]model.Bulletin, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, start_year, end_year, is_active, created_at, updated_at
		 FROM bulletins ORDER BY start_year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bulletins []model.Bulletin
	for rows.Next() {
		var b model.Bulletin
		if err := rows.Scan(&b.ID, &b.Name, &b.StartYear, &b.EndYear, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bulletins = append(bulletins, b)
	}
	return bulletins, rows.Err()
}

// SetActive activates one bulletin and deactivates every other in a single
// transaction, so exactly one bulletin is ever active.
func (r *BulletinRepository) SetActive(ctx context.Context, id int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE bulletins SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `UPDATE bulletins SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *BulletinRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM bulletins WHERE id = $1`, id)
	return err
}
