package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

type LevelRepository struct {
	pool *pgxpool.Pool
}

func NewLevelRepository(pool *pgxpool.Pool) *LevelRepository {
	return &LevelRepository{pool: pool}
}

func (r *LevelRepository) Create(ctx context.Context, l *model.Level) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO levels (name) VALUES ($1) RETURNING id`,
		l.Name).Scan(&l.ID)
}

func (r *LevelRepository) GetByID(ctx context.Context, id int) (*model.Level, error) {
	l := &model.Level{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM levels WHERE id = $1`, id).Scan(&l.ID, &l.Name)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LevelRepository) GetAll(ctx context.Context) ([]model.Level, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM levels ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []model.Level
	for rows.Next() {
		var l model.Level
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func (r *LevelRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM levels WHERE id = $1`, id)
	return err
}
