package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

// CourseRepository handles the bulletin-independent course catalog and
// course types.
type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, title, unit, course_type_id FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code, &c.Title, &c.Units, &c.CourseTypeID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) GetAll(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, title, unit, course_type_id FROM courses ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Title, &c.Units, &c.CourseTypeID); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *CourseRepository) GetAllTypes(ctx context.Context) ([]model.CourseType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM course_types ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []model.CourseType
	for rows.Next() {
		var t model.CourseType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *CourseRepository) CreateType(ctx context.Context, t *model.CourseType) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO course_types (name) VALUES ($1) RETURNING id`,
		t.Name).Scan(&t.ID)
}
