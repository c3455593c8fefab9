package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrDuplicateSlot = errors.New("this course is already in the curriculum for the program, level and semester")

const slotSelect = `
	SELECT pc.id, pc.program_id, p.name, pc.course_id, c.code, c.title, c.unit,
	       pc.level_id, l.name, pc.semester_id, sem.name, pc.bulletin_id, b.name,
	       d.id, d.name, sch.id, sch.name, c.course_type_id, ct.name
	FROM program_courses pc
	JOIN programs p ON p.id = pc.program_id
	JOIN courses c ON c.id = pc.course_id
	JOIN levels l ON l.id = pc.level_id
	JOIN semesters sem ON sem.id = pc.semester_id
	JOIN bulletins b ON b.id = pc.bulletin_id
	JOIN departments d ON d.id = p.department_id
	JOIN schools sch ON sch.id = d.school_id
	LEFT JOIN course_types ct ON ct.id = c.course_type_id`

// ProgramCourseRepository handles curriculum slot data access. A slot binds
// (program, course, level, semester) within one bulletin.
type ProgramCourseRepository struct {
	pool *pgxpool.Pool
}

func NewProgramCourseRepository(pool *pgxpool.Pool) *ProgramCourseRepository {
	return &ProgramCourseRepository{pool: pool}
}

// CreateSlot upserts the course by code and attaches it to the curriculum in
// one transaction. Returns the new slot id.
func (r *ProgramCourseRepository) CreateSlot(ctx context.Context, req *model.CreateCourseRequest) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	id, err := createSlotTx(ctx, tx, req)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit(ctx)
}

// CreateSlotBatch inserts several curriculum slots atomically; the first
// duplicate rolls back the whole batch.
func (r *ProgramCourseRepository) CreateSlotBatch(ctx context.Context, reqs []model.CreateCourseRequest) ([]int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]int, 0, len(reqs))
	for i := range reqs {
		id, err := createSlotTx(ctx, tx, &reqs[i])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, tx.Commit(ctx)
}

func createSlotTx(ctx context.Context, tx pgx.Tx, req *model.CreateCourseRequest) (int, error) {
	var courseID int
	err := tx.QueryRow(ctx,
		`INSERT INTO courses (code, title, unit, course_type_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (code) DO UPDATE SET title = EXCLUDED.title, unit = EXCLUDED.unit
		 RETURNING id`,
		req.Code, req.Title, req.Unit, req.CourseTypeID,
	).Scan(&courseID)
	if err != nil {
		return 0, err
	}

	var slotID int
	err = tx.QueryRow(ctx,
		`INSERT INTO program_courses (program_id, course_id, level_id, semester_id, bulletin_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		req.ProgramID, courseID, req.LevelID, req.SemesterID, req.BulletinID,
	).Scan(&slotID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateSlot
		}
		return 0, err
	}

	if req.SpecializationID != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO program_course_specializations (program_course_id, specialization_id)
			 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			slotID, *req.SpecializationID)
		if err != nil {
			return 0, err
		}
	}
	return slotID, nil
}

// ListDepartmentSlots returns the fully joined slots of a department for the
// given semesters, limited to the active bulletin plus any explicitly carried
// slot ids from older bulletins.
func (r *ProgramCourseRepository) ListDepartmentSlots(ctx context.Context, departmentID int, semesterIDs []int, activeBulletinID int, carriedSlotIDs []int) ([]model.SlotDetail, error) {
	if carriedSlotIDs == nil {
		carriedSlotIDs = []int{}
	}
	rows, err := r.pool.Query(ctx, slotSelect+`
		WHERE p.department_id = $1
		  AND pc.semester_id = ANY($2)
		  AND (pc.bulletin_id = $3 OR pc.id = ANY($4))
		ORDER BY p.name, l.name, c.code`,
		departmentID, semesterIDs, activeBulletinID, carriedSlotIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanSlotsWithSpecializations(ctx, rows)
}

// ListBulletinSlots returns every slot of one bulletin, for catalog browsing.
func (r *ProgramCourseRepository) ListBulletinSlots(ctx context.Context, bulletinID int) ([]model.SlotDetail, error) {
	rows, err := r.pool.Query(ctx, slotSelect+`
		WHERE pc.bulletin_id = $1
		ORDER BY sch.name, d.name, p.name, l.name, c.code`, bulletinID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanSlotsWithSpecializations(ctx, rows)
}

// FindSlot resolves a slot by its curriculum coordinates within the
// allocatable scope: the active bulletin first, then carried legacy slots.
// semesterIDs is the semester pool the slot may live in; summer allocations
// pass both regular semesters. Returns (nil, nil) when no slot matches.
func (r *ProgramCourseRepository) FindSlot(ctx context.Context, programID, courseID, levelID int, semesterIDs []int, activeBulletinID int, carriedSlotIDs []int) (*model.SlotDetail, error) {
	if carriedSlotIDs == nil {
		carriedSlotIDs = []int{}
	}
	rows, err := r.pool.Query(ctx, slotSelect+`
		WHERE pc.program_id = $1 AND pc.course_id = $2 AND pc.level_id = $3 AND pc.semester_id = ANY($4)
		  AND (pc.bulletin_id = $5 OR pc.id = ANY($6))
		ORDER BY (pc.bulletin_id = $5) DESC, pc.bulletin_id DESC
		LIMIT 1`,
		programID, courseID, levelID, semesterIDs, activeBulletinID, carriedSlotIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots, err := r.scanSlotsWithSpecializations(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}
	return &slots[0], nil
}

func (r *ProgramCourseRepository) GetSlot(ctx context.Context, id int) (*model.SlotDetail, error) {
	rows, err := r.pool.Query(ctx, slotSelect+` WHERE pc.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots, err := r.scanSlotsWithSpecializations(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &slots[0], nil
}

func (r *ProgramCourseRepository) scanSlotsWithSpecializations(ctx context.Context, rows pgx.Rows) ([]model.SlotDetail, error) {
	var slots []model.SlotDetail
	var ids []int
	for rows.Next() {
		var s model.SlotDetail
		if err := rows.Scan(&s.ID, &s.ProgramID, &s.ProgramName, &s.CourseID, &s.CourseCode,
			&s.CourseTitle, &s.Units, &s.LevelID, &s.LevelName, &s.SemesterID, &s.SemesterName,
			&s.BulletinID, &s.BulletinName, &s.DepartmentID, &s.DepartmentName,
			&s.SchoolID, &s.SchoolName, &s.CourseTypeID, &s.CourseTypeName); err != nil {
			return nil, err
		}
		s.Specializations = []string{}
		slots = append(slots, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return slots, nil
	}

	specs, err := r.SpecializationsForSlots(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if names, ok := specs[slots[i].ID]; ok {
			slots[i].Specializations = names
		}
	}
	return slots, nil
}

// SpecializationsForSlots returns the specialization names tagged on each of
// the given slots, keyed by slot id.
func (r *ProgramCourseRepository) SpecializationsForSlots(ctx context.Context, slotIDs []int) (map[int][]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT pcs.program_course_id, s.name
		 FROM program_course_specializations pcs
		 JOIN specializations s ON s.id = pcs.specialization_id
		 WHERE pcs.program_course_id = ANY($1)
		 ORDER BY s.name`, slotIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specs := make(map[int][]string)
	for rows.Next() {
		var slotID int
		var name string
		if err := rows.Scan(&slotID, &name); err != nil {
			return nil, err
		}
		specs[slotID] = append(specs[slotID], name)
	}
	return specs, rows.Err()
}

// GetOrCreateSpecialization returns the id of the named specialization,
// creating it on first use.
func (r *ProgramCourseRepository) GetOrCreateSpecialization(ctx context.Context, name string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO specializations (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, name).Scan(&id)
	return id, err
}

func (r *ProgramCourseRepository) GetAllSpecializations(ctx context.Context) ([]model.Specialization, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM specializations ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []model.Specialization
	for rows.Next() {
		var s model.Specialization
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, rows.Err()
}

// UpdateSlot moves a slot within the curriculum and refreshes its course
// fields in one transaction.
func (r *ProgramCourseRepository) UpdateSlot(ctx context.Context, id int, req *model.UpdateCourseSlotRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if req.Code != "" || req.Title != "" || req.Unit != 0 {
		_, err = tx.Exec(ctx,
			`UPDATE courses SET
			   code = COALESCE(NULLIF($1, ''), code),
			   title = COALESCE(NULLIF($2, ''), title),
			   unit = CASE WHEN $3 > 0 THEN $3 ELSE unit END
			 WHERE id = (SELECT course_id FROM program_courses WHERE id = $4)`,
			req.Code, req.Title, req.Unit, id)
		if err != nil {
			return err
		}
	}

	if req.ProgramID != 0 || req.LevelID != 0 || req.SemesterID != 0 || req.BulletinID != 0 {
		_, err = tx.Exec(ctx,
			`UPDATE program_courses SET
			   program_id = CASE WHEN $1 > 0 THEN $1 ELSE program_id END,
			   level_id = CASE WHEN $2 > 0 THEN $2 ELSE level_id END,
			   semester_id = CASE WHEN $3 > 0 THEN $3 ELSE semester_id END,
			   bulletin_id = CASE WHEN $4 > 0 THEN $4 ELSE bulletin_id END,
			   updated_at = NOW()
			 WHERE id = $5`,
			req.ProgramID, req.LevelID, req.SemesterID, req.BulletinID, id)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDuplicateSlot
			}
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ProgramCourseRepository) DeleteSlot(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM program_courses WHERE id = $1`, id)
	return err
}
