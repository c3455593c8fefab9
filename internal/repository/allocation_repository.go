package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

var ErrDuplicateGroup = errors.New("this group is already allocated for the course in the session")

const allocationSelect = `
	SELECT ca.id, ca.program_course_id, ca.session_id, ca.semester_id, ca.lecturer_id,
	       ca.group_name, ca.class_size, ca.class_option, ca.is_lead, ca.is_allocated,
	       ca.is_special_allocation, ca.source_bulletin_id,
	       ca.pushed_to_umis, ca.pushed_at, ca.pushed_by,
	       ca.created_at, ca.updated_at, COALESCE(u.name, ''), c.code, c.title
	FROM course_allocations ca
	JOIN lecturers lec ON lec.id = ca.lecturer_id
	LEFT JOIN users u ON u.lecturer_id = lec.id
	JOIN program_courses pc ON pc.id = ca.program_course_id
	JOIN courses c ON c.id = pc.course_id`

// AllocationRepository handles course allocation data access. Uniqueness of
// (program_course_id, session_id, group_name) is enforced by the database so
// concurrent writers cannot both claim the same group.
type AllocationRepository struct {
	pool *pgxpool.Pool
}

func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

// AllocatedSlotIDs returns the distinct curriculum slot ids a department has
// allocated in the session, across every bulletin. These ids keep legacy
// slots visible after a bulletin switch.
func (r *AllocationRepository) AllocatedSlotIDs(ctx context.Context, departmentID, sessionID int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT ca.program_course_id
		 FROM course_allocations ca
		 JOIN program_courses pc ON pc.id = ca.program_course_id
		 JOIN programs p ON p.id = pc.program_id
		 WHERE p.department_id = $1 AND ca.session_id = $2`,
		departmentID, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListForSlots returns the allocations of the given slots made for one
// (session, semester), keyed by slot id. The semester filter matters for
// summer, where the same slot may also carry regular-semester allocations.
func (r *AllocationRepository) ListForSlots(ctx context.Context, slotIDs []int, sessionID, semesterID int) (map[int][]model.CourseAllocation, error) {
	if len(slotIDs) == 0 {
		return map[int][]model.CourseAllocation{}, nil
	}
	rows, err := r.pool.Query(ctx, allocationSelect+`
		WHERE ca.program_course_id = ANY($1) AND ca.session_id = $2 AND ca.semester_id = $3
		ORDER BY ca.group_name NULLS FIRST`,
		slotIDs, sessionID, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bySlot := make(map[int][]model.CourseAllocation)
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		bySlot[a.ProgramCourseID] = append(bySlot[a.ProgramCourseID], a)
	}
	return bySlot, rows.Err()
}

func scanAllocation(rows pgx.Rows) (model.CourseAllocation, error) {
	var a model.CourseAllocation
	err := rows.Scan(&a.ID, &a.ProgramCourseID, &a.SessionID, &a.SemesterID, &a.LecturerID,
		&a.GroupName, &a.ClassSize, &a.ClassOption, &a.IsLead, &a.IsAllocated, &a.IsSpecial,
		&a.SourceBulletinID, &a.PushedToUMIS, &a.PushedAt, &a.PushedBy,
		&a.CreatedAt, &a.UpdatedAt, &a.LecturerName, &a.CourseCode, &a.CourseTitle)
	return a, err
}

// ExistsForGroup reports whether the slot already carries an allocation with
// the given group name in the session. A nil group matches the nil group.
func (r *AllocationRepository) ExistsForGroup(ctx context.Context, slotID, sessionID int, groupName *string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM course_allocations
		   WHERE program_course_id = $1 AND session_id = $2 AND group_name IS NOT DISTINCT FROM $3
		 )`, slotID, sessionID, groupName).Scan(&exists)
	return exists, err
}

// CreateBatch inserts every allocation in one transaction. On failure it
// reports the index of the offending item; nothing is committed.
func (r *AllocationRepository) CreateBatch(ctx context.Context, allocations []model.CourseAllocation) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return -1, err
	}
	defer tx.Rollback(ctx)

	for i := range allocations {
		if err := insertAllocationTx(ctx, tx, &allocations[i]); err != nil {
			return i, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return -1, err
	}
	return -1, nil
}

// ReplaceForSlot deletes every allocation the slot carries for the given
// (session, semester) and inserts the given set, all in one transaction.
func (r *AllocationRepository) ReplaceForSlot(ctx context.Context, slotID, sessionID, semesterID int, allocations []model.CourseAllocation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM course_allocations
		 WHERE program_course_id = $1 AND session_id = $2 AND semester_id = $3`,
		slotID, sessionID, semesterID)
	if err != nil {
		return err
	}
	for i := range allocations {
		if err := insertAllocationTx(ctx, tx, &allocations[i]); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertAllocationTx(ctx context.Context, tx pgx.Tx, a *model.CourseAllocation) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO course_allocations
		   (program_course_id, session_id, semester_id, lecturer_id, group_name, class_size,
		    class_option, is_lead, is_allocated, is_special_allocation, source_bulletin_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		a.ProgramCourseID, a.SessionID, a.SemesterID, a.LecturerID, a.GroupName, a.ClassSize,
		a.ClassOption, a.IsLead, a.IsAllocated, a.IsSpecial, a.SourceBulletinID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateGroup
		}
		return err
	}
	return nil
}

func (r *AllocationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM course_allocations WHERE id = $1`, id)
	return err
}

// HasAllocations reports whether a department has any allocation recorded
// for the given session and semester. The semester check uses the
// allocation's own semester, so summer submissions see summer allocations
// even though those point at regular-semester slots.
func (r *AllocationRepository) HasAllocations(ctx context.Context, departmentID, sessionID, semesterID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM course_allocations ca
		   JOIN program_courses pc ON pc.id = ca.program_course_id
		   JOIN programs p ON p.id = pc.program_id
		   WHERE p.department_id = $1 AND ca.session_id = $2 AND ca.semester_id = $3
		 )`, departmentID, sessionID, semesterID).Scan(&exists)
	return exists, err
}

// ListUnpushedForSlot returns the slot's allocations for one (session,
// semester) not yet pushed to the university management information system.
func (r *AllocationRepository) ListUnpushedForSlot(ctx context.Context, slotID, sessionID, semesterID int) ([]model.CourseAllocation, error) {
	rows, err := r.pool.Query(ctx, allocationSelect+`
		WHERE ca.program_course_id = $1 AND ca.session_id = $2 AND ca.semester_id = $3
		  AND ca.pushed_to_umis = FALSE
		ORDER BY ca.group_name NULLS FIRST`, slotID, sessionID, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []model.CourseAllocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// MarkPushed flags the rows as pushed and records who pushed them.
func (r *AllocationRepository) MarkPushed(ctx context.Context, ids []int, pushedBy int, pushedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE course_allocations
		 SET pushed_to_umis = TRUE, pushed_at = $1, pushed_by = $2, updated_at = NOW()
		 WHERE id = ANY($3)`, pushedAt, pushedBy, ids)
	return err
}
