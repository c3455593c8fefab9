package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OverviewRepository handles the grouped aggregates behind the allocation
// status overview and the session dashboard.
type OverviewRepository struct {
	pool *pgxpool.Pool
}

func NewOverviewRepository(pool *pgxpool.Pool) *OverviewRepository {
	return &OverviewRepository{pool: pool}
}

// SlotTotalsByDepartment counts each department's allocatable slots: the
// active bulletin's slots plus distinct legacy slots it has allocated in the
// session. Keyed by department id.
func (r *OverviewRepository) SlotTotalsByDepartment(ctx context.Context, activeBulletinID, sessionID int) (map[int]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT department_id, COUNT(*) FROM (
		   SELECT p.department_id, pc.id
		   FROM program_courses pc
		   JOIN programs p ON p.id = pc.program_id
		   WHERE pc.bulletin_id = $1
		   UNION
		   SELECT p.department_id, pc.id
		   FROM course_allocations ca
		   JOIN program_courses pc ON pc.id = ca.program_course_id
		   JOIN programs p ON p.id = pc.program_id
		   WHERE ca.session_id = $2 AND pc.bulletin_id <> $1
		 ) scoped
		 GROUP BY department_id`,
		activeBulletinID, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIntCounts(rows)
}

// AllocatedSlotCountsByDepartment counts the distinct slots each department
// has allocated in the session.
func (r *OverviewRepository) AllocatedSlotCountsByDepartment(ctx context.Context, sessionID int) (map[int]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.department_id, COUNT(DISTINCT ca.program_course_id)
		 FROM course_allocations ca
		 JOIN program_courses pc ON pc.id = ca.program_course_id
		 JOIN programs p ON p.id = pc.program_id
		 WHERE ca.session_id = $1
		 GROUP BY p.department_id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIntCounts(rows)
}

// AllocatedCountsByDepartmentSemester counts distinct allocated slots per
// (department, semester) pair in the session. The semester is the one the
// allocation was made for, so summer activity lands under summer.
func (r *OverviewRepository) AllocatedCountsByDepartmentSemester(ctx context.Context, sessionID int) (map[int]map[int]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.department_id, ca.semester_id, COUNT(DISTINCT ca.program_course_id)
		 FROM course_allocations ca
		 JOIN program_courses pc ON pc.id = ca.program_course_id
		 JOIN programs p ON p.id = pc.program_id
		 WHERE ca.session_id = $1
		 GROUP BY p.department_id, ca.semester_id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNestedCounts(rows)
}

// SlotTotalsByDepartmentSemester breaks the allocatable scope down per
// (department, semester): active-bulletin slots plus carried legacy slots,
// keyed by the slot's own semester. The summer pool is derived by the caller
// from the two regular semesters.
func (r *OverviewRepository) SlotTotalsByDepartmentSemester(ctx context.Context, activeBulletinID, sessionID int) (map[int]map[int]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT department_id, semester_id, COUNT(*) FROM (
		   SELECT p.department_id, pc.semester_id, pc.id
		   FROM program_courses pc
		   JOIN programs p ON p.id = pc.program_id
		   WHERE pc.bulletin_id = $1
		   UNION
		   SELECT p.department_id, pc.semester_id, pc.id
		   FROM course_allocations ca
		   JOIN program_courses pc ON pc.id = ca.program_course_id
		   JOIN programs p ON p.id = pc.program_id
		   WHERE ca.session_id = $2 AND pc.bulletin_id <> $1
		 ) scoped
		 GROUP BY department_id, semester_id`,
		activeBulletinID, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNestedCounts(rows)
}

func scanNestedCounts(rows pgx.Rows) (map[int]map[int]int, error) {
	counts := make(map[int]map[int]int)
	for rows.Next() {
		var outer, inner, count int
		if err := rows.Scan(&outer, &inner, &count); err != nil {
			return nil, err
		}
		if counts[outer] == nil {
			counts[outer] = make(map[int]int)
		}
		counts[outer][inner] = count
	}
	return counts, rows.Err()
}

// LastAllocationByDepartment returns each department's most recent
// allocation write in the session.
func (r *OverviewRepository) LastAllocationByDepartment(ctx context.Context, sessionID int) (map[int]time.Time, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.department_id, MAX(ca.updated_at)
		 FROM course_allocations ca
		 JOIN program_courses pc ON pc.id = ca.program_course_id
		 JOIN programs p ON p.id = pc.program_id
		 WHERE ca.session_id = $1
		 GROUP BY p.department_id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	last := make(map[int]time.Time)
	for rows.Next() {
		var departmentID int
		var at time.Time
		if err := rows.Scan(&departmentID, &at); err != nil {
			return nil, err
		}
		last[departmentID] = at
	}
	return last, rows.Err()
}

// TotalAllocations counts every allocation row in the session.
func (r *OverviewRepository) TotalAllocations(ctx context.Context, sessionID int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_allocations WHERE session_id = $1`, sessionID).Scan(&total)
	return total, err
}

func scanIntCounts(rows pgx.Rows) (map[int]int, error) {
	counts := make(map[int]int)
	for rows.Next() {
		var key, count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
