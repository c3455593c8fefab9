package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/model"
)

// Overview status labels.
const (
	StatusAllocated       = "Allocated"
	StatusStillAllocating = "Still Allocating"
	StatusNotStarted      = "Not Started"
)

const overviewCacheTTL = 5 * time.Minute

// OverviewStateStore is the extended aggregate reader the overview needs on
// top of OverviewStore.
type OverviewStateStore interface {
	OverviewStore
	AllocatedCountsByDepartmentSemester(ctx context.Context, sessionID int) (map[int]map[int]int, error)
}

// OverviewService aggregates every academic department's allocation progress
// for the active session. Snapshots are cached in redis with a short TTL and
// dropped whenever an allocation or workflow write lands.
type OverviewService struct {
	rdb         *redis.Client
	logger      zerolog.Logger
	sessions    SessionStore
	bulletins   BulletinStore
	semesters   SemesterStore
	departments DepartmentStore
	workflow    WorkflowStore
	hods        HODStore
	aggregates  OverviewStateStore
}

func NewOverviewService(rdb *redis.Client, logger zerolog.Logger, sessions SessionStore,
	bulletins BulletinStore, semesters SemesterStore, departments DepartmentStore,
	workflow WorkflowStore, hods HODStore, aggregates OverviewStateStore) *OverviewService {
	return &OverviewService{
		rdb:         rdb,
		logger:      logger.With().Str("component", "overview").Logger(),
		sessions:    sessions,
		bulletins:   bulletins,
		semesters:   semesters,
		departments: departments,
		workflow:    workflow,
		hods:        hods,
		aggregates:  aggregates,
	}
}

// SessionOverview returns one row per academic department with its
// allocation progress in the active session, most recently active first.
func (s *OverviewService) SessionOverview(ctx context.Context) ([]model.OverviewRow, error) {
	session, err := s.sessions.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	bulletin, err := s.bulletins.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if bulletin == nil {
		return nil, ErrNoActiveBulletin
	}

	cacheKey := config.CacheKey.OverviewKey(session.ID)
	if rows, ok := s.cachedRows(ctx, cacheKey); ok {
		return rows, nil
	}

	rows, err := s.buildOverview(ctx, session, bulletin)
	if err != nil {
		return nil, err
	}
	s.cacheRows(ctx, cacheKey, rows)
	return rows, nil
}

func (s *OverviewService) buildOverview(ctx context.Context, session *model.AcademicSession, bulletin *model.Bulletin) ([]model.OverviewRow, error) {
	departments, err := s.departments.GetAllAcademic(ctx)
	if err != nil {
		return nil, err
	}
	semesters, err := s.semesters.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.aggregates.SlotTotalsByDepartment(ctx, bulletin.ID, session.ID)
	if err != nil {
		return nil, err
	}
	semesterTotals, err := s.aggregates.SlotTotalsByDepartmentSemester(ctx, bulletin.ID, session.ID)
	if err != nil {
		return nil, err
	}
	allocated, err := s.aggregates.AllocatedSlotCountsByDepartment(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	perSemester, err := s.aggregates.AllocatedCountsByDepartmentSemester(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	lastWrites, err := s.aggregates.LastAllocationByDepartment(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	hodNames, err := s.hods.HODNames(ctx)
	if err != nil {
		return nil, err
	}
	states, err := s.workflow.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	stateByDeptSemester := make(map[int]map[int]*model.DepartmentAllocationState)
	for i := range states {
		st := &states[i]
		if stateByDeptSemester[st.DepartmentID] == nil {
			stateByDeptSemester[st.DepartmentID] = make(map[int]*model.DepartmentAllocationState)
		}
		stateByDeptSemester[st.DepartmentID][st.SemesterID] = st
	}

	rows := make([]model.OverviewRow, 0, len(departments))
	for _, dept := range departments {
		total := totals[dept.ID]
		done := allocated[dept.ID]

		row := model.OverviewRow{
			DepartmentID:   dept.ID,
			DepartmentName: dept.Name,
			Acronym:        dept.Acronym,
			SchoolName:     dept.SchoolName,
			HODName:        hodNames[dept.ID],
			TotalSlots:     total,
			AllocatedSlots: done,
			Status:         statusLabel(total, done),
			Semesters:      []model.SemesterWorkflowView{},
		}
		if total > 0 {
			row.AllocationRate = float64(done) / float64(total) * 100
		}
		if at, ok := lastWrites[dept.ID]; ok {
			t := at
			row.LastAllocationAt = &t
		}

		for _, sem := range semesters {
			var st *model.DepartmentAllocationState
			if m := stateByDeptSemester[dept.ID]; m != nil {
				st = m[sem.ID]
			}
			semTotal := semesterScopeTotal(semesterTotals[dept.ID], semesters, sem)
			semDone := perSemester[dept.ID][sem.ID]
			view := model.SemesterWorkflowView{
				SemesterID:       sem.ID,
				SemesterName:     sem.Name,
				Status:           st.Status(semDone > 0),
				AllocationStatus: semesterLabel(st, semDone),
				TotalSlots:       semTotal,
				AllocatedSlots:   semDone,
			}
			if semTotal > 0 {
				view.AllocationRate = math.Round(float64(semDone)/float64(semTotal)*1000) / 10
			}
			if st != nil {
				view.Submitted = st.Submitted
				view.Vetted = st.Vetted
				row.Submitted = row.Submitted || st.Submitted
				row.Vetted = row.Vetted || st.Vetted
			}
			row.Semesters = append(row.Semesters, view)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].LastAllocationAt, rows[j].LastAllocationAt
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return rows[i].DepartmentName < rows[j].DepartmentName
		}
	})
	return rows, nil
}

func statusLabel(total, allocated int) string {
	switch {
	case total > 0 && allocated >= total:
		return StatusAllocated
	case allocated > 0:
		return StatusStillAllocating
	default:
		return StatusNotStarted
	}
}

// semesterLabel is the per-semester progress label. A workflow record means
// the department has submitted the semester, so it counts as allocated
// whatever its coverage.
func semesterLabel(st *model.DepartmentAllocationState, allocated int) string {
	switch {
	case st != nil:
		return StatusAllocated
	case allocated > 0:
		return StatusStillAllocating
	default:
		return StatusNotStarted
	}
}

// semesterScopeTotal resolves a semester's allocatable scope size. Summer
// carries no slots of its own; its scope is the union of both regular
// semesters, which are disjoint slot sets.
func semesterScopeTotal(totals map[int]int, semesters []model.Semester, sem model.Semester) int {
	if sem.Name != model.SemesterSummer {
		return totals[sem.ID]
	}
	total := 0
	for _, other := range semesters {
		if other.Name == model.SemesterFirst || other.Name == model.SemesterSecond {
			total += totals[other.ID]
		}
	}
	return total
}

// SessionStats returns aggregate figures for the active session dashboard.
// The compliance score is the share of academic departments that have fully
// allocated their scope.
func (s *OverviewService) SessionStats(ctx context.Context) (*model.SessionStats, error) {
	session, err := s.sessions.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}

	cacheKey := config.CacheKey.SemesterStatsKey(session.ID)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			stats := &model.SessionStats{}
			if json.Unmarshal([]byte(raw), stats) == nil {
				return stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		}
	}

	rows, err := s.SessionOverview(ctx)
	if err != nil {
		return nil, err
	}
	totalAllocations, err := s.aggregates.TotalAllocations(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	stats := &model.SessionStats{
		SessionID:        session.ID,
		SessionName:      session.Name,
		TotalDepartments: len(rows),
		TotalAllocations: totalAllocations,
	}
	for _, row := range rows {
		switch row.Status {
		case StatusAllocated:
			stats.DepartmentsAllocated++
		case StatusStillAllocating:
			stats.DepartmentsStarted++
		}
		if row.Submitted {
			stats.DepartmentsSubmitted++
		}
		if row.Vetted {
			stats.DepartmentsVetted++
		}
	}
	if stats.TotalDepartments > 0 {
		stats.ComplianceScore = float64(stats.DepartmentsAllocated) / float64(stats.TotalDepartments) * 100
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(stats); err == nil {
			s.rdb.Set(ctx, cacheKey, raw, overviewCacheTTL)
		}
	}
	return stats, nil
}

func (s *OverviewService) cachedRows(ctx context.Context, key string) ([]model.OverviewRow, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("overview cache read failed")
		}
		return nil, false
	}
	var rows []model.OverviewRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (s *OverviewService) cacheRows(ctx context.Context, key string, rows []model.OverviewRow) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, overviewCacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("overview cache write failed")
	}
}
