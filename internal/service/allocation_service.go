package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

// AllocationService writes course allocations. Batch writes run in two
// phases: every item is validated against the department's allocatable scope
// first, then the whole batch is committed in one transaction, so a bad item
// never leaves a partial batch behind.
type AllocationService struct {
	cfg         *config.Config
	rdb         *redis.Client
	scope       *ScopeService
	slots       SlotStore
	allocations AllocationStore
	lecturers   LecturerStore
	workflow    WorkflowStore
	semesters   SemesterStore
	programs    ProgramStore
}

func NewAllocationService(cfg *config.Config, rdb *redis.Client, scope *ScopeService,
	slots SlotStore, allocations AllocationStore, lecturers LecturerStore,
	workflow WorkflowStore, semesters SemesterStore, programs ProgramStore) *AllocationService {
	return &AllocationService{
		cfg:         cfg,
		rdb:         rdb,
		scope:       scope,
		slots:       slots,
		allocations: allocations,
		lecturers:   lecturers,
		workflow:    workflow,
		semesters:   semesters,
		programs:    programs,
	}
}

// AllocateBatch validates and persists a batch of allocations for a
// department. Items may name their semester and program instead of carrying
// ids. A validation failure reports the index of the offending item and
// nothing is written. Each row records the semester it was requested for,
// which for summer differs from the slot's own semester.
func (s *AllocationService) AllocateBatch(ctx context.Context, departmentID int, req *model.BatchAllocationRequest) ([]model.CourseAllocation, *model.BatchAllocationError, error) {
	session, bulletin, err := s.scope.ActiveContext(ctx)
	if err != nil {
		return nil, nil, err
	}
	carried, err := s.scope.CarriedSlotIDs(ctx, departmentID, session.ID)
	if err != nil {
		return nil, nil, err
	}

	lockedSemesters := make(map[int]bool)
	scopePools := make(map[int][]int)
	type groupKey struct {
		slotID int
		group  string
	}
	seen := make(map[groupKey]bool)

	rows := make([]model.CourseAllocation, 0, len(req.Allocations))
	for i, item := range req.Allocations {
		semester, err := s.resolveSemester(ctx, item.SemesterID, item.SemesterName)
		if err != nil {
			if isResolutionError(err) {
				return nil, itemError(i, err), nil
			}
			return nil, nil, err
		}
		programID, err := s.resolveProgram(ctx, departmentID, item.ProgramID, item.ProgramName)
		if err != nil {
			if isResolutionError(err) {
				return nil, itemError(i, err), nil
			}
			return nil, nil, err
		}

		locked, ok := lockedSemesters[semester.ID]
		if !ok {
			state, err := s.workflow.Get(ctx, departmentID, session.ID, semester.ID)
			if err != nil {
				return nil, nil, err
			}
			locked = state != nil && state.Submitted
			lockedSemesters[semester.ID] = locked
		}
		if locked {
			return nil, itemError(i, ErrAllocationLocked), nil
		}

		pool, ok := scopePools[semester.ID]
		if !ok {
			pool, err = s.scope.semesterScopeIDs(ctx, semester)
			if err != nil {
				return nil, nil, err
			}
			scopePools[semester.ID] = pool
		}
		if len(pool) == 0 {
			return nil, itemError(i, ErrSlotNotInScope), nil
		}

		slot, err := s.slots.FindSlot(ctx, programID, item.CourseID, item.LevelID, pool, bulletin.ID, carried)
		if err != nil {
			return nil, nil, err
		}
		if slot == nil {
			return nil, itemError(i, ErrSlotNotInScope), nil
		}
		if slot.DepartmentID != departmentID {
			return nil, itemError(i, ErrSlotNotOwned), nil
		}

		lecturer, err := s.resolveLecturer(ctx, item.LecturerID, item.LecturerName)
		if err != nil {
			if isLecturerError(err) {
				return nil, itemError(i, err), nil
			}
			return nil, nil, err
		}

		group := normalizeGroup(item.GroupName)
		key := groupKey{slot.ID, groupKeyString(group)}
		if seen[key] {
			return nil, itemError(i, ErrDuplicateAllocation), nil
		}
		seen[key] = true

		exists, err := s.allocations.ExistsForGroup(ctx, slot.ID, session.ID, group)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			return nil, itemError(i, ErrDuplicateAllocation), nil
		}

		rows = append(rows, buildAllocation(slot, session.ID, semester.ID, lecturer, &item, group))
	}

	if idx, err := s.allocations.CreateBatch(ctx, rows); err != nil {
		// A unique violation here means another writer claimed the group
		// between validation and commit.
		if errors.Is(err, repository.ErrDuplicateGroup) && idx >= 0 {
			return nil, itemError(idx, ErrDuplicateAllocation), nil
		}
		return nil, nil, err
	}

	s.invalidateOverview(ctx, session.ID)
	return rows, nil, nil
}

// ReplaceForSlot swaps every allocation of one slot for the given set in a
// single transaction. An empty set clears the slot.
func (s *AllocationService) ReplaceForSlot(ctx context.Context, departmentID int, req *model.ReplaceAllocationsRequest) ([]model.CourseAllocation, *model.BatchAllocationError, error) {
	slot, session, err := s.scope.ResolveSlot(ctx, departmentID, req.ProgramID, req.CourseID, req.LevelID, req.SemesterID)
	if err != nil {
		return nil, nil, err
	}

	state, err := s.workflow.Get(ctx, departmentID, session.ID, req.SemesterID)
	if err != nil {
		return nil, nil, err
	}
	if state != nil && state.Submitted {
		return nil, nil, ErrAllocationLocked
	}

	seen := make(map[string]bool)
	rows := make([]model.CourseAllocation, 0, len(req.Allocations))
	for i, item := range req.Allocations {
		lecturer, err := s.resolveLecturer(ctx, item.LecturerID, item.LecturerName)
		if err != nil {
			if isLecturerError(err) {
				return nil, itemError(i, err), nil
			}
			return nil, nil, err
		}
		group := normalizeGroup(item.GroupName)
		key := groupKeyString(group)
		if seen[key] {
			return nil, itemError(i, ErrDuplicateAllocation), nil
		}
		seen[key] = true
		rows = append(rows, buildAllocation(slot, session.ID, req.SemesterID, lecturer, &item, group))
	}

	if err := s.allocations.ReplaceForSlot(ctx, slot.ID, session.ID, req.SemesterID, rows); err != nil {
		return nil, nil, err
	}
	s.invalidateOverview(ctx, session.ID)
	return rows, nil, nil
}

// buildAllocation assembles the row to persist. The bulletin the slot lives
// in is frozen onto the row so a later bulletin switch cannot reinterpret it.
func buildAllocation(slot *model.SlotDetail, sessionID, semesterID int, lecturer *model.Lecturer, item *model.AllocationItem, group *string) model.CourseAllocation {
	sourceBulletin := slot.BulletinID
	return model.CourseAllocation{
		ProgramCourseID:  slot.ID,
		SessionID:        sessionID,
		SemesterID:       semesterID,
		LecturerID:       lecturer.ID,
		GroupName:        group,
		ClassSize:        item.ClassSize,
		ClassOption:      normalizeGroup(item.ClassOption),
		IsLead:           model.DeriveIsLead(group),
		IsAllocated:      item.IsAllocated,
		IsSpecial:        item.IsSpecial,
		SourceBulletinID: &sourceBulletin,
		LecturerName:     lecturer.UserName,
	}
}

// resolveSemester accepts a semester by id or by name.
func (s *AllocationService) resolveSemester(ctx context.Context, id int, name string) (*model.Semester, error) {
	if id > 0 {
		semester, err := s.semesters.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrSemesterNotFound
			}
			return nil, err
		}
		return semester, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSemesterNotFound
	}
	semester, err := s.semesters.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if semester == nil {
		return nil, ErrSemesterNotFound
	}
	return semester, nil
}

// resolveProgram accepts a program by id or by name within the department.
func (s *AllocationService) resolveProgram(ctx context.Context, departmentID, id int, name string) (int, error) {
	if id > 0 {
		return id, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrProgramNotFound
	}
	program, err := s.programs.GetByName(ctx, departmentID, name)
	if err != nil {
		return 0, err
	}
	if program == nil {
		return 0, ErrProgramNotFound
	}
	return program.ID, nil
}

// resolveLecturer resolves a lecturer by stable id, falling back to display
// name only when the deployment allows it. Name lookup fails on zero or
// multiple matches. Only a missing row maps to the not-found error; any
// other store failure surfaces as-is.
func (s *AllocationService) resolveLecturer(ctx context.Context, id int, name string) (*model.Lecturer, error) {
	if id > 0 {
		lecturer, err := s.lecturers.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrLecturerNotFound
			}
			return nil, err
		}
		return lecturer, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrLecturerNotFound
	}
	if !s.cfg.AllowLecturerNameLookup {
		return nil, ErrLecturerLookupOff
	}
	matches, err := s.lecturers.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, ErrLecturerNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, ErrAmbiguousLecturer
	}
}

func (s *AllocationService) invalidateOverview(ctx context.Context, sessionID int) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx,
		config.CacheKey.OverviewKey(sessionID),
		config.CacheKey.SemesterStatsKey(sessionID))
}

func isLecturerError(err error) bool {
	return errors.Is(err, ErrLecturerNotFound) ||
		errors.Is(err, ErrAmbiguousLecturer) ||
		errors.Is(err, ErrLecturerLookupOff)
}

func isResolutionError(err error) bool {
	return errors.Is(err, ErrSemesterNotFound) || errors.Is(err, ErrProgramNotFound)
}

func itemError(index int, err error) *model.BatchAllocationError {
	return &model.BatchAllocationError{Index: index, Reason: err.Error()}
}

func normalizeGroup(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func groupKeyString(group *string) string {
	if group == nil {
		return ""
	}
	return fmt.Sprintf("g:%s", strings.ToLower(*group))
}
