package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

// GeneralTrack is the synthetic specialization shown for slots that carry no
// specialization tag.
const GeneralTrack = "General"

// ScopeService resolves which curriculum slots a department may allocate in
// the active session: the active bulletin's slots plus legacy slots the
// department has already allocated, so a bulletin switch never hides work in
// progress.
type ScopeService struct {
	sessions    SessionStore
	bulletins   BulletinStore
	semesters   SemesterStore
	slots       SlotStore
	allocations AllocationStore
	workflow    WorkflowStore
	departments DepartmentStore
}

func NewScopeService(sessions SessionStore, bulletins BulletinStore, semesters SemesterStore,
	slots SlotStore, allocations AllocationStore, workflow WorkflowStore, departments DepartmentStore) *ScopeService {
	return &ScopeService{
		sessions:    sessions,
		bulletins:   bulletins,
		semesters:   semesters,
		slots:       slots,
		allocations: allocations,
		workflow:    workflow,
		departments: departments,
	}
}

// ActiveContext returns the active session and bulletin, failing when either
// is missing.
func (s *ScopeService) ActiveContext(ctx context.Context) (*model.AcademicSession, *model.Bulletin, error) {
	session, err := s.sessions.GetActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrNoActiveSession
	}
	bulletin, err := s.bulletins.GetActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	if bulletin == nil {
		return nil, nil, ErrNoActiveBulletin
	}
	return session, bulletin, nil
}

// CarriedSlotIDs returns the legacy slot ids kept visible for a department:
// every slot it has allocated in the session, whatever the bulletin.
func (s *ScopeService) CarriedSlotIDs(ctx context.Context, departmentID, sessionID int) ([]int, error) {
	return s.allocations.AllocatedSlotIDs(ctx, departmentID, sessionID)
}

// Semester resolves a semester by id, mapping absence to the domain error.
func (s *ScopeService) Semester(ctx context.Context, semesterID int) (*model.Semester, error) {
	semester, err := s.semesters.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSemesterNotFound
		}
		return nil, err
	}
	return semester, nil
}

// semesterScopeIDs maps a semester onto the semesters whose slots feed it.
// Summer has no slots of its own; its candidate pool is the union of first
// and second semester. A summer scope may legitimately be empty.
func (s *ScopeService) semesterScopeIDs(ctx context.Context, semester *model.Semester) ([]int, error) {
	if semester.Name != model.SemesterSummer {
		return []int{semester.ID}, nil
	}
	var ids []int
	for _, name := range []string{model.SemesterFirst, model.SemesterSecond} {
		sem, err := s.semesters.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if sem != nil {
			ids = append(ids, sem.ID)
		}
	}
	return ids, nil
}

// ResolveSlot finds the allocatable slot at the given curriculum coordinates
// for a department, preferring the active bulletin over carried legacy
// slots. The slot is searched in the semester's scope pool, so a summer
// request resolves against the regular semesters' slots. The slot must
// belong to the department.
func (s *ScopeService) ResolveSlot(ctx context.Context, departmentID, programID, courseID, levelID, semesterID int) (*model.SlotDetail, *model.AcademicSession, error) {
	session, bulletin, err := s.ActiveContext(ctx)
	if err != nil {
		return nil, nil, err
	}
	semester, err := s.Semester(ctx, semesterID)
	if err != nil {
		return nil, nil, err
	}
	scopeIDs, err := s.semesterScopeIDs(ctx, semester)
	if err != nil {
		return nil, nil, err
	}
	if len(scopeIDs) == 0 {
		return nil, nil, ErrSlotNotInScope
	}
	carried, err := s.CarriedSlotIDs(ctx, departmentID, session.ID)
	if err != nil {
		return nil, nil, err
	}
	slot, err := s.slots.FindSlot(ctx, programID, courseID, levelID, scopeIDs, bulletin.ID, carried)
	if err != nil {
		return nil, nil, err
	}
	if slot == nil {
		return nil, nil, ErrSlotNotInScope
	}
	if slot.DepartmentID != departmentID {
		return nil, nil, ErrSlotNotOwned
	}
	return slot, session, nil
}

// DepartmentWorkspace builds the nested allocation view a department sees
// for one semester: programs, levels and course rows with their allocations,
// with one row per specialization track.
func (s *ScopeService) DepartmentWorkspace(ctx context.Context, departmentID, semesterID int) (*model.SemesterAllocationView, error) {
	session, bulletin, err := s.ActiveContext(ctx)
	if err != nil {
		return nil, err
	}
	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	semester, err := s.Semester(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	view := &model.SemesterAllocationView{
		SessionID:      session.ID,
		SessionName:    session.Name,
		SemesterID:     semester.ID,
		SemesterName:   semester.Name,
		DepartmentID:   department.ID,
		DepartmentName: department.Name,
		Programs:       []model.ProgramAllocationView{},
	}

	state, err := s.workflow.Get(ctx, departmentID, session.ID, semesterID)
	if err != nil {
		return nil, err
	}
	if state != nil {
		view.Submitted = state.Submitted
		view.Vetted = state.Vetted
	}

	scopeIDs, err := s.semesterScopeIDs(ctx, semester)
	if err != nil {
		return nil, err
	}
	if len(scopeIDs) == 0 {
		return view, nil
	}

	carried, err := s.CarriedSlotIDs(ctx, departmentID, session.ID)
	if err != nil {
		return nil, err
	}
	slots, err := s.slots.ListDepartmentSlots(ctx, departmentID, scopeIDs, bulletin.ID, carried)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return view, nil
	}

	slotIDs := make([]int, len(slots))
	for i, slot := range slots {
		slotIDs[i] = slot.ID
	}
	allocations, err := s.allocations.ListForSlots(ctx, slotIDs, session.ID, semester.ID)
	if err != nil {
		return nil, err
	}

	view.Programs = buildProgramViews(slots, allocations, bulletin.ID)
	return view, nil
}

func buildProgramViews(slots []model.SlotDetail, allocations map[int][]model.CourseAllocation, activeBulletinID int) []model.ProgramAllocationView {
	type levelKey struct {
		programID int
		levelID   int
	}
	programs := make(map[int]*model.ProgramAllocationView)
	levels := make(map[levelKey]*model.LevelAllocationView)

	for _, slot := range slots {
		p, ok := programs[slot.ProgramID]
		if !ok {
			p = &model.ProgramAllocationView{ProgramID: slot.ProgramID, ProgramName: slot.ProgramName}
			programs[slot.ProgramID] = p
		}
		key := levelKey{slot.ProgramID, slot.LevelID}
		if _, ok := levels[key]; !ok {
			levels[key] = &model.LevelAllocationView{LevelID: slot.LevelID, LevelName: slot.LevelName}
		}
		lv := levels[key]

		slotAllocs := allocations[slot.ID]
		views := make([]model.AllocationView, 0, len(slotAllocs))
		for _, a := range slotAllocs {
			views = append(views, model.AllocationView{
				ID:           a.ID,
				LecturerID:   a.LecturerID,
				LecturerName: a.LecturerName,
				GroupName:    a.GroupName,
				ClassSize:    a.ClassSize,
				ClassOption:  a.ClassOption,
				IsLead:       a.IsLead,
			})
		}

		// One course row per specialization track; untagged slots show as
		// the general track.
		tracks := slot.Specializations
		if len(tracks) == 0 {
			tracks = []string{GeneralTrack}
		}
		for _, track := range tracks {
			lv.Courses = append(lv.Courses, model.CourseSlotView{
				ProgramCourseID: slot.ID,
				CourseID:        slot.CourseID,
				Code:            slot.CourseCode,
				Title:           slot.CourseTitle,
				Unit:            slot.Units,
				Specialization:  track,
				BulletinID:      slot.BulletinID,
				IsLegacy:        slot.BulletinID != activeBulletinID,
				IsAllocated:     len(slotAllocs) > 0,
				Allocations:     views,
			})
		}
	}

	out := make([]model.ProgramAllocationView, 0, len(programs))
	for _, p := range programs {
		for key, lv := range levels {
			if key.programID != p.ProgramID {
				continue
			}
			sort.Slice(lv.Courses, func(i, j int) bool {
				a, b := lv.Courses[i], lv.Courses[j]
				if a.Specialization != b.Specialization {
					return a.Specialization < b.Specialization
				}
				return a.Code < b.Code
			})
			p.Levels = append(p.Levels, *lv)
		}
		sort.Slice(p.Levels, func(i, j int) bool {
			a, b := levelSortKey(p.Levels[i].LevelName), levelSortKey(p.Levels[j].LevelName)
			if a != b {
				return a < b
			}
			return p.Levels[i].LevelName < p.Levels[j].LevelName
		})
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProgramName < out[j].ProgramName })
	return out
}

// levelSortKey orders levels by their numeric prefix ("100", "200 Level"),
// pushing non-numeric names to the end.
func levelSortKey(name string) int {
	digits := name
	for i, r := range name {
		if r < '0' || r > '9' {
			digits = name[:i]
			break
		}
	}
	digits = strings.TrimSpace(digits)
	if digits == "" {
		return 1 << 30
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 1 << 30
	}
	return n
}
