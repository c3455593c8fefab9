package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

// In-memory stores backing the service tests. They mimic the constraints the
// pgx repositories get from the schema: group uniqueness per (slot, session)
// and one workflow row per (department, session, semester).

type fakeSessionStore struct {
	session *model.AcademicSession
}

func (f *fakeSessionStore) GetActive(ctx context.Context) (*model.AcademicSession, error) {
	return f.session, nil
}

type fakeBulletinStore struct {
	bulletin *model.Bulletin
}

func (f *fakeBulletinStore) GetActive(ctx context.Context) (*model.Bulletin, error) {
	return f.bulletin, nil
}

type fakeSemesterStore struct {
	semesters []model.Semester
}

func (f *fakeSemesterStore) GetByID(ctx context.Context, id int) (*model.Semester, error) {
	for _, s := range f.semesters {
		if s.ID == id {
			sem := s
			return &sem, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSemesterStore) GetByName(ctx context.Context, name string) (*model.Semester, error) {
	for _, s := range f.semesters {
		if strings.EqualFold(s.Name, name) {
			sem := s
			return &sem, nil
		}
	}
	return nil, nil
}

func (f *fakeSemesterStore) GetAll(ctx context.Context) ([]model.Semester, error) {
	return f.semesters, nil
}

type fakeProgramStore struct {
	programs []model.Program
}

func (f *fakeProgramStore) GetByName(ctx context.Context, departmentID int, name string) (*model.Program, error) {
	for _, p := range f.programs {
		if p.DepartmentID == departmentID && strings.EqualFold(p.Name, name) {
			prog := p
			return &prog, nil
		}
	}
	return nil, nil
}

type fakeSlotStore struct {
	slots []model.SlotDetail
}

func (f *fakeSlotStore) inScope(slot model.SlotDetail, activeBulletinID int, carried []int) bool {
	if slot.BulletinID == activeBulletinID {
		return true
	}
	for _, id := range carried {
		if id == slot.ID {
			return true
		}
	}
	return false
}

func inSemesterPool(slot model.SlotDetail, semesterIDs []int) bool {
	for _, id := range semesterIDs {
		if slot.SemesterID == id {
			return true
		}
	}
	return false
}

func (f *fakeSlotStore) ListDepartmentSlots(ctx context.Context, departmentID int, semesterIDs []int, activeBulletinID int, carried []int) ([]model.SlotDetail, error) {
	var out []model.SlotDetail
	for _, slot := range f.slots {
		if slot.DepartmentID != departmentID {
			continue
		}
		if !inSemesterPool(slot, semesterIDs) || !f.inScope(slot, activeBulletinID, carried) {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

func (f *fakeSlotStore) FindSlot(ctx context.Context, programID, courseID, levelID int, semesterIDs []int, activeBulletinID int, carried []int) (*model.SlotDetail, error) {
	var found *model.SlotDetail
	for i := range f.slots {
		slot := f.slots[i]
		if slot.ProgramID != programID || slot.CourseID != courseID ||
			slot.LevelID != levelID || !inSemesterPool(slot, semesterIDs) {
			continue
		}
		if !f.inScope(slot, activeBulletinID, carried) {
			continue
		}
		// Active bulletin wins over carried legacy slots.
		if slot.BulletinID == activeBulletinID {
			return &slot, nil
		}
		if found == nil {
			found = &slot
		}
	}
	return found, nil
}

func (f *fakeSlotStore) GetSlot(ctx context.Context, id int) (*model.SlotDetail, error) {
	for i := range f.slots {
		if f.slots[i].ID == id {
			slot := f.slots[i]
			return &slot, nil
		}
	}
	return nil, nil
}

type fakeAllocationStore struct {
	slots       *fakeSlotStore
	allocations []model.CourseAllocation
	nextID      int
}

func (f *fakeAllocationStore) slotOf(id int) *model.SlotDetail {
	for i := range f.slots.slots {
		if f.slots.slots[i].ID == id {
			return &f.slots.slots[i]
		}
	}
	return nil
}

func (f *fakeAllocationStore) AllocatedSlotIDs(ctx context.Context, departmentID, sessionID int) ([]int, error) {
	seen := make(map[int]bool)
	var ids []int
	for _, a := range f.allocations {
		if a.SessionID != sessionID || seen[a.ProgramCourseID] {
			continue
		}
		slot := f.slotOf(a.ProgramCourseID)
		if slot == nil || slot.DepartmentID != departmentID {
			continue
		}
		seen[a.ProgramCourseID] = true
		ids = append(ids, a.ProgramCourseID)
	}
	return ids, nil
}

func (f *fakeAllocationStore) ListForSlots(ctx context.Context, slotIDs []int, sessionID, semesterID int) (map[int][]model.CourseAllocation, error) {
	out := make(map[int][]model.CourseAllocation)
	for _, a := range f.allocations {
		if a.SessionID != sessionID || a.SemesterID != semesterID {
			continue
		}
		for _, id := range slotIDs {
			if a.ProgramCourseID == id {
				out[id] = append(out[id], a)
			}
		}
	}
	return out, nil
}

func sameGroup(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeAllocationStore) ExistsForGroup(ctx context.Context, slotID, sessionID int, groupName *string) (bool, error) {
	for _, a := range f.allocations {
		if a.ProgramCourseID == slotID && a.SessionID == sessionID && sameGroup(a.GroupName, groupName) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAllocationStore) CreateBatch(ctx context.Context, allocations []model.CourseAllocation) (int, error) {
	for i := range allocations {
		exists, _ := f.ExistsForGroup(ctx, allocations[i].ProgramCourseID, allocations[i].SessionID, allocations[i].GroupName)
		if exists {
			return i, repository.ErrDuplicateGroup
		}
		f.nextID++
		allocations[i].ID = f.nextID
		f.allocations = append(f.allocations, allocations[i])
	}
	return -1, nil
}

func (f *fakeAllocationStore) ReplaceForSlot(ctx context.Context, slotID, sessionID, semesterID int, allocations []model.CourseAllocation) error {
	kept := f.allocations[:0]
	for _, a := range f.allocations {
		if a.ProgramCourseID != slotID || a.SessionID != sessionID || a.SemesterID != semesterID {
			kept = append(kept, a)
		}
	}
	f.allocations = kept
	_, err := f.CreateBatch(ctx, allocations)
	return err
}

func (f *fakeAllocationStore) HasAllocations(ctx context.Context, departmentID, sessionID, semesterID int) (bool, error) {
	for _, a := range f.allocations {
		if a.SessionID != sessionID || a.SemesterID != semesterID {
			continue
		}
		slot := f.slotOf(a.ProgramCourseID)
		if slot != nil && slot.DepartmentID == departmentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAllocationStore) ListUnpushedForSlot(ctx context.Context, slotID, sessionID, semesterID int) ([]model.CourseAllocation, error) {
	var out []model.CourseAllocation
	for _, a := range f.allocations {
		if a.ProgramCourseID == slotID && a.SessionID == sessionID &&
			a.SemesterID == semesterID && !a.PushedToUMIS {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAllocationStore) MarkPushed(ctx context.Context, ids []int, pushedBy int, pushedAt time.Time) error {
	for _, id := range ids {
		for i := range f.allocations {
			if f.allocations[i].ID == id {
				f.allocations[i].PushedToUMIS = true
				t := pushedAt
				f.allocations[i].PushedAt = &t
				by := pushedBy
				f.allocations[i].PushedBy = &by
			}
		}
	}
	return nil
}

type fakeWorkflowStore struct {
	states []model.DepartmentAllocationState
	nextID int
}

func (f *fakeWorkflowStore) Get(ctx context.Context, departmentID, sessionID, semesterID int) (*model.DepartmentAllocationState, error) {
	for i := range f.states {
		st := f.states[i]
		if st.DepartmentID == departmentID && st.SessionID == sessionID && st.SemesterID == semesterID {
			return &st, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkflowStore) Create(ctx context.Context, s *model.DepartmentAllocationState) error {
	if existing, _ := f.Get(ctx, s.DepartmentID, s.SessionID, s.SemesterID); existing != nil {
		return repository.ErrStateExists
	}
	f.nextID++
	s.ID = f.nextID
	f.states = append(f.states, *s)
	return nil
}

func (f *fakeWorkflowStore) Update(ctx context.Context, s *model.DepartmentAllocationState) error {
	for i := range f.states {
		if f.states[i].ID == s.ID {
			f.states[i] = *s
			return nil
		}
	}
	return nil
}

func (f *fakeWorkflowStore) Delete(ctx context.Context, id int) error {
	for i := range f.states {
		if f.states[i].ID == id {
			f.states = append(f.states[:i], f.states[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeWorkflowStore) ListBySession(ctx context.Context, sessionID int) ([]model.DepartmentAllocationState, error) {
	var out []model.DepartmentAllocationState
	for _, st := range f.states {
		if st.SessionID == sessionID {
			out = append(out, st)
		}
	}
	return out, nil
}

type fakeDepartmentStore struct {
	departments []model.Department
}

func (f *fakeDepartmentStore) GetByID(ctx context.Context, id int) (*model.Department, error) {
	for _, d := range f.departments {
		if d.ID == id {
			dept := d
			return &dept, nil
		}
	}
	return nil, nil
}

func (f *fakeDepartmentStore) GetAllAcademic(ctx context.Context) ([]model.Department, error) {
	var out []model.Department
	for _, d := range f.departments {
		if !d.IsAdministrative() {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeLecturerStore struct {
	lecturers []model.Lecturer
	err       error
}

func (f *fakeLecturerStore) GetByID(ctx context.Context, id int) (*model.Lecturer, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, l := range f.lecturers {
		if l.ID == id {
			lec := l
			return &lec, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLecturerStore) FindByName(ctx context.Context, name string) ([]model.Lecturer, error) {
	var out []model.Lecturer
	for _, l := range f.lecturers {
		if l.UserName == name {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeHODStore struct {
	names map[int]string
}

func (f *fakeHODStore) HODNames(ctx context.Context) (map[int]string, error) {
	return f.names, nil
}

// fakeOverviewStore derives the overview aggregates from the allocation fake
// so tests exercise the same numbers the SQL would produce.
type fakeOverviewStore struct {
	allocations *fakeAllocationStore
}

func (f *fakeOverviewStore) SlotTotalsByDepartment(ctx context.Context, activeBulletinID, sessionID int) (map[int]int, error) {
	out := make(map[int]int)
	counted := make(map[int]bool)
	for _, slot := range f.allocations.slots.slots {
		if slot.BulletinID == activeBulletinID && !counted[slot.ID] {
			counted[slot.ID] = true
			out[slot.DepartmentID]++
		}
	}
	for _, a := range f.allocations.allocations {
		if a.SessionID != sessionID || counted[a.ProgramCourseID] {
			continue
		}
		slot := f.allocations.slotOf(a.ProgramCourseID)
		if slot != nil {
			counted[a.ProgramCourseID] = true
			out[slot.DepartmentID]++
		}
	}
	return out, nil
}

func (f *fakeOverviewStore) SlotTotalsByDepartmentSemester(ctx context.Context, activeBulletinID, sessionID int) (map[int]map[int]int, error) {
	out := make(map[int]map[int]int)
	counted := make(map[int]bool)
	add := func(slot *model.SlotDetail) {
		if counted[slot.ID] {
			return
		}
		counted[slot.ID] = true
		if out[slot.DepartmentID] == nil {
			out[slot.DepartmentID] = make(map[int]int)
		}
		out[slot.DepartmentID][slot.SemesterID]++
	}
	for i := range f.allocations.slots.slots {
		slot := &f.allocations.slots.slots[i]
		if slot.BulletinID == activeBulletinID {
			add(slot)
		}
	}
	for _, a := range f.allocations.allocations {
		if a.SessionID != sessionID {
			continue
		}
		if slot := f.allocations.slotOf(a.ProgramCourseID); slot != nil {
			add(slot)
		}
	}
	return out, nil
}

func (f *fakeOverviewStore) AllocatedSlotCountsByDepartment(ctx context.Context, sessionID int) (map[int]int, error) {
	out := make(map[int]int)
	counted := make(map[int]bool)
	for _, a := range f.allocations.allocations {
		if a.SessionID != sessionID || counted[a.ProgramCourseID] {
			continue
		}
		slot := f.allocations.slotOf(a.ProgramCourseID)
		if slot != nil {
			counted[a.ProgramCourseID] = true
			out[slot.DepartmentID]++
		}
	}
	return out, nil
}

func (f *fakeOverviewStore) AllocatedCountsByDepartmentSemester(ctx context.Context, sessionID int) (map[int]map[int]int, error) {
	out := make(map[int]map[int]int)
	counted := make(map[[2]int]bool)
	for _, a := range f.allocations.allocations {
		if a.SessionID != sessionID {
			continue
		}
		slot := f.allocations.slotOf(a.ProgramCourseID)
		if slot == nil {
			continue
		}
		key := [2]int{a.SemesterID, a.ProgramCourseID}
		if counted[key] {
			continue
		}
		counted[key] = true
		if out[slot.DepartmentID] == nil {
			out[slot.DepartmentID] = make(map[int]int)
		}
		out[slot.DepartmentID][a.SemesterID]++
	}
	return out, nil
}

func (f *fakeOverviewStore) LastAllocationByDepartment(ctx context.Context, sessionID int) (map[int]time.Time, error) {
	out := make(map[int]time.Time)
	for _, a := range f.allocations.allocations {
		if a.SessionID != sessionID {
			continue
		}
		slot := f.allocations.slotOf(a.ProgramCourseID)
		if slot == nil {
			continue
		}
		if existing, ok := out[slot.DepartmentID]; !ok || a.UpdatedAt.After(existing) {
			out[slot.DepartmentID] = a.UpdatedAt
		}
	}
	return out, nil
}

func (f *fakeOverviewStore) TotalAllocations(ctx context.Context, sessionID int) (int, error) {
	n := 0
	for _, a := range f.allocations.allocations {
		if a.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}
