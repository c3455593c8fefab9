package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/model"
)

func newAllocationFixture(cfg *config.Config) (*AllocationService, *fakeAllocationStore, *fakeWorkflowStore, *fakeLecturerStore) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	scope, allocations, workflow := newScopeFixture()
	lecturers := &fakeLecturerStore{lecturers: []model.Lecturer{
		{ID: 1, StaffID: "STF-A1", DepartmentID: testDeptID, UserName: "John Doe"},
		{ID: 2, StaffID: "STF-A2", DepartmentID: testDeptID, UserName: "Jane Smith"},
		{ID: 3, StaffID: "STF-A3", DepartmentID: testDeptID, UserName: "John Doe"},
	}}
	semesters := &fakeSemesterStore{semesters: testSemesters()}
	programs := &fakeProgramStore{programs: []model.Program{
		{ID: 1, Name: "Computer Science", DepartmentID: testDeptID},
		{ID: 5, Name: "Nursing", DepartmentID: otherDeptID},
	}}
	svc := NewAllocationService(cfg, nil, scope, allocations.slots, allocations, lecturers,
		workflow, semesters, programs)
	return svc, allocations, workflow, lecturers
}

func TestAllocateBatchPersistsValidItems(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)

	created, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 1, GroupName: strPtr("Group A")},
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 2, GroupName: strPtr("Group B")},
		},
	})
	require.NoError(t, err)
	require.Nil(t, itemErr)
	require.Len(t, created, 2)
	assert.Len(t, store.allocations, 2)

	assert.True(t, created[0].IsLead, "group a leads the slot")
	assert.False(t, created[1].IsLead)
	assert.Equal(t, 100, created[0].ProgramCourseID)
	assert.Equal(t, firstSemester, created[0].SemesterID)
	require.NotNil(t, created[0].SourceBulletinID)
	assert.Equal(t, activeBulletin, *created[0].SourceBulletinID)
}

func TestAllocateBatchSummerUsesRegularSlots(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)

	// Summer carries no slots of its own; COSC 111 lives in the first
	// semester and COSC 221 in the second, and both must be reachable.
	created, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: summerSemester, LecturerID: 1, GroupName: strPtr("Group A")},
			{ProgramID: 1, CourseID: 502, LevelID: 2, SemesterID: summerSemester, LecturerID: 2},
		},
	})
	require.NoError(t, err)
	require.Nil(t, itemErr)
	require.Len(t, created, 2)

	assert.Equal(t, 100, created[0].ProgramCourseID)
	assert.Equal(t, 102, created[1].ProgramCourseID)
	// The rows record the semester they were requested for, not the
	// slot's own semester.
	assert.Equal(t, summerSemester, created[0].SemesterID)
	assert.Equal(t, summerSemester, created[1].SemesterID)
	assert.Len(t, store.allocations, 2)
}

func TestAllocateBatchSummerSubmittableAfterwards(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)

	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: summerSemester, LecturerID: 1},
		},
	})
	require.NoError(t, err)
	require.Nil(t, itemErr)

	has, err := store.HasAllocations(context.Background(), testDeptID, 1, summerSemester)
	require.NoError(t, err)
	assert.True(t, has, "summer allocations must count toward summer submission")
}

func TestAllocateBatchResolvesNames(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)

	created, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramName: "Computer Science", CourseID: 500, LevelID: 1,
				SemesterName: "First Semester", LecturerID: 1},
		},
	})
	require.NoError(t, err)
	require.Nil(t, itemErr)
	require.Len(t, created, 1)
	assert.Equal(t, 100, created[0].ProgramCourseID)
	assert.Equal(t, firstSemester, created[0].SemesterID)
	assert.Len(t, store.allocations, 1)
}

func TestAllocateBatchUnknownSemesterName(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)

	created, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterName: "Third Semester", LecturerID: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, 0, itemErr.Index)
	assert.Equal(t, ErrSemesterNotFound.Error(), itemErr.Reason)
	assert.Nil(t, created)
	assert.Empty(t, store.allocations)
}

func TestAllocateBatchUnknownProgramName(t *testing.T) {
	svc, _, _, _ := newAllocationFixture(nil)

	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramName: "Software Engineering", CourseID: 500, LevelID: 1,
				SemesterID: firstSemester, LecturerID: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, ErrProgramNotFound.Error(), itemErr.Reason)
}

func TestAllocateBatchKeepsAllocatedFlag(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)

	created, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 1,
				GroupName: strPtr("Group A"), IsAllocated: true},
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 2,
				GroupName: strPtr("Group B")},
		},
	})
	require.NoError(t, err)
	require.Nil(t, itemErr)
	require.Len(t, created, 2)
	assert.True(t, store.allocations[0].IsAllocated)
	assert.False(t, store.allocations[1].IsAllocated, "the flag persists exactly as sent")
}

func TestAllocateBatchRejectsOutOfScopeSlot(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)

	created, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 1, GroupName: strPtr("Group A")},
			// Legacy slot 90 was never allocated, so it is out of scope.
			{ProgramID: 1, CourseID: 490, LevelID: 1, SemesterID: firstSemester, LecturerID: 1, GroupName: strPtr("Group A")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, 1, itemErr.Index)
	assert.Nil(t, created)
	assert.Empty(t, store.allocations, "a failing item must leave nothing behind")
}

func TestAllocateBatchRejectsForeignSlot(t *testing.T) {
	svc, _, _, _ := newAllocationFixture(nil)

	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 5, CourseID: 600, LevelID: 1, SemesterID: firstSemester, LecturerID: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, ErrSlotNotOwned.Error(), itemErr.Reason)
}

func TestAllocateBatchDuplicateGroupWithinBatch(t *testing.T) {
	svc, _, _, _ := newAllocationFixture(nil)

	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 1, GroupName: strPtr("Group A")},
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 2, GroupName: strPtr("group a")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, 1, itemErr.Index)
	assert.Equal(t, ErrDuplicateAllocation.Error(), itemErr.Reason)
}

func TestAllocateBatchDuplicateGroupAgainstDatabase(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)
	store.allocations = append(store.allocations, model.CourseAllocation{
		ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester,
		LecturerID: 2, GroupName: strPtr("Group A"),
	})

	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 1, GroupName: strPtr("Group A")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, 0, itemErr.Index)
	assert.Equal(t, ErrDuplicateAllocation.Error(), itemErr.Reason)
}

func TestAllocateBatchLockedAfterSubmission(t *testing.T) {
	svc, _, workflow, _ := newAllocationFixture(nil)
	workflow.states = append(workflow.states, model.DepartmentAllocationState{
		ID: 1, DepartmentID: testDeptID, SessionID: 1, SemesterID: firstSemester, Submitted: true,
	})

	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, ErrAllocationLocked.Error(), itemErr.Reason)
}

func TestAllocateBatchNameLookupGatedByConfig(t *testing.T) {
	item := model.AllocationItem{
		ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerName: "Jane Smith",
	}

	svc, _, _, _ := newAllocationFixture(&config.Config{AllowLecturerNameLookup: false})
	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID,
		&model.BatchAllocationRequest{Allocations: []model.AllocationItem{item}})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, ErrLecturerLookupOff.Error(), itemErr.Reason)

	svc, store, _, _ := newAllocationFixture(&config.Config{AllowLecturerNameLookup: true})
	created, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID,
		&model.BatchAllocationRequest{Allocations: []model.AllocationItem{item}})
	require.NoError(t, err)
	require.Nil(t, itemErr)
	require.Len(t, created, 1)
	assert.Equal(t, 2, created[0].LecturerID)
	assert.Len(t, store.allocations, 1)
}

func TestAllocateBatchAmbiguousName(t *testing.T) {
	svc, _, _, _ := newAllocationFixture(&config.Config{AllowLecturerNameLookup: true})

	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			// Two lecturers named John Doe exist.
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerName: "John Doe"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, itemErr)
	assert.Equal(t, ErrAmbiguousLecturer.Error(), itemErr.Reason)
}

func TestAllocateBatchLecturerStoreFailureIsNotItemError(t *testing.T) {
	svc, _, _, lecturers := newAllocationFixture(nil)
	cause := errors.New("connection reset")
	lecturers.err = cause

	_, itemErr, err := svc.AllocateBatch(context.Background(), testDeptID, &model.BatchAllocationRequest{
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 1},
		},
	})
	require.ErrorIs(t, err, cause, "store failures must not masquerade as a missing lecturer")
	assert.Nil(t, itemErr)
}

func TestReplaceForSlotSwapsAllocations(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)
	store.allocations = append(store.allocations,
		model.CourseAllocation{ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester, LecturerID: 1, GroupName: strPtr("Group A")},
		model.CourseAllocation{ID: 2, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester, LecturerID: 2, GroupName: strPtr("Group B")},
	)
	store.nextID = 2

	replaced, itemErr, err := svc.ReplaceForSlot(context.Background(), testDeptID, &model.ReplaceAllocationsRequest{
		ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester,
		Allocations: []model.AllocationItem{
			{ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester, LecturerID: 2, GroupName: strPtr("Group A")},
		},
	})
	require.NoError(t, err)
	require.Nil(t, itemErr)
	require.Len(t, replaced, 1)
	assert.Len(t, store.allocations, 1)
	assert.Equal(t, 2, store.allocations[0].LecturerID)
}

func TestReplaceForSlotEmptySetClears(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)
	store.allocations = append(store.allocations,
		model.CourseAllocation{ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester, LecturerID: 1},
	)

	replaced, itemErr, err := svc.ReplaceForSlot(context.Background(), testDeptID, &model.ReplaceAllocationsRequest{
		ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester,
		Allocations: []model.AllocationItem{},
	})
	require.NoError(t, err)
	require.Nil(t, itemErr)
	assert.Empty(t, replaced)
	assert.Empty(t, store.allocations)
}

func TestReplaceForSlotKeepsOtherSemesters(t *testing.T) {
	svc, store, _, _ := newAllocationFixture(nil)
	// Slot 100 carries both a regular and a summer allocation; replacing
	// the first-semester set must leave the summer row alone.
	store.allocations = append(store.allocations,
		model.CourseAllocation{ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester, LecturerID: 1, GroupName: strPtr("Group A")},
		model.CourseAllocation{ID: 2, ProgramCourseID: 100, SessionID: 1, SemesterID: summerSemester, LecturerID: 2, GroupName: strPtr("Group B")},
	)
	store.nextID = 2

	_, itemErr, err := svc.ReplaceForSlot(context.Background(), testDeptID, &model.ReplaceAllocationsRequest{
		ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester,
		Allocations: []model.AllocationItem{},
	})
	require.NoError(t, err)
	require.Nil(t, itemErr)
	require.Len(t, store.allocations, 1)
	assert.Equal(t, summerSemester, store.allocations[0].SemesterID)
}

func TestReplaceForSlotLockedAfterSubmission(t *testing.T) {
	svc, _, workflow, _ := newAllocationFixture(nil)
	workflow.states = append(workflow.states, model.DepartmentAllocationState{
		ID: 1, DepartmentID: testDeptID, SessionID: 1, SemesterID: firstSemester, Submitted: true,
	})

	_, _, err := svc.ReplaceForSlot(context.Background(), testDeptID, &model.ReplaceAllocationsRequest{
		ProgramID: 1, CourseID: 500, LevelID: 1, SemesterID: firstSemester,
		Allocations: []model.AllocationItem{},
	})
	assert.ErrorIs(t, err, ErrAllocationLocked)
}
