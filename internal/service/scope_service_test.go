package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

const (
	testDeptID     = 10
	otherDeptID    = 11
	activeBulletin = 2
	legacyBulletin = 1
	firstSemester  = 1
	secondSemester = 2
	summerSemester = 3
)

func strPtr(s string) *string { return &s }

func testSemesters() []model.Semester {
	return []model.Semester{
		{ID: firstSemester, Name: model.SemesterFirst, IsActive: true},
		{ID: secondSemester, Name: model.SemesterSecond, IsActive: true},
		{ID: summerSemester, Name: model.SemesterSummer, IsActive: true},
	}
}

func testSlots() []model.SlotDetail {
	return []model.SlotDetail{
		{ID: 100, ProgramID: 1, ProgramName: "Computer Science", CourseID: 500, CourseCode: "COSC 111",
			CourseTitle: "Intro to Programming", Units: 3, LevelID: 1, LevelName: "100",
			SemesterID: firstSemester, BulletinID: activeBulletin, DepartmentID: testDeptID},
		{ID: 101, ProgramID: 1, ProgramName: "Computer Science", CourseID: 501, CourseCode: "COSC 212",
			CourseTitle: "Data Structures", Units: 3, LevelID: 2, LevelName: "200",
			SemesterID: firstSemester, BulletinID: activeBulletin, DepartmentID: testDeptID,
			Specializations: []string{"Networking", "Artificial Intelligence"}},
		{ID: 102, ProgramID: 1, ProgramName: "Computer Science", CourseID: 502, CourseCode: "COSC 221",
			CourseTitle: "Discrete Structures", Units: 2, LevelID: 2, LevelName: "200",
			SemesterID: secondSemester, BulletinID: activeBulletin, DepartmentID: testDeptID},
		// Legacy slot, only visible once the department has allocated it.
		{ID: 90, ProgramID: 1, ProgramName: "Computer Science", CourseID: 490, CourseCode: "COSC 110",
			CourseTitle: "Old Intro Course", Units: 3, LevelID: 1, LevelName: "100",
			SemesterID: firstSemester, BulletinID: legacyBulletin, DepartmentID: testDeptID},
		// Another department's slot.
		{ID: 200, ProgramID: 5, ProgramName: "Nursing", CourseID: 600, CourseCode: "NRSG 101",
			CourseTitle: "Foundations of Nursing", Units: 3, LevelID: 1, LevelName: "100",
			SemesterID: firstSemester, BulletinID: activeBulletin, DepartmentID: otherDeptID},
	}
}

func newScopeFixture() (*ScopeService, *fakeAllocationStore, *fakeWorkflowStore) {
	slots := &fakeSlotStore{slots: testSlots()}
	allocations := &fakeAllocationStore{slots: slots}
	workflow := &fakeWorkflowStore{}
	scope := NewScopeService(
		&fakeSessionStore{session: &model.AcademicSession{ID: 1, Name: "2025/2026", IsActive: true}},
		&fakeBulletinStore{bulletin: &model.Bulletin{ID: activeBulletin, Name: "2023-2027", IsActive: true}},
		&fakeSemesterStore{semesters: testSemesters()},
		slots,
		allocations,
		workflow,
		&fakeDepartmentStore{departments: []model.Department{
			{ID: testDeptID, Name: "Computer Science", Acronym: "COSC", SchoolID: 1, SchoolName: "Computing"},
			{ID: otherDeptID, Name: "Nursing", SchoolID: 2, SchoolName: "Nursing Sciences"},
		}},
	)
	return scope, allocations, workflow
}

func TestDepartmentWorkspaceActiveBulletinOnly(t *testing.T) {
	scope, _, _ := newScopeFixture()

	view, err := scope.DepartmentWorkspace(context.Background(), testDeptID, firstSemester)
	require.NoError(t, err)

	require.Len(t, view.Programs, 1)
	program := view.Programs[0]
	assert.Equal(t, "Computer Science", program.ProgramName)

	// The legacy slot 90 must be hidden: nothing was carried over.
	var codes []string
	for _, level := range program.Levels {
		for _, course := range level.Courses {
			codes = append(codes, course.Code)
		}
	}
	assert.ElementsMatch(t, []string{"COSC 111", "COSC 212", "COSC 212"}, codes)
}

func TestDepartmentWorkspaceCarriesAllocatedLegacySlots(t *testing.T) {
	scope, allocations, _ := newScopeFixture()

	// An allocation against the legacy slot keeps it visible after the
	// bulletin switch.
	allocations.allocations = append(allocations.allocations, model.CourseAllocation{
		ID: 1, ProgramCourseID: 90, SessionID: 1, SemesterID: firstSemester, LecturerID: 1,
	})

	view, err := scope.DepartmentWorkspace(context.Background(), testDeptID, firstSemester)
	require.NoError(t, err)
	require.Len(t, view.Programs, 1)

	var legacy *model.CourseSlotView
	for _, level := range view.Programs[0].Levels {
		for i, course := range level.Courses {
			if course.Code == "COSC 110" {
				legacy = &level.Courses[i]
			}
		}
	}
	require.NotNil(t, legacy, "carried legacy slot must appear in the workspace")
	assert.True(t, legacy.IsLegacy)
	assert.True(t, legacy.IsAllocated)
	require.Len(t, legacy.Allocations, 1)
}

func TestDepartmentWorkspaceSummerUnionsBothSemesters(t *testing.T) {
	scope, _, _ := newScopeFixture()

	view, err := scope.DepartmentWorkspace(context.Background(), testDeptID, summerSemester)
	require.NoError(t, err)
	require.Len(t, view.Programs, 1)

	var codes []string
	for _, level := range view.Programs[0].Levels {
		for _, course := range level.Courses {
			codes = append(codes, course.Code)
		}
	}
	// First semester slots plus the second semester slot, fan-out included.
	assert.Contains(t, codes, "COSC 111")
	assert.Contains(t, codes, "COSC 221")
}

func TestDepartmentWorkspaceSpecializationFanOut(t *testing.T) {
	scope, _, _ := newScopeFixture()

	view, err := scope.DepartmentWorkspace(context.Background(), testDeptID, firstSemester)
	require.NoError(t, err)

	var tracks []string
	for _, level := range view.Programs[0].Levels {
		for _, course := range level.Courses {
			if course.Code == "COSC 212" {
				tracks = append(tracks, course.Specialization)
			}
		}
	}
	assert.ElementsMatch(t, []string{"Artificial Intelligence", "Networking"}, tracks)

	// Untagged slots show the synthetic general track.
	for _, level := range view.Programs[0].Levels {
		for _, course := range level.Courses {
			if course.Code == "COSC 111" {
				assert.Equal(t, GeneralTrack, course.Specialization)
			}
		}
	}
}

func TestDepartmentWorkspaceLevelOrdering(t *testing.T) {
	scope, _, _ := newScopeFixture()

	view, err := scope.DepartmentWorkspace(context.Background(), testDeptID, firstSemester)
	require.NoError(t, err)
	require.Len(t, view.Programs, 1)

	levels := view.Programs[0].Levels
	require.Len(t, levels, 2)
	assert.Equal(t, "100", levels[0].LevelName)
	assert.Equal(t, "200", levels[1].LevelName)
}

func TestDepartmentWorkspaceReflectsWorkflowState(t *testing.T) {
	scope, _, workflow := newScopeFixture()
	workflow.states = append(workflow.states, model.DepartmentAllocationState{
		ID: 1, DepartmentID: testDeptID, SessionID: 1, SemesterID: firstSemester, Submitted: true,
	})

	view, err := scope.DepartmentWorkspace(context.Background(), testDeptID, firstSemester)
	require.NoError(t, err)
	assert.True(t, view.Submitted)
	assert.False(t, view.Vetted)
}

func TestResolveSlotOwnership(t *testing.T) {
	scope, _, _ := newScopeFixture()

	_, _, err := scope.ResolveSlot(context.Background(), testDeptID, 5, 600, 1, firstSemester)
	assert.ErrorIs(t, err, ErrSlotNotOwned)

	_, _, err = scope.ResolveSlot(context.Background(), testDeptID, 1, 999, 1, firstSemester)
	assert.ErrorIs(t, err, ErrSlotNotInScope)

	slot, session, err := scope.ResolveSlot(context.Background(), testDeptID, 1, 500, 1, firstSemester)
	require.NoError(t, err)
	assert.Equal(t, 100, slot.ID)
	assert.Equal(t, 1, session.ID)
}

func TestLevelSortKey(t *testing.T) {
	assert.Equal(t, 100, levelSortKey("100"))
	assert.Equal(t, 200, levelSortKey("200 Level"))
	assert.Equal(t, 1<<30, levelSortKey("Postgraduate"))
	assert.Equal(t, 1<<30, levelSortKey(""))
}
