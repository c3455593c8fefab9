package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

func newOverviewFixture() (*OverviewService, *fakeAllocationStore, *fakeWorkflowStore) {
	slots := &fakeSlotStore{slots: testSlots()}
	allocations := &fakeAllocationStore{slots: slots}
	workflow := &fakeWorkflowStore{}
	svc := NewOverviewService(nil, zerolog.Nop(),
		&fakeSessionStore{session: &model.AcademicSession{ID: 1, Name: "2025/2026", IsActive: true}},
		&fakeBulletinStore{bulletin: &model.Bulletin{ID: activeBulletin, IsActive: true}},
		&fakeSemesterStore{semesters: testSemesters()},
		&fakeDepartmentStore{departments: []model.Department{
			{ID: testDeptID, Name: "Computer Science", Acronym: "COSC", SchoolName: "Computing"},
			{ID: otherDeptID, Name: "Nursing", SchoolName: "Nursing Sciences"},
			{ID: 99, Name: "Registry", SchoolName: "Administration"},
		}},
		workflow,
		&fakeHODStore{names: map[int]string{testDeptID: "Dr. Ada"}},
		&fakeOverviewStore{allocations: allocations},
	)
	return svc, allocations, workflow
}

func rowFor(t *testing.T, rows []model.OverviewRow, departmentID int) model.OverviewRow {
	t.Helper()
	for _, row := range rows {
		if row.DepartmentID == departmentID {
			return row
		}
	}
	t.Fatalf("no overview row for department %d", departmentID)
	return model.OverviewRow{}
}

func semesterViews(row model.OverviewRow) map[int]model.SemesterWorkflowView {
	byID := make(map[int]model.SemesterWorkflowView)
	for _, view := range row.Semesters {
		byID[view.SemesterID] = view
	}
	return byID
}

func TestSessionOverviewExcludesAdministrativeDepartments(t *testing.T) {
	svc, _, _ := newOverviewFixture()

	rows, err := svc.SessionOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.NotEqual(t, "Registry", row.DepartmentName)
	}
}

func TestSessionOverviewStatusLabels(t *testing.T) {
	svc, allocations, _ := newOverviewFixture()

	// Computer Science has 3 active-bulletin slots; allocate one of them.
	allocations.allocations = append(allocations.allocations, model.CourseAllocation{
		ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester,
		LecturerID: 1, UpdatedAt: time.Now(),
	})

	rows, err := svc.SessionOverview(context.Background())
	require.NoError(t, err)

	cs := rowFor(t, rows, testDeptID)
	assert.Equal(t, StatusStillAllocating, cs.Status)
	assert.Equal(t, 3, cs.TotalSlots)
	assert.Equal(t, 1, cs.AllocatedSlots)
	assert.InDelta(t, 33.3, cs.AllocationRate, 0.1)
	assert.Equal(t, "Dr. Ada", cs.HODName)
	require.NotNil(t, cs.LastAllocationAt)

	nursing := rowFor(t, rows, otherDeptID)
	assert.Equal(t, StatusNotStarted, nursing.Status)
	assert.Zero(t, nursing.AllocationRate)
}

func TestSessionOverviewPerSemesterRates(t *testing.T) {
	svc, allocations, workflow := newOverviewFixture()
	allocations.allocations = append(allocations.allocations, model.CourseAllocation{
		ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester,
		LecturerID: 1, UpdatedAt: time.Now(),
	})

	rows, err := svc.SessionOverview(context.Background())
	require.NoError(t, err)
	views := semesterViews(rowFor(t, rows, testDeptID))

	// First semester holds slots 100 and 101, second holds 102, and
	// summer draws on both pools.
	first := views[firstSemester]
	assert.Equal(t, 2, first.TotalSlots)
	assert.Equal(t, 1, first.AllocatedSlots)
	assert.InDelta(t, 50.0, first.AllocationRate, 0.01)
	assert.Equal(t, StatusStillAllocating, first.AllocationStatus)

	second := views[secondSemester]
	assert.Equal(t, 1, second.TotalSlots)
	assert.Zero(t, second.AllocatedSlots)
	assert.Zero(t, second.AllocationRate)
	assert.Equal(t, StatusNotStarted, second.AllocationStatus)

	summer := views[summerSemester]
	assert.Equal(t, 3, summer.TotalSlots)
	assert.Zero(t, summer.AllocatedSlots)

	// A submitted semester reads as allocated whatever its coverage.
	workflow.states = append(workflow.states, model.DepartmentAllocationState{
		ID: 1, DepartmentID: testDeptID, SessionID: 1, SemesterID: firstSemester, Submitted: true,
	})
	rows, err = svc.SessionOverview(context.Background())
	require.NoError(t, err)
	views = semesterViews(rowFor(t, rows, testDeptID))
	assert.Equal(t, StatusAllocated, views[firstSemester].AllocationStatus)
}

func TestSessionOverviewSummerCountsSeparately(t *testing.T) {
	svc, allocations, _ := newOverviewFixture()

	// The same slot allocated for first semester and again for summer
	// counts once in each semester's figures.
	allocations.allocations = append(allocations.allocations,
		model.CourseAllocation{ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester,
			LecturerID: 1, UpdatedAt: time.Now()},
		model.CourseAllocation{ID: 2, ProgramCourseID: 100, SessionID: 1, SemesterID: summerSemester,
			LecturerID: 1, UpdatedAt: time.Now()},
	)

	rows, err := svc.SessionOverview(context.Background())
	require.NoError(t, err)
	views := semesterViews(rowFor(t, rows, testDeptID))

	assert.Equal(t, 1, views[firstSemester].AllocatedSlots)
	assert.Equal(t, 1, views[summerSemester].AllocatedSlots)
	assert.InDelta(t, 33.3, views[summerSemester].AllocationRate, 0.1)
}

func TestSessionOverviewFullyAllocated(t *testing.T) {
	svc, allocations, _ := newOverviewFixture()
	semesterOf := map[int]int{100: firstSemester, 101: firstSemester, 102: secondSemester}
	for i, slotID := range []int{100, 101, 102} {
		allocations.allocations = append(allocations.allocations, model.CourseAllocation{
			ID: i + 1, ProgramCourseID: slotID, SessionID: 1, SemesterID: semesterOf[slotID],
			LecturerID: 1, UpdatedAt: time.Now(),
		})
	}

	rows, err := svc.SessionOverview(context.Background())
	require.NoError(t, err)

	cs := rowFor(t, rows, testDeptID)
	assert.Equal(t, StatusAllocated, cs.Status)
	assert.InDelta(t, 100.0, cs.AllocationRate, 0.01)

	views := semesterViews(cs)
	assert.InDelta(t, 100.0, views[firstSemester].AllocationRate, 0.01)
	assert.InDelta(t, 100.0, views[secondSemester].AllocationRate, 0.01)
}

func TestSessionOverviewOrdersByRecentActivity(t *testing.T) {
	svc, allocations, _ := newOverviewFixture()
	allocations.allocations = append(allocations.allocations, model.CourseAllocation{
		ID: 1, ProgramCourseID: 200, SessionID: 1, SemesterID: firstSemester,
		LecturerID: 1, UpdatedAt: time.Now(),
	})

	rows, err := svc.SessionOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Nursing wrote most recently so it leads; idle departments follow
	// alphabetically.
	assert.Equal(t, otherDeptID, rows[0].DepartmentID)
	assert.Equal(t, testDeptID, rows[1].DepartmentID)
}

func TestSessionOverviewSemesterBreakdown(t *testing.T) {
	svc, allocations, workflow := newOverviewFixture()
	allocations.allocations = append(allocations.allocations, model.CourseAllocation{
		ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester,
		LecturerID: 1, UpdatedAt: time.Now(),
	})
	workflow.states = append(workflow.states, model.DepartmentAllocationState{
		ID: 1, DepartmentID: testDeptID, SessionID: 1, SemesterID: firstSemester, Submitted: true,
	})

	rows, err := svc.SessionOverview(context.Background())
	require.NoError(t, err)

	cs := rowFor(t, rows, testDeptID)
	assert.True(t, cs.Submitted)
	require.Len(t, cs.Semesters, 3)

	byID := semesterViews(cs)
	assert.Equal(t, model.WorkflowSubmitted, byID[firstSemester].Status)
	assert.Equal(t, model.WorkflowNotStarted, byID[secondSemester].Status)
}

func TestSessionStats(t *testing.T) {
	svc, allocations, workflow := newOverviewFixture()
	semesterOf := map[int]int{100: firstSemester, 101: firstSemester, 102: secondSemester}
	for i, slotID := range []int{100, 101, 102} {
		allocations.allocations = append(allocations.allocations, model.CourseAllocation{
			ID: i + 1, ProgramCourseID: slotID, SessionID: 1, SemesterID: semesterOf[slotID],
			LecturerID: 1, UpdatedAt: time.Now(),
		})
	}
	workflow.states = append(workflow.states, model.DepartmentAllocationState{
		ID: 1, DepartmentID: testDeptID, SessionID: 1, SemesterID: firstSemester,
		Submitted: true, Vetted: true,
	})

	stats, err := svc.SessionStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025/2026", stats.SessionName)
	assert.Equal(t, 2, stats.TotalDepartments)
	assert.Equal(t, 1, stats.DepartmentsAllocated)
	assert.Equal(t, 1, stats.DepartmentsSubmitted)
	assert.Equal(t, 1, stats.DepartmentsVetted)
	assert.Equal(t, 3, stats.TotalAllocations)
	assert.InDelta(t, 50.0, stats.ComplianceScore, 0.01)
}
