package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

const (
	hodUserID    = 7
	vetterUserID = 9
)

func newWorkflowFixture() (*WorkflowService, *fakeAllocationStore, *fakeWorkflowStore) {
	slots := &fakeSlotStore{slots: testSlots()}
	allocations := &fakeAllocationStore{slots: slots}
	workflow := &fakeWorkflowStore{}
	svc := NewWorkflowService(nil,
		&fakeSessionStore{session: &model.AcademicSession{ID: 1, Name: "2025/2026", IsActive: true}},
		workflow, allocations)
	return svc, allocations, workflow
}

func seedAllocation(store *fakeAllocationStore) {
	store.allocations = append(store.allocations, model.CourseAllocation{
		ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: firstSemester, LecturerID: 1,
	})
}

func TestSubmitRequiresAllocations(t *testing.T) {
	svc, _, _ := newWorkflowFixture()

	_, err := svc.Submit(context.Background(), testDeptID, firstSemester, hodUserID)
	assert.ErrorIs(t, err, ErrNoAllocationsToSubmit)
}

func TestSubmitCreatesWorkflowRecord(t *testing.T) {
	svc, allocations, workflow := newWorkflowFixture()
	seedAllocation(allocations)

	state, err := svc.Submit(context.Background(), testDeptID, firstSemester, hodUserID)
	require.NoError(t, err)
	assert.True(t, state.Submitted)
	assert.False(t, state.Vetted)
	require.NotNil(t, state.SubmittedAt)
	require.NotNil(t, state.SubmittedBy)
	assert.Equal(t, hodUserID, *state.SubmittedBy)
	assert.Len(t, workflow.states, 1)
}

func TestSubmitSummerCountsSummerAllocations(t *testing.T) {
	svc, allocations, _ := newWorkflowFixture()

	// A summer allocation points at a regular-semester slot but is
	// recorded against summer, so only summer can submit on its strength.
	allocations.allocations = append(allocations.allocations, model.CourseAllocation{
		ID: 1, ProgramCourseID: 100, SessionID: 1, SemesterID: summerSemester, LecturerID: 1,
	})

	_, err := svc.Submit(context.Background(), testDeptID, firstSemester, hodUserID)
	assert.ErrorIs(t, err, ErrNoAllocationsToSubmit)

	state, err := svc.Submit(context.Background(), testDeptID, summerSemester, hodUserID)
	require.NoError(t, err)
	assert.True(t, state.Submitted)
	assert.Equal(t, summerSemester, state.SemesterID)
}

func TestSubmitTwiceFails(t *testing.T) {
	svc, allocations, _ := newWorkflowFixture()
	seedAllocation(allocations)

	_, err := svc.Submit(context.Background(), testDeptID, firstSemester, hodUserID)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), testDeptID, firstSemester, hodUserID)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestVetRequiresSubmission(t *testing.T) {
	svc, _, _ := newWorkflowFixture()

	_, err := svc.Vet(context.Background(), testDeptID, firstSemester, vetterUserID)
	assert.ErrorIs(t, err, ErrNotSubmitted)
}

func TestVetApprovesOnce(t *testing.T) {
	svc, allocations, _ := newWorkflowFixture()
	seedAllocation(allocations)

	_, err := svc.Submit(context.Background(), testDeptID, firstSemester, hodUserID)
	require.NoError(t, err)

	state, err := svc.Vet(context.Background(), testDeptID, firstSemester, vetterUserID)
	require.NoError(t, err)
	assert.True(t, state.Vetted)
	require.NotNil(t, state.VettedAt)
	require.NotNil(t, state.VettedBy)
	assert.Equal(t, vetterUserID, *state.VettedBy)

	_, err = svc.Vet(context.Background(), testDeptID, firstSemester, vetterUserID)
	assert.ErrorIs(t, err, ErrAlreadyVetted)
}

func TestUnblockDeletesRecordAndReopens(t *testing.T) {
	svc, allocations, workflow := newWorkflowFixture()
	seedAllocation(allocations)

	_, err := svc.Submit(context.Background(), testDeptID, firstSemester, hodUserID)
	require.NoError(t, err)
	_, err = svc.Vet(context.Background(), testDeptID, firstSemester, vetterUserID)
	require.NoError(t, err)

	require.NoError(t, svc.Unblock(context.Background(), testDeptID, firstSemester))
	assert.Empty(t, workflow.states, "unblock removes the workflow record entirely")

	// The department can edit and submit again from scratch.
	status, err := svc.Status(context.Background(), testDeptID, firstSemester)
	require.NoError(t, err)
	assert.Equal(t, model.WorkflowInProgress, status)

	_, err = svc.Submit(context.Background(), testDeptID, firstSemester, hodUserID)
	assert.NoError(t, err)
}

func TestUnblockWithoutRecord(t *testing.T) {
	svc, _, _ := newWorkflowFixture()

	err := svc.Unblock(context.Background(), testDeptID, firstSemester)
	assert.ErrorIs(t, err, ErrNothingToUnblock)
}

func TestStatusProgression(t *testing.T) {
	svc, allocations, _ := newWorkflowFixture()
	ctx := context.Background()

	status, err := svc.Status(ctx, testDeptID, firstSemester)
	require.NoError(t, err)
	assert.Equal(t, model.WorkflowNotStarted, status)

	seedAllocation(allocations)
	status, err = svc.Status(ctx, testDeptID, firstSemester)
	require.NoError(t, err)
	assert.Equal(t, model.WorkflowInProgress, status)

	_, err = svc.Submit(ctx, testDeptID, firstSemester, hodUserID)
	require.NoError(t, err)
	status, err = svc.Status(ctx, testDeptID, firstSemester)
	require.NoError(t, err)
	assert.Equal(t, model.WorkflowSubmitted, status)

	_, err = svc.Vet(ctx, testDeptID, firstSemester, vetterUserID)
	require.NoError(t, err)
	status, err = svc.Status(ctx, testDeptID, firstSemester)
	require.NoError(t, err)
	assert.Equal(t, model.WorkflowVetted, status)
}
