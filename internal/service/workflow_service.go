package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

// WorkflowService drives the submit → vet → unblock cycle of a department's
// allocation for one semester of the active session. The workflow record
// only exists from submission onward; unblocking deletes it, which reopens
// editing and allows a fresh submission.
type WorkflowService struct {
	rdb         *redis.Client
	sessions    SessionStore
	workflow    WorkflowStore
	allocations AllocationStore
}

func NewWorkflowService(rdb *redis.Client, sessions SessionStore, workflow WorkflowStore, allocations AllocationStore) *WorkflowService {
	return &WorkflowService{rdb: rdb, sessions: sessions, workflow: workflow, allocations: allocations}
}

// Submit locks a department's allocation for vetting, recording who
// submitted. At least one allocation must exist, and a department cannot
// submit twice without being unblocked in between.
func (s *WorkflowService) Submit(ctx context.Context, departmentID, semesterID, submittedBy int) (*model.DepartmentAllocationState, error) {
	session, err := s.activeSession(ctx)
	if err != nil {
		return nil, err
	}

	hasAllocations, err := s.allocations.HasAllocations(ctx, departmentID, session.ID, semesterID)
	if err != nil {
		return nil, err
	}
	if !hasAllocations {
		return nil, ErrNoAllocationsToSubmit
	}

	existing, err := s.workflow.Get(ctx, departmentID, session.ID, semesterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubmitted
	}

	now := time.Now()
	state := &model.DepartmentAllocationState{
		DepartmentID: departmentID,
		SessionID:    session.ID,
		SemesterID:   semesterID,
		Submitted:    true,
		SubmittedAt:  &now,
		SubmittedBy:  &submittedBy,
	}
	if err := s.workflow.Create(ctx, state); err != nil {
		// Concurrent double submit loses to the unique constraint.
		if errors.Is(err, repository.ErrStateExists) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}

	s.invalidateOverview(ctx, session.ID)
	return state, nil
}

// Vet approves a submitted allocation, recording the approving user. Only
// submitted, not yet vetted records can be vetted.
func (s *WorkflowService) Vet(ctx context.Context, departmentID, semesterID, vettedBy int) (*model.DepartmentAllocationState, error) {
	session, err := s.activeSession(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.workflow.Get(ctx, departmentID, session.ID, semesterID)
	if err != nil {
		return nil, err
	}
	if state == nil || !state.Submitted {
		return nil, ErrNotSubmitted
	}
	if state.Vetted {
		return nil, ErrAlreadyVetted
	}

	now := time.Now()
	state.Vetted = true
	state.VettedAt = &now
	state.VettedBy = &vettedBy
	if err := s.workflow.Update(ctx, state); err != nil {
		return nil, err
	}

	s.invalidateOverview(ctx, session.ID)
	return state, nil
}

// Unblock removes the workflow record entirely, whether vetted or not. The
// department drops back to its pre-submission state and can edit and submit
// again.
func (s *WorkflowService) Unblock(ctx context.Context, departmentID, semesterID int) error {
	session, err := s.activeSession(ctx)
	if err != nil {
		return err
	}

	state, err := s.workflow.Get(ctx, departmentID, session.ID, semesterID)
	if err != nil {
		return err
	}
	if state == nil {
		return ErrNothingToUnblock
	}
	if err := s.workflow.Delete(ctx, state.ID); err != nil {
		return err
	}

	s.invalidateOverview(ctx, session.ID)
	return nil
}

// Status derives the department's workflow status for a semester of the
// active session.
func (s *WorkflowService) Status(ctx context.Context, departmentID, semesterID int) (model.WorkflowStatus, error) {
	session, err := s.activeSession(ctx)
	if err != nil {
		return "", err
	}

	state, err := s.workflow.Get(ctx, departmentID, session.ID, semesterID)
	if err != nil {
		return "", err
	}
	hasAllocations, err := s.allocations.HasAllocations(ctx, departmentID, session.ID, semesterID)
	if err != nil {
		return "", err
	}
	return state.Status(hasAllocations), nil
}

func (s *WorkflowService) activeSession(ctx context.Context) (*model.AcademicSession, error) {
	session, err := s.sessions.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

func (s *WorkflowService) invalidateOverview(ctx context.Context, sessionID int) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx,
		config.CacheKey.OverviewKey(sessionID),
		config.CacheKey.SemesterStatsKey(sessionID))
}
