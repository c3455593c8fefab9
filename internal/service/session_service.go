package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

// SessionService handles academic session business logic.
type SessionService struct {
	sessionRepo *repository.SessionRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

// Init opens a new academic session; the previous session is deactivated in
// the same transaction.
func (s *SessionService) Init(ctx context.Context, req *model.InitSessionRequest) (*model.AcademicSession, error) {
	session := &model.AcademicSession{Name: req.Name}
	if err := s.sessionRepo.Init(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) List(ctx context.Context) ([]model.AcademicSession, error) {
	sessions, err := s.sessionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []model.AcademicSession{}
	}
	return sessions, nil
}

func (s *SessionService) Activate(ctx context.Context, id int) error {
	return s.sessionRepo.SetActive(ctx, id)
}

func (s *SessionService) Active(ctx context.Context) (*model.AcademicSession, error) {
	session, err := s.sessionRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}
