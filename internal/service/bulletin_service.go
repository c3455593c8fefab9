package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

// BulletinService handles curriculum bulletin business logic.
type BulletinService struct {
	bulletinRepo *repository.BulletinRepository
}

func NewBulletinService(bulletinRepo *repository.BulletinRepository) *BulletinService {
	return &BulletinService{bulletinRepo: bulletinRepo}
}

// Create inserts a bulletin and makes it the active one. Switching the
// active bulletin never deletes old curricula; legacy slots stay reachable
// through allocations already made against them.
func (s *BulletinService) Create(ctx context.Context, req *model.CreateBulletinRequest) (*model.Bulletin, error) {
	b := &model.Bulletin{
		Name:      req.Name,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
	}
	if err := s.bulletinRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	if err := s.bulletinRepo.SetActive(ctx, b.ID); err != nil {
		return nil, err
	}
	b.IsActive = true
	return b, nil
}

func (s *BulletinService) List(ctx context.Context) ([]model.Bulletin, error) {
	bulletins, err := s.bulletinRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if bulletins == nil {
		bulletins = []model.Bulletin{}
	}
	return bulletins, nil
}

func (s *BulletinService) Activate(ctx context.Context, id int) error {
	return s.bulletinRepo.SetActive(ctx, id)
}

func (s *BulletinService) Active(ctx context.Context) (*model.Bulletin, error) {
	bulletin, err := s.bulletinRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if bulletin == nil {
		return nil, ErrNoActiveBulletin
	}
	return bulletin, nil
}
