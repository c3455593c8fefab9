package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

type LevelService struct {
	levelRepo *repository.LevelRepository
}

func NewLevelService(levelRepo *repository.LevelRepository) *LevelService {
	return &LevelService{levelRepo: levelRepo}
}

func (s *LevelService) Create(ctx context.Context, req *model.CreateLevelRequest) (*model.Level, error) {
	l := &model.Level{Name: req.Name}
	if err := s.levelRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LevelService) List(ctx context.Context) ([]model.Level, error) {
	levels, err := s.levelRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if levels == nil {
		levels = []model.Level{}
	}
	return levels, nil
}

func (s *LevelService) Delete(ctx context.Context, id int) error {
	return s.levelRepo.Delete(ctx, id)
}
