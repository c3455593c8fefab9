package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

type SettingService struct {
	settingRepo *repository.SettingRepository
}

func NewSettingService(settingRepo *repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

func (s *SettingService) Get(ctx context.Context, key string) (string, error) {
	return s.settingRepo.Get(ctx, key)
}

func (s *SettingService) List(ctx context.Context) ([]model.AppSetting, error) {
	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = []model.AppSetting{}
	}
	return settings, nil
}

func (s *SettingService) Set(ctx context.Context, key, value string) error {
	return s.settingRepo.Set(ctx, key, value)
}
