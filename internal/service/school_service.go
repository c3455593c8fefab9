package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

type SchoolService struct {
	schoolRepo *repository.SchoolRepository
}

func NewSchoolService(schoolRepo *repository.SchoolRepository) *SchoolService {
	return &SchoolService{schoolRepo: schoolRepo}
}

func (s *SchoolService) Create(ctx context.Context, req *model.CreateSchoolRequest) (*model.School, error) {
	school := &model.School{Name: req.Name}
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) List(ctx context.Context) ([]model.School, error) {
	schools, err := s.schoolRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if schools == nil {
		schools = []model.School{}
	}
	return schools, nil
}

func (s *SchoolService) Update(ctx context.Context, id int, req *model.CreateSchoolRequest) error {
	return s.schoolRepo.Update(ctx, &model.School{ID: id, Name: req.Name})
}

func (s *SchoolService) Delete(ctx context.Context, id int) error {
	return s.schoolRepo.Delete(ctx, id)
}
