package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

type SemesterService struct {
	semesterRepo *repository.SemesterRepository
}

func NewSemesterService(semesterRepo *repository.SemesterRepository) *SemesterService {
	return &SemesterService{semesterRepo: semesterRepo}
}

func (s *SemesterService) Create(ctx context.Context, req *model.CreateSemesterRequest) (*model.Semester, error) {
	semester := &model.Semester{Name: req.Name, IsActive: req.IsActive}
	if err := s.semesterRepo.Create(ctx, semester); err != nil {
		return nil, err
	}
	return semester, nil
}

func (s *SemesterService) List(ctx context.Context) ([]model.Semester, error) {
	semesters, err := s.semesterRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if semesters == nil {
		semesters = []model.Semester{}
	}
	return semesters, nil
}

func (s *SemesterService) GetByID(ctx context.Context, id int) (*model.Semester, error) {
	return s.semesterRepo.GetByID(ctx, id)
}
