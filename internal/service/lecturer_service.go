package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

type LecturerService struct {
	lecturerRepo *repository.LecturerRepository
}

func NewLecturerService(lecturerRepo *repository.LecturerRepository) *LecturerService {
	return &LecturerService{lecturerRepo: lecturerRepo}
}

// List returns lecturers, optionally restricted to one department.
func (s *LecturerService) List(ctx context.Context, departmentID int) ([]model.Lecturer, error) {
	var lecturers []model.Lecturer
	var err error
	if departmentID > 0 {
		lecturers, err = s.lecturerRepo.GetByDepartment(ctx, departmentID)
	} else {
		lecturers, err = s.lecturerRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if lecturers == nil {
		lecturers = []model.Lecturer{}
	}
	return lecturers, nil
}

func (s *LecturerService) GetByID(ctx context.Context, id int) (*model.Lecturer, error) {
	return s.lecturerRepo.GetByID(ctx, id)
}

func (s *LecturerService) Update(ctx context.Context, l *model.Lecturer) error {
	return s.lecturerRepo.Update(ctx, l)
}

func (s *LecturerService) Delete(ctx context.Context, id int) error {
	return s.lecturerRepo.Delete(ctx, id)
}
