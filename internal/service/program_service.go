package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

type ProgramService struct {
	programRepo *repository.ProgramRepository
}

func NewProgramService(programRepo *repository.ProgramRepository) *ProgramService {
	return &ProgramService{programRepo: programRepo}
}

func (s *ProgramService) Create(ctx context.Context, req *model.CreateProgramRequest) (*model.Program, error) {
	p := &model.Program{Name: req.Name, DepartmentID: req.DepartmentID}
	if err := s.programRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProgramService) List(ctx context.Context, departmentID int) ([]model.Program, error) {
	var programs []model.Program
	var err error
	if departmentID > 0 {
		programs, err = s.programRepo.GetByDepartment(ctx, departmentID)
	} else {
		programs, err = s.programRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if programs == nil {
		programs = []model.Program{}
	}
	return programs, nil
}

func (s *ProgramService) Update(ctx context.Context, id int, req *model.CreateProgramRequest) error {
	return s.programRepo.Update(ctx, &model.Program{ID: id, Name: req.Name, DepartmentID: req.DepartmentID})
}

func (s *ProgramService) Delete(ctx context.Context, id int) error {
	return s.programRepo.Delete(ctx, id)
}
