package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

// DepartmentService handles department business logic.
type DepartmentService struct {
	deptRepo *repository.DepartmentRepository
}

func NewDepartmentService(deptRepo *repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{deptRepo: deptRepo}
}

func (s *DepartmentService) Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	d := &model.Department{Name: req.Name, Acronym: req.Acronym, SchoolID: req.SchoolID}
	if err := s.deptRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DepartmentService) CreateBatch(ctx context.Context, req *model.BatchCreateDepartmentsRequest) ([]model.Department, error) {
	departments := make([]model.Department, 0, len(req.Departments))
	for _, item := range req.Departments {
		departments = append(departments, model.Department{
			Name:     item.Name,
			Acronym:  item.Acronym,
			SchoolID: item.SchoolID,
		})
	}
	if err := s.deptRepo.CreateBatch(ctx, departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// List returns every department; academicOnly drops administrative service
// units.
func (s *DepartmentService) List(ctx context.Context, academicOnly bool) ([]model.Department, error) {
	var departments []model.Department
	var err error
	if academicOnly {
		departments, err = s.deptRepo.GetAllAcademic(ctx)
	} else {
		departments, err = s.deptRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []model.Department{}
	}
	return departments, nil
}

func (s *DepartmentService) GetByID(ctx context.Context, id int) (*model.Department, error) {
	return s.deptRepo.GetByID(ctx, id)
}

func (s *DepartmentService) Update(ctx context.Context, id int, req *model.CreateDepartmentRequest) error {
	return s.deptRepo.Update(ctx, &model.Department{
		ID:       id,
		Name:     req.Name,
		Acronym:  req.Acronym,
		SchoolID: req.SchoolID,
	})
}

func (s *DepartmentService) Delete(ctx context.Context, id int) error {
	return s.deptRepo.Delete(ctx, id)
}
