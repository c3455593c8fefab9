package service

import (
	"context"

	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

// CourseService manages the course catalog and its curriculum slots.
type CourseService struct {
	courseRepo   *repository.CourseRepository
	slotRepo     *repository.ProgramCourseRepository
	bulletinRepo *repository.BulletinRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, slotRepo *repository.ProgramCourseRepository,
	bulletinRepo *repository.BulletinRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo, slotRepo: slotRepo, bulletinRepo: bulletinRepo}
}

// CreateSlot upserts the course and attaches it to the curriculum; the
// course becomes allocatable once its bulletin is active.
func (s *CourseService) CreateSlot(ctx context.Context, req *model.CreateCourseRequest) (*model.SlotDetail, error) {
	id, err := s.slotRepo.CreateSlot(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.slotRepo.GetSlot(ctx, id)
}

// CreateSlotBatch bulk-loads curriculum slots atomically.
func (s *CourseService) CreateSlotBatch(ctx context.Context, req *model.BatchCreateCoursesRequest) (int, error) {
	ids, err := s.slotRepo.CreateSlotBatch(ctx, req.Courses)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Catalog lists the joined curriculum of a bulletin; bulletinID 0 means the
// active bulletin.
func (s *CourseService) Catalog(ctx context.Context, bulletinID int) ([]model.SlotDetail, error) {
	if bulletinID == 0 {
		bulletin, err := s.bulletinRepo.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		if bulletin == nil {
			return nil, ErrNoActiveBulletin
		}
		bulletinID = bulletin.ID
	}
	slots, err := s.slotRepo.ListBulletinSlots(ctx, bulletinID)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []model.SlotDetail{}
	}
	return slots, nil
}

func (s *CourseService) UpdateSlot(ctx context.Context, id int, req *model.UpdateCourseSlotRequest) error {
	return s.slotRepo.UpdateSlot(ctx, id, req)
}

func (s *CourseService) DeleteSlot(ctx context.Context, id int) error {
	return s.slotRepo.DeleteSlot(ctx, id)
}

func (s *CourseService) ListTypes(ctx context.Context) ([]model.CourseType, error) {
	types, err := s.courseRepo.GetAllTypes(ctx)
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []model.CourseType{}
	}
	return types, nil
}

func (s *CourseService) CreateType(ctx context.Context, name string) (*model.CourseType, error) {
	t := &model.CourseType{Name: name}
	if err := s.courseRepo.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CourseService) ListSpecializations(ctx context.Context) ([]model.Specialization, error) {
	specs, err := s.slotRepo.GetAllSpecializations(ctx)
	if err != nil {
		return nil, err
	}
	if specs == nil {
		specs = []model.Specialization{}
	}
	return specs, nil
}

func (s *CourseService) CreateSpecialization(ctx context.Context, name string) (*model.Specialization, error) {
	id, err := s.slotRepo.GetOrCreateSpecialization(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.Specialization{ID: id, Name: name}, nil
}
