package service

import (
	"context"
	"time"

	"github.com/Ekediee/course-allocation-backend/internal/model"
)

// Narrow store interfaces consumed by the allocation core. The pgx
// repositories satisfy them; tests substitute in-memory fakes.

type SessionStore interface {
	GetActive(ctx context.Context) (*model.AcademicSession, error)
}

type BulletinStore interface {
	GetActive(ctx context.Context) (*model.Bulletin, error)
}

type SemesterStore interface {
	GetByID(ctx context.Context, id int) (*model.Semester, error)
	GetByName(ctx context.Context, name string) (*model.Semester, error)
	GetAll(ctx context.Context) ([]model.Semester, error)
}

type SlotStore interface {
	ListDepartmentSlots(ctx context.Context, departmentID int, semesterIDs []int, activeBulletinID int, carriedSlotIDs []int) ([]model.SlotDetail, error)
	FindSlot(ctx context.Context, programID, courseID, levelID int, semesterIDs []int, activeBulletinID int, carriedSlotIDs []int) (*model.SlotDetail, error)
	GetSlot(ctx context.Context, id int) (*model.SlotDetail, error)
}

type ProgramStore interface {
	GetByName(ctx context.Context, departmentID int, name string) (*model.Program, error)
}

type AllocationStore interface {
	AllocatedSlotIDs(ctx context.Context, departmentID, sessionID int) ([]int, error)
	ListForSlots(ctx context.Context, slotIDs []int, sessionID, semesterID int) (map[int][]model.CourseAllocation, error)
	ExistsForGroup(ctx context.Context, slotID, sessionID int, groupName *string) (bool, error)
	CreateBatch(ctx context.Context, allocations []model.CourseAllocation) (int, error)
	ReplaceForSlot(ctx context.Context, slotID, sessionID, semesterID int, allocations []model.CourseAllocation) error
	HasAllocations(ctx context.Context, departmentID, sessionID, semesterID int) (bool, error)
	ListUnpushedForSlot(ctx context.Context, slotID, sessionID, semesterID int) ([]model.CourseAllocation, error)
	MarkPushed(ctx context.Context, ids []int, pushedBy int, pushedAt time.Time) error
}

type WorkflowStore interface {
	Get(ctx context.Context, departmentID, sessionID, semesterID int) (*model.DepartmentAllocationState, error)
	Create(ctx context.Context, s *model.DepartmentAllocationState) error
	Update(ctx context.Context, s *model.DepartmentAllocationState) error
	Delete(ctx context.Context, id int) error
	ListBySession(ctx context.Context, sessionID int) ([]model.DepartmentAllocationState, error)
}

type DepartmentStore interface {
	GetByID(ctx context.Context, id int) (*model.Department, error)
	GetAllAcademic(ctx context.Context) ([]model.Department, error)
}

type LecturerStore interface {
	GetByID(ctx context.Context, id int) (*model.Lecturer, error)
	FindByName(ctx context.Context, name string) ([]model.Lecturer, error)
}

type HODStore interface {
	HODNames(ctx context.Context) (map[int]string, error)
}

type OverviewStore interface {
	SlotTotalsByDepartment(ctx context.Context, activeBulletinID, sessionID int) (map[int]int, error)
	SlotTotalsByDepartmentSemester(ctx context.Context, activeBulletinID, sessionID int) (map[int]map[int]int, error)
	AllocatedSlotCountsByDepartment(ctx context.Context, sessionID int) (map[int]int, error)
	LastAllocationByDepartment(ctx context.Context, sessionID int) (map[int]time.Time, error)
	TotalAllocations(ctx context.Context, sessionID int) (int, error)
}
