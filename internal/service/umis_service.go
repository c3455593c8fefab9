package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
	"github.com/Ekediee/course-allocation-backend/internal/umis"
)

// UMIS-specific errors.
var (
	ErrNotHOD            = errors.New("umis account is not a head of department")
	ErrUnknownDepartment = errors.New("umis department has no local counterpart")
	ErrNothingToPush     = errors.New("every allocation of this course is already pushed")
)

const umisHODRole = "headofdepartment"

const classOptionsCacheTTL = time.Hour

// UMISClient is the dataserver surface the service consumes; satisfied by
// *umis.Client and by test doubles.
type UMISClient interface {
	Authenticate(ctx context.Context, username, password string) (*umis.AuthResult, error)
	ClassOptions(ctx context.Context, token string) ([]umis.ClassOption, error)
	Instructor(ctx context.Context, token, umisID string) (*umis.Instructor, error)
	Push(ctx context.Context, token string, payload umis.PushPayload) error
}

// UMISService bridges local allocations to the university management
// information system: HOD credential login with auto-provisioning, reference
// reads and the per-course allocation push.
type UMISService struct {
	client       UMISClient
	rdb          *redis.Client
	logger       zerolog.Logger
	auth         *AuthService
	scope        *ScopeService
	allocations  AllocationStore
	semesters    SemesterStore
	lecturerRepo *repository.LecturerRepository
	userRepo     *repository.UserRepository
	deptRepo     *repository.DepartmentRepository
}

func NewUMISService(client UMISClient, rdb *redis.Client, logger zerolog.Logger,
	auth *AuthService, scope *ScopeService, allocations AllocationStore, semesters SemesterStore,
	lecturerRepo *repository.LecturerRepository, userRepo *repository.UserRepository,
	deptRepo *repository.DepartmentRepository) *UMISService {
	return &UMISService{
		client:       client,
		rdb:          rdb,
		logger:       logger.With().Str("component", "umis_service").Logger(),
		auth:         auth,
		scope:        scope,
		allocations:  allocations,
		semesters:    semesters,
		lecturerRepo: lecturerRepo,
		userRepo:     userRepo,
		deptRepo:     deptRepo,
	}
}

// LoginHOD authenticates a head of department against UMIS and issues a
// local JWT. First-time logins are auto-provisioned with a lecturer profile;
// a previous head of the same department is demoted to lecturer.
func (s *UMISService) LoginHOD(ctx context.Context, umisID, password string) (string, *model.User, error) {
	auth, err := s.client.Authenticate(ctx, umisID, password)
	if err != nil {
		return "", nil, err
	}
	if !strings.EqualFold(auth.Role, umisHODRole) {
		return "", nil, ErrNotHOD
	}

	department, err := s.matchDepartment(ctx, auth.Department)
	if err != nil {
		return "", nil, err
	}

	user, err := s.findOrProvision(ctx, auth, department)
	if err != nil {
		return "", nil, err
	}

	if err := s.demotePreviousHOD(ctx, department.ID, user.ID); err != nil {
		return "", nil, err
	}
	if user.Role != model.RoleHOD {
		if err := s.userRepo.UpdateRole(ctx, user.ID, model.RoleHOD); err != nil {
			return "", nil, err
		}
		user.Role = model.RoleHOD
	}

	token, err := s.auth.GenerateToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UMISService) matchDepartment(ctx context.Context, name string) (*model.Department, error) {
	departments, err := s.deptRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range departments {
		if strings.EqualFold(departments[i].Name, name) {
			return &departments[i], nil
		}
	}
	return nil, ErrUnknownDepartment
}

func (s *UMISService) findOrProvision(ctx context.Context, auth *umis.AuthResult, department *model.Department) (*model.User, error) {
	lecturer, err := s.lecturerRepo.GetByStaffID(ctx, auth.UMISID)
	if err != nil {
		return nil, err
	}
	if lecturer != nil {
		user, err := s.userRepo.GetByLecturerID(ctx, lecturer.ID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}

	profile := &umis.Instructor{Name: auth.Name, UMISID: auth.UMISID}
	if found, err := s.client.Instructor(ctx, auth.Token, auth.UMISID); err == nil && found != nil {
		profile = found
	}
	email := profile.Email
	if email == "" {
		email = strings.ToLower(auth.UMISID) + "@babcock.edu.ng"
	}

	// UMIS holds the credentials; the local password is an unguessable
	// placeholder.
	hash, err := s.auth.HashPassword(uuid.New().String())
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         profile.Name,
		Email:        email,
		Role:         model.RoleHOD,
		DepartmentID: &department.ID,
		PasswordHash: hash,
	}
	newLecturer := &model.Lecturer{
		StaffID:      auth.UMISID,
		Phone:        profile.Phone,
		DepartmentID: department.ID,
	}
	if lecturer != nil {
		// Lecturer exists without a login; attach one.
		user.LecturerID = &lecturer.ID
		if err := s.userRepo.CreateForLecturer(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err := s.userRepo.CreateAcademic(ctx, user, newLecturer); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UMISService) demotePreviousHOD(ctx context.Context, departmentID, newHODUserID int) error {
	previous, err := s.userRepo.GetHODByDepartment(ctx, departmentID)
	if err != nil {
		return err
	}
	if previous == nil || previous.ID == newHODUserID {
		return nil
	}
	s.logger.Info().Int("user_id", previous.ID).Int("department_id", departmentID).
		Msg("demoting previous head of department")
	return s.userRepo.UpdateRole(ctx, previous.ID, model.RoleLecturer)
}

// PushSlot pushes every unpushed allocation of one course slot for the
// requested semester, recording which user pushed. Rows that the dataserver
// rejects stay unpushed and are reported; the rest are marked pushed.
func (s *UMISService) PushSlot(ctx context.Context, departmentID, pushedBy int, req *model.UMISPushRequest) (*model.UMISPushSummary, error) {
	slot, session, err := s.scope.ResolveSlot(ctx, departmentID, req.ProgramID, req.CourseID, req.LevelID, req.SemesterID)
	if err != nil {
		return nil, err
	}
	semester, err := s.semesters.GetByID(ctx, req.SemesterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSemesterNotFound
		}
		return nil, err
	}

	pending, err := s.allocations.ListUnpushedForSlot(ctx, slot.ID, session.ID, semester.ID)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, ErrNothingToPush
	}

	auth, err := s.client.Authenticate(ctx, req.UMISID, req.Password)
	if err != nil {
		return nil, err
	}

	quarter := umis.QuarterID(session.Name, semester.Name)
	summary := &model.UMISPushSummary{Total: len(pending), Results: []model.UMISPushRowResult{}}
	var pushedIDs []int

	for _, allocation := range pending {
		result := model.UMISPushRowResult{
			AllocationID: allocation.ID,
			LecturerName: allocation.LecturerName,
			GroupName:    allocation.GroupName,
		}

		lecturer, err := s.lecturerRepo.GetByID(ctx, allocation.LecturerID)
		if err != nil {
			result.Reason = "lecturer profile missing"
			summary.Results = append(summary.Results, result)
			continue
		}

		payload := umis.PushPayload{
			QuarterID:    quarter,
			InstructorID: lecturer.StaffID,
			CourseID:     allocation.CourseCode,
			CourseTitle:  allocation.CourseTitle,
			MaxClass:     valueOrZero(allocation.ClassSize),
		}
		if allocation.ClassOption != nil {
			payload.ClassOption = *allocation.ClassOption
		}

		if err := s.client.Push(ctx, auth.Token, payload); err != nil {
			s.logger.Warn().Err(err).Int("allocation_id", allocation.ID).Msg("push rejected")
			result.Reason = err.Error()
			summary.Results = append(summary.Results, result)
			continue
		}
		result.Pushed = true
		summary.Results = append(summary.Results, result)
		pushedIDs = append(pushedIDs, allocation.ID)
	}

	if err := s.allocations.MarkPushed(ctx, pushedIDs, pushedBy, time.Now()); err != nil {
		return nil, err
	}
	summary.Pushed = len(pushedIDs)
	summary.Failed = summary.Total - summary.Pushed
	return summary, nil
}

// ClassOptions reads the dataserver's class-option reference list, cached in
// redis for an hour.
func (s *UMISService) ClassOptions(ctx context.Context, umisID, password string) ([]umis.ClassOption, error) {
	cacheKey := config.CacheKey.UMISClassOptionsKey()
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var options []umis.ClassOption
			if json.Unmarshal([]byte(raw), &options) == nil {
				return options, nil
			}
		}
	}

	auth, err := s.client.Authenticate(ctx, umisID, password)
	if err != nil {
		return nil, err
	}
	options, err := s.client.ClassOptions(ctx, auth.Token)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(options); err == nil {
			s.rdb.Set(ctx, cacheKey, raw, classOptionsCacheTTL)
		}
	}
	return options, nil
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
