package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ekediee/course-allocation-backend/internal/mailer"
	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
	"github.com/Ekediee/course-allocation-backend/internal/response"
)

// UserService handles login and user management for both academic
// (hod/lecturer) and admin-side users.
type UserService struct {
	logger   zerolog.Logger
	userRepo *repository.UserRepository
	auth     *AuthService
	mail     mailer.Mailer
}

func NewUserService(logger zerolog.Logger, userRepo *repository.UserRepository, auth *AuthService, mail mailer.Mailer) *UserService {
	return &UserService{
		logger:   logger.With().Str("component", "user_service").Logger(),
		userRepo: userRepo,
		auth:     auth,
		mail:     mail,
	}
}

// Login authenticates by email and password and issues a JWT.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (string, *model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := s.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.auth.GenerateToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CreateAcademic creates a hod/lecturer user with a lecturer profile. A
// missing staff id is generated; the generated password is emailed.
func (s *UserService) CreateAcademic(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	password := generatePassword()
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	staffID := strings.TrimSpace(req.StaffID)
	if staffID == "" {
		staffID = generateStaffID()
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		DepartmentID: &req.DepartmentID,
		PasswordHash: hash,
	}
	lecturer := &model.Lecturer{
		StaffID:               staffID,
		Gender:                req.Gender,
		Phone:                 req.Phone,
		Rank:                  req.Rank,
		Specialization:        req.Specialization,
		Qualification:         req.Qualification,
		OtherResponsibilities: req.OtherResponsibilities,
		DepartmentID:          req.DepartmentID,
	}
	if err := s.userRepo.CreateAcademic(ctx, user, lecturer); err != nil {
		return nil, err
	}

	s.mail.Send(mailer.CredentialsMessage(user.Name, user.Email, password))
	return user, nil
}

// CreateAcademicBatch creates several academic users; failures are logged
// per item and the rest proceed.
func (s *UserService) CreateAcademicBatch(ctx context.Context, req *model.BatchCreateUsersRequest) (created int, failed []string, err error) {
	for i := range req.Users {
		if _, err := s.CreateAcademic(ctx, &req.Users[i]); err != nil {
			s.logger.Warn().Err(err).Str("email", req.Users[i].Email).Msg("batch user creation item failed")
			failed = append(failed, req.Users[i].Email)
			continue
		}
		created++
	}
	return created, failed, nil
}

// CreateAdmin creates an admin/vetter/superadmin user with a generated
// password delivered by email.
func (s *UserService) CreateAdmin(ctx context.Context, req *model.CreateAdminUserRequest) (*model.User, error) {
	password := generatePassword()
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		DepartmentID: &req.DepartmentID,
		PasswordHash: hash,
	}
	profile := &model.AdminUser{
		Gender:       req.Gender,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
	}
	if err := s.userRepo.CreateAdmin(ctx, user, profile); err != nil {
		return nil, err
	}

	s.mail.Send(mailer.CredentialsMessage(user.Name, user.Email, password))
	return user, nil
}

func (s *UserService) CreateAdminBatch(ctx context.Context, req *model.BatchCreateAdminUsersRequest) (created int, failed []string, err error) {
	for i := range req.Users {
		if _, err := s.CreateAdmin(ctx, &req.Users[i]); err != nil {
			s.logger.Warn().Err(err).Str("email", req.Users[i].Email).Msg("batch admin creation item failed")
			failed = append(failed, req.Users[i].Email)
			continue
		}
		created++
	}
	return created, failed, nil
}

// List returns joined user rows with pagination.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]model.UserDetail, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	users, total, err := s.userRepo.ListDetailed(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.UserDetail{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return users, pagination, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) error {
	return s.userRepo.Update(ctx, id, req)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) Logout(ctx context.Context, userID int) error {
	return s.auth.Logout(ctx, userID)
}

func generatePassword() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

func generateStaffID() string {
	return "STF-" + strings.ToUpper(uuid.New().String()[:8])
}
