package model

// Role enumerates login identity roles.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleVetter     Role = "vetter"
	RoleHOD        Role = "hod"
	RoleLecturer   Role = "lecturer"
)

// IsAdminRole reports whether the role carries administrative (back-office)
// access: superadmin, admin or vetter.
func (r Role) IsAdminRole() bool {
	return r == RoleSuperadmin || r == RoleAdmin || r == RoleVetter
}

// User is a login identity. HOD/lecturer users link to a Lecturer profile;
// admin-side users link to an AdminUser profile.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	DepartmentID *int   `json:"department_id,omitempty"`
	LecturerID   *int   `json:"lecturer_id,omitempty"`
	AdminUserID  *int   `json:"admin_user_id,omitempty"`
	PasswordHash string `json:"-"`
}

// AdminUser is the profile record for admin/vetter/superadmin users.
type AdminUser struct {
	ID           int    `json:"id"`
	Gender       string `json:"gender"`
	Phone        string `json:"phone"`
	DepartmentID int    `json:"department_id"`
}

// Lecturer is a staff profile, optionally linked 1:1 to a User login.
type Lecturer struct {
	ID                    int    `json:"id"`
	StaffID               string `json:"staff_id"`
	Gender                string `json:"gender,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	Rank                  string `json:"rank,omitempty"`
	Specialization        string `json:"specialization,omitempty"`
	Qualification         string `json:"qualification,omitempty"`
	OtherResponsibilities string `json:"other_responsibilities,omitempty"`
	DepartmentID          int    `json:"department_id"`

	// UserName is the linked login identity's display name, populated by
	// joined lookups. Empty when the lecturer has no login.
	UserName string `json:"name,omitempty"`
}

// UserDetail is a joined user row for management listings.
type UserDetail struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Role                  Role   `json:"role"`
	Gender                string `json:"gender,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	Rank                  string `json:"rank,omitempty"`
	Specialization        string `json:"specialization,omitempty"`
	Qualification         string `json:"qualification,omitempty"`
	OtherResponsibilities string `json:"other_responsibilities,omitempty"`
	Department            string `json:"department,omitempty"`
}

// CreateUserRequest creates an academic user (hod/lecturer) and, when
// applicable, a lecturer profile. A missing staff id is generated.
type CreateUserRequest struct {
	Name                  string `json:"name" binding:"required,min=2,max=100"`
	Email                 string `json:"email" binding:"required,email"`
	Role                  Role   `json:"role" binding:"required,oneof=hod lecturer"`
	DepartmentID          int    `json:"department_id" binding:"required"`
	StaffID               string `json:"staff_id"`
	Gender                string `json:"gender"`
	Phone                 string `json:"phone"`
	Rank                  string `json:"rank"`
	Specialization        string `json:"specialization"`
	Qualification         string `json:"qualification"`
	OtherResponsibilities string `json:"other_responsibilities"`
}

// BatchCreateUsersRequest is the payload for bulk user upload.
type BatchCreateUsersRequest struct {
	Users []CreateUserRequest `json:"users" binding:"required,min=1,dive"`
}

// UpdateUserRequest updates a user and any linked lecturer profile.
// Zero-valued fields are left unchanged.
type UpdateUserRequest struct {
	Name                  string `json:"name"`
	Email                 string `json:"email" binding:"omitempty,email"`
	Role                  Role   `json:"role" binding:"omitempty,oneof=superadmin admin vetter hod lecturer"`
	DepartmentID          int    `json:"department_id"`
	Gender                string `json:"gender"`
	Phone                 string `json:"phone"`
	Rank                  string `json:"rank"`
	Specialization        string `json:"specialization"`
	Qualification         string `json:"qualification"`
	OtherResponsibilities string `json:"other_responsibilities"`
}

// CreateAdminUserRequest creates an admin-side user (admin/vetter/superadmin)
// with a generated password delivered by email.
type CreateAdminUserRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Role         Role   `json:"role" binding:"required,oneof=superadmin admin vetter"`
	DepartmentID int    `json:"department_id" binding:"required"`
	Gender       string `json:"gender"`
	Phone        string `json:"phone"`
}

// BatchCreateAdminUsersRequest is the payload for bulk admin-user upload.
type BatchCreateAdminUsersRequest struct {
	Users []CreateAdminUserRequest `json:"users" binding:"required,min=1,dive"`
}

// LoginRequest is the local email/password login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UMISLoginRequest is the UMIS-backed HOD login payload.
type UMISLoginRequest struct {
	UMISID   string `json:"umisid" binding:"required"`
	Password string `json:"password" binding:"required"`
}
