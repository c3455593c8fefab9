package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"
	ErrHODAccessOnly    ErrCode = "HOD_ACCESS_ONLY"
	ErrAdminAccessOnly  ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrActionForbidden  ErrCode = "ACTION_FORBIDDEN"

	// ─── Allocation-specific ───────────────────────────────────────────
	ErrNoActiveBulletin    ErrCode = "NO_ACTIVE_BULLETIN"
	ErrNoActiveSession     ErrCode = "NO_ACTIVE_SESSION"
	ErrDuplicateAllocation ErrCode = "DUPLICATE_ALLOCATION"
	ErrAlreadySubmitted    ErrCode = "ALREADY_SUBMITTED"
	ErrNotYetSubmitted     ErrCode = "NOT_YET_SUBMITTED"
	ErrAlreadyVetted       ErrCode = "ALREADY_VETTED"
	ErrNothingToUnblock    ErrCode = "NOTHING_TO_UNBLOCK"
	ErrLecturerNotFound    ErrCode = "LECTURER_NOT_FOUND"
	ErrAmbiguousLecturer   ErrCode = "AMBIGUOUS_LECTURER"
	ErrSlotNotFound        ErrCode = "COURSE_SLOT_NOT_FOUND"
	ErrAllocationLocked    ErrCode = "ALLOCATION_LOCKED"

	// ─── External ──────────────────────────────────────────────────────
	ErrUMISAuthFailed  ErrCode = "UMIS_AUTH_FAILED"
	ErrUMISPushFailed  ErrCode = "UMIS_PUSH_FAILED"
	ErrUMISUnavailable ErrCode = "UMIS_UNAVAILABLE"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionActive:
		return "You are already logged in on another device."
	case ErrSessionInvalidated:
		return "Your session has expired. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrPermissionDenied:
		return "Permission denied."
	case ErrHODAccessOnly:
		return "This resource is restricted to heads of department."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record cannot be deleted because other records still reference it."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Allocation-specific ───────────────────────────────────────────
	case ErrNoActiveBulletin:
		return "No active bulletin found."
	case ErrNoActiveSession:
		return "No active academic session found."
	case ErrDuplicateAllocation:
		return "An allocation already exists for this course slot, session and group."
	case ErrAlreadySubmitted:
		return "Allocations for this department and semester have already been submitted."
	case ErrNotYetSubmitted:
		return "This allocation cannot be vetted because it has not been submitted yet."
	case ErrAlreadyVetted:
		return "This allocation has already been vetted."
	case ErrNothingToUnblock:
		return "Allocations for this department and semester are not currently submitted."
	case ErrLecturerNotFound:
		return "Lecturer not found."
	case ErrAmbiguousLecturer:
		return "More than one lecturer matches that name. Use a lecturer id instead."
	case ErrSlotNotFound:
		return "Course not found in program."
	case ErrAllocationLocked:
		return "Cannot change allocations that have already been submitted."

	// ─── External ──────────────────────────────────────────────────────
	case ErrUMISAuthFailed:
		return "UMIS authentication failed."
	case ErrUMISPushFailed:
		return "One or more allocations could not be pushed to UMIS."
	case ErrUMISUnavailable:
		return "UMIS is currently unavailable. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
