package service

import "errors"

// Domain errors shared across the allocation services. Handlers translate
// them into response codes.
var (
	ErrNoActiveSession  = errors.New("no academic session is active")
	ErrNoActiveBulletin = errors.New("no bulletin is active")
	ErrSemesterNotFound = errors.New("semester not found")
	ErrProgramNotFound  = errors.New("program not found in the department")

	ErrSlotNotInScope        = errors.New("course is not allocatable for the department in the current bulletin")
	ErrSlotNotOwned          = errors.New("course belongs to another department")
	ErrLecturerNotFound      = errors.New("lecturer not found")
	ErrAmbiguousLecturer     = errors.New("lecturer name matches more than one lecturer")
	ErrLecturerLookupOff     = errors.New("lecturer lookup by name is disabled")
	ErrDuplicateAllocation   = errors.New("course already allocated for this group in the session")
	ErrAllocationLocked      = errors.New("allocations are locked after submission")
	ErrNoAllocationsToSubmit = errors.New("nothing has been allocated yet")
	ErrAlreadySubmitted      = errors.New("allocation already submitted")
	ErrNotSubmitted          = errors.New("allocation has not been submitted")
	ErrAlreadyVetted         = errors.New("allocation already vetted")
	ErrNothingToUnblock      = errors.New("no submission to unblock")
)
