package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ekediee/course-allocation-backend/internal/repository"
	"github.com/Ekediee/course-allocation-backend/internal/response"
	"github.com/Ekediee/course-allocation-backend/internal/service"
	"github.com/Ekediee/course-allocation-backend/internal/umis"
)

// failFromError maps service and repository errors onto the response
// envelope. Unknown errors become a plain 500.
func failFromError(c *gin.Context, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrNoActiveSession):
		response.Fail(c, http.StatusConflict, response.ErrNoActiveSession)
	case errors.Is(err, service.ErrNoActiveBulletin):
		response.Fail(c, http.StatusConflict, response.ErrNoActiveBulletin)
	case errors.Is(err, service.ErrSemesterNotFound),
		errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrSlotNotInScope),
		errors.Is(err, service.ErrSlotNotOwned):
		response.Fail(c, http.StatusNotFound, response.ErrSlotNotFound)
	case errors.Is(err, service.ErrLecturerNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrLecturerNotFound)
	case errors.Is(err, service.ErrAmbiguousLecturer):
		response.Fail(c, http.StatusConflict, response.ErrAmbiguousLecturer)
	case errors.Is(err, service.ErrLecturerLookupOff):
		response.Fail(c, http.StatusForbidden, response.ErrActionForbidden)
	case errors.Is(err, service.ErrDuplicateAllocation),
		errors.Is(err, repository.ErrDuplicateGroup):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateAllocation)
	case errors.Is(err, service.ErrAllocationLocked):
		response.Fail(c, http.StatusConflict, response.ErrAllocationLocked)
	case errors.Is(err, service.ErrNoAllocationsToSubmit):
		response.Fail(c, http.StatusConflict, response.ErrActionForbidden)
	case errors.Is(err, service.ErrAlreadySubmitted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
	case errors.Is(err, service.ErrNotSubmitted):
		response.Fail(c, http.StatusConflict, response.ErrNotYetSubmitted)
	case errors.Is(err, service.ErrAlreadyVetted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyVetted)
	case errors.Is(err, service.ErrNothingToUnblock):
		response.Fail(c, http.StatusNotFound, response.ErrNothingToUnblock)
	case errors.Is(err, service.ErrNotHOD),
		errors.Is(err, umis.ErrAuthFailed):
		response.Fail(c, http.StatusUnauthorized, response.ErrUMISAuthFailed)
	case errors.Is(err, umis.ErrUnavailable):
		response.Fail(c, http.StatusBadGateway, response.ErrUMISUnavailable)
	case errors.Is(err, umis.ErrRejected):
		response.Fail(c, http.StatusBadGateway, response.ErrUMISPushFailed)
	case errors.Is(err, service.ErrNothingToPush):
		response.Fail(c, http.StatusConflict, response.ErrActionForbidden)
	case errors.Is(err, service.ErrUnknownDepartment):
		response.Fail(c, http.StatusConflict, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicateBulletin),
		errors.Is(err, repository.ErrDuplicateSession),
		errors.Is(err, repository.ErrDuplicateDepartment),
		errors.Is(err, repository.ErrDuplicateProgram),
		errors.Is(err, repository.ErrDuplicateSlot),
		errors.Is(err, repository.ErrDuplicateStaffID),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrStateExists):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
