package timetrackingerrors

import (
	"net/http"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidAppointmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid appointment id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAppointmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"appointment not found",
		http.StatusNotFound,
	)
	ErrTimerNotFound = apperror.New(
		apperror.CodeNotFound,
		"timer not found",
		http.StatusNotFound,
	)
	ErrTimeLogNotFound = apperror.New(
		apperror.CodeNotFound,
		"time log not found",
		http.StatusNotFound,
	)
	ErrTimerAlreadyActive = apperror.New(
		apperror.CodeConflict,
		"employee already has an active timer",
		http.StatusConflict,
	)
	ErrTimerNotActive = apperror.New(
		apperror.CodeInvalidState,
		"timer is not active",
		http.StatusBadRequest,
	)
	ErrTimerTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"timer must run for at least one minute before it can be logged",
		http.StatusBadRequest,
	)
	ErrNotTimerOwner = apperror.New(
		apperror.CodeForbidden,
		"timer belongs to another employee",
		http.StatusForbidden,
	)
	ErrNotTimeLogOwner = apperror.New(
		apperror.CodeForbidden,
		"time log belongs to another employee",
		http.StatusForbidden,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"hours must be greater than 0 and at most 24",
		http.StatusBadRequest,
	)
	ErrDescriptionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"description is required",
		http.StatusBadRequest,
	)
	ErrFutureDate = apperror.New(
		apperror.CodeInvalidInput,
		"time log date cannot be in the future",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeLogStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time log status",
		http.StatusBadRequest,
	)
)
