package appointmenterrors

import (
	"net/http"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/apperror"
)

var (
	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid customer id",
		http.StatusBadRequest,
	)
	ErrInvalidAppointmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid appointment id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid appointment status",
		http.StatusBadRequest,
	)
	ErrInvalidProgress = apperror.New(
		apperror.CodeInvalidInput,
		"progress must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"customer not found",
		http.StatusNotFound,
	)
	ErrAppointmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"appointment not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid appointment status transition",
		http.StatusBadRequest,
	)
)
