package customererrors

import (
	"net/http"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/apperror"
)

var (
	ErrCustomerNotFound = apperror.New(
		apperror.CodeNotFound,
		"customer not found",
		http.StatusNotFound,
	)
	ErrCustomerAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"customer with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidCustomerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid customer id",
		http.StatusBadRequest,
	)
)
