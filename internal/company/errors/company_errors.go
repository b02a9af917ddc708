package companyerrors

import (
	"go-bizdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrCompanyInactive = apperror.New(
		apperror.CodeInvalidState,
		"Company is inactive",
		http.StatusConflict,
	)

	ErrInvalidTerms = apperror.New(
		apperror.CodeInvalidInput,
		"Default terms could not be read",
		http.StatusUnprocessableEntity,
	)
)
