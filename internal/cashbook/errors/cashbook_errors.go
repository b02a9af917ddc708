package cashbookerrors

import (
	"go-bizdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Cash book entry not found",
		http.StatusNotFound,
	)
	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid entry ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidEntryDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid entry_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid period, expected from <= to as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmptyEntry = apperror.New(
		apperror.CodeInvalidInput,
		"Entry must carry a cash, bank or discount amount",
		http.StatusBadRequest,
	)
)
