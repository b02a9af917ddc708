package salesdocerrors

import (
	"go-bizdocs/internal/shared/apperror"
	"net/http"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)
	ErrDocumentNumberExists = apperror.New(
		apperror.CodeConflict,
		"Document number already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document kind",
		http.StatusBadRequest,
	)
	ErrInvalidDocumentDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidConversion = apperror.New(
		apperror.CodeInvalidState,
		"Document cannot be converted to the requested kind",
		http.StatusConflict,
	)
	ErrPDFNotReady = apperror.New(
		apperror.CodeInvalidState,
		"PDF has not been generated yet",
		http.StatusConflict,
	)
	ErrStoredDocumentCorrupt = apperror.New(
		apperror.CodeInternalError,
		"Stored document could not be read",
		http.StatusInternalServerError,
	)
)
