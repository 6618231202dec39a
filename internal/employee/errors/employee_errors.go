package employeeerrors

import (
	"net/http"

	"staffpay/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee number already exists",
		http.StatusConflict,
	)
	ErrEmploymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"No active employment found for this company",
		http.StatusNotFound,
	)
	ErrAlreadyEmployed = apperror.New(
		apperror.CodeConflict,
		"Employee already has an active employment with this company",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected DD-MM-YYYY",
		http.StatusBadRequest,
	)
	ErrLeavingBeforeJoining = apperror.New(
		apperror.CodeInvalidInput,
		"leavingDate cannot be before joiningDate",
		http.StatusBadRequest,
	)
)
