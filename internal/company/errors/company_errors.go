package companyerrors

import (
	"net/http"

	"staffpay/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A company with this name already exists",
		http.StatusConflict,
	)
)
