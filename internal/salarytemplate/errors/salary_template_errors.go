package salarytemplateerrors

import (
	"net/http"

	"staffpay/internal/shared/apperror"
)

var (
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary template not found",
		http.StatusNotFound,
	)

	ErrInvalidTemplateConfig = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary template configuration",
		http.StatusBadRequest,
	)
)
