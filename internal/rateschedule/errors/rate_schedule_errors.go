package ratescheduleerrors

import (
	"net/http"

	"staffpay/internal/shared/apperror"
)

var (
	ErrRateScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Rate schedule not found",
		http.StatusNotFound,
	)

	ErrOverlappingRateSchedule = apperror.New(
		apperror.CodeConflict,
		"An active rate schedule already covers this period for the category and sub-category",
		http.StatusConflict,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"effectiveTo must be after effectiveFrom",
		http.StatusBadRequest,
	)

	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"ratePerDay must be greater than zero",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown rate category",
		http.StatusBadRequest,
	)

	ErrInvalidSubCategory = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown rate sub-category",
		http.StatusBadRequest,
	)

	ErrNoEffectiveRate = apperror.New(
		apperror.CodeNotFound,
		"No rate schedule is effective on the requested date",
		http.StatusNotFound,
	)
)
