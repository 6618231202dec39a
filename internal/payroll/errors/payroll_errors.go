package payrollerrors

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

	ErrNoEmployeesFound = apperror.New(
		apperror.CodeNotFound,
		"No employees are associated with this company",
		http.StatusNotFound,
	)

	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"payrollMonth must be in YYYY-MM format",
		http.StatusBadRequest,
	)

	ErrMissingAdminInputs = apperror.New(
		apperror.CodeInvalidInput,
		"Admin inputs are missing for one or more employees",
		http.StatusBadRequest,
	)

	ErrInvalidPayrollRecords = apperror.New(
		apperror.CodeInvalidInput,
		"Every payroll record needs an employeeId and salary data",
		http.StatusBadRequest,
	)

	ErrSalaryRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"No payroll records found",
		http.StatusNotFound,
	)

	ErrDuplicateSalaryRecord = apperror.New(
		apperror.CodeConflict,
		"A payroll record already exists for this employee and month",
		http.StatusConflict,
	)
)
