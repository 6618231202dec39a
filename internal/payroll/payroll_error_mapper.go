package payroll

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	payrollerrors "staffpay/internal/payroll/errors"
	salarytemplateerrors "staffpay/internal/salarytemplate/errors"
	"staffpay/internal/shared/apperror"
)

func mapRepositoryError(err error, notFound *apperror.AppError) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_record_employee_company_month" {
			return payrollerrors.ErrDuplicateSalaryRecord
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_record") {
		return payrollerrors.ErrDuplicateSalaryRecord
	}

	return err
}

func mapTemplateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarytemplateerrors.ErrTemplateNotFound
	}
	return err
}
