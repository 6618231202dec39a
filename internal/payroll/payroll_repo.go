package payroll

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staffpay/internal/tenant"
)

type statsAggregate struct {
	TotalRecords       int64
	CompaniesProcessed int64
	LatestMonth        string
	MonthlyTotals      []MonthlyTotal
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindCompany(ctx context.Context, companyID string) (*companyRow, error)
	FindEmployeesByCompany(ctx context.Context, companyID string) ([]employeeRow, error)
	FindEmploymentHistory(ctx context.Context, employeeID string) ([]employmentRow, error)
	FindAttendanceByMonth(ctx context.Context, companyID string, employeeIDs []string, month string) ([]attendanceRow, error)
	UpsertSalaryRecord(ctx context.Context, record *SalaryRecord) error
	FindRecords(ctx context.Context, filter ReportQuery, offset, limit int) ([]SalaryRecord, int64, error)
	FindByCompanyAndMonth(ctx context.Context, companyID, month string) ([]SalaryRecord, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]SalaryRecord, error)
	Stats(ctx context.Context) (*statsAggregate, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn binds queries to the active transaction when one is present. sql.Tx
// satisfies gorm's ConnPool, so the same repository code runs inside or
// outside a transaction.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) FindCompany(ctx context.Context, companyID string) (*companyRow, error) {
	var company companyRow
	err := r.conn(ctx).
		First(&company, "id = ?", companyID).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) FindEmployeesByCompany(ctx context.Context, companyID string) ([]employeeRow, error) {
	var employees []employeeRow
	err := r.conn(ctx).
		Joins("JOIN employment_histories eh ON eh.employee_id = employees.id").
		Where("eh.company_id = ?", companyID).
		Distinct("employees.*").
		Order("employees.full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindEmploymentHistory(ctx context.Context, employeeID string) ([]employmentRow, error) {
	var history []employmentRow
	err := r.conn(ctx).
		Select("employment_histories.*, designations.name AS designation_name").
		Joins("LEFT JOIN designations ON designations.id = employment_histories.designation_id").
		Where("employment_histories.employee_id = ?", employeeID).
		Order("employment_histories.joining_date DESC").
		Find(&history).Error
	return history, err
}

func (r *repository) FindAttendanceByMonth(
	ctx context.Context,
	companyID string,
	employeeIDs []string,
	month string,
) ([]attendanceRow, error) {
	var rows []attendanceRow
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID), tenant.MonthScope(month)).
		Where("employee_id IN ?", employeeIDs).
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertSalaryRecord(ctx context.Context, record *SalaryRecord) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "company_id"},
				{Name: "month"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"company_name", "salary_data", "updated_at"}),
		}).
		Create(record).Error
}

func (r *repository) FindRecords(
	ctx context.Context,
	filter ReportQuery,
	offset, limit int,
) ([]SalaryRecord, int64, error) {
	query := r.conn(ctx).Model(&SalaryRecord{})

	if filter.CompanyID != "" {
		query = query.Scopes(tenant.Scope(filter.CompanyID))
	}
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Month != "" {
		query = query.Scopes(tenant.MonthScope(filter.Month))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []SalaryRecord
	err := query.
		Order("month DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}

func (r *repository) FindByCompanyAndMonth(ctx context.Context, companyID, month string) ([]SalaryRecord, error) {
	var records []SalaryRecord
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID), tenant.MonthScope(month)).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]SalaryRecord, error) {
	var records []SalaryRecord
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("month DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) Stats(ctx context.Context) (*statsAggregate, error) {
	var agg statsAggregate

	base := r.conn(ctx).Model(&SalaryRecord{})
	if err := base.Count(&agg.TotalRecords).Error; err != nil {
		return nil, err
	}

	err := r.conn(ctx).
		Model(&SalaryRecord{}).
		Distinct("company_id").
		Count(&agg.CompaniesProcessed).Error
	if err != nil {
		return nil, err
	}

	err = r.conn(ctx).
		Model(&SalaryRecord{}).
		Select("COALESCE(MAX(month), '')").
		Scan(&agg.LatestMonth).Error
	if err != nil {
		return nil, err
	}

	err = r.conn(ctx).
		Model(&SalaryRecord{}).
		Select(
			"month",
			"COUNT(*) AS employees",
			"COALESCE(SUM((salary_data->>'netSalary')::numeric), 0) AS total_net_salary",
		).
		Group("month").
		Order("month DESC").
		Scan(&agg.MonthlyTotals).Error
	if err != nil {
		return nil, err
	}

	return &agg, nil
}
