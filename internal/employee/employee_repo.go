package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context, filter ListEmployeesQuery, offset, limit int) ([]Employee, int64, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error

	CreateEmployment(ctx context.Context, employment *EmploymentHistory) error
	FindEmploymentsByEmployee(ctx context.Context, employeeID string) ([]EmploymentHistory, error)
	FindActiveEmployment(ctx context.Context, employeeID, companyID string) (*EmploymentHistory, error)
	UpdateEmployment(ctx context.Context, employment *EmploymentHistory) error
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) List(
	ctx context.Context,
	filter ListEmployeesQuery,
	offset, limit int,
) ([]Employee, int64, error) {
	query := r.conn(ctx).Model(&Employee{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR employee_number ILIKE ?", pattern, pattern)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CompanyID != "" {
		query = query.
			Joins("JOIN employment_histories eh ON eh.employee_id = employees.id").
			Where("eh.company_id = ? AND eh.leaving_date IS NULL", filter.CompanyID).
			Distinct("employees.*")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []Employee
	err := query.
		Order("employee_number ASC").
		Offset(offset).
		Limit(limit).
		Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.conn(ctx).
		Select("id", "employee_number", "full_name").
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateEmployment(ctx context.Context, employment *EmploymentHistory) error {
	return r.conn(ctx).Create(employment).Error
}

func (r *repository) FindEmploymentsByEmployee(ctx context.Context, employeeID string) ([]EmploymentHistory, error) {
	var history []EmploymentHistory
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("joining_date DESC").
		Find(&history).Error
	return history, err
}

func (r *repository) FindActiveEmployment(ctx context.Context, employeeID, companyID string) (*EmploymentHistory, error) {
	var employment EmploymentHistory
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("leaving_date IS NULL").
		First(&employment).Error
	if err != nil {
		return nil, err
	}
	return &employment, nil
}

func (r *repository) UpdateEmployment(ctx context.Context, employment *EmploymentHistory) error {
	return r.conn(ctx).Save(employment).Error
}
