package attendance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"staffpay/internal/tenant"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, attendance *MonthlyAttendance) error
	FindByCompanyAndMonth(ctx context.Context, companyID, month string) ([]MonthlyAttendance, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]MonthlyAttendance, error)
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

func (r *repository) Upsert(ctx context.Context, attendance *MonthlyAttendance) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "company_id"},
				{Name: "month"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"present_count", "updated_at"}),
		}).
		Create(attendance).Error
}

func (r *repository) FindByCompanyAndMonth(ctx context.Context, companyID, month string) ([]MonthlyAttendance, error) {
	var rows []MonthlyAttendance
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID), tenant.MonthScope(month)).
		Order("employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]MonthlyAttendance, error) {
	var rows []MonthlyAttendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("month DESC").
		Find(&rows).Error
	return rows, err
}
