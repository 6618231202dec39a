package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SalaryData holds the computed field map for one employee and month.
// Stored as a jsonb column so templates can add fields without migrations.
type SalaryData map[string]any

func (d SalaryData) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *SalaryData) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for SalaryData")
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, d)
}

type SalaryRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_salary_record_employee_company_month"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_salary_record_employee_company_month"`
	CompanyName string     `gorm:"size:255;not null"`
	Month       string     `gorm:"size:7;not null;uniqueIndex:uq_salary_record_employee_company_month"`
	SalaryData  SalaryData `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SalaryRecord) TableName() string {
	return "salary_records"
}

// companyRow and the other read-only rows below map tables owned by
// neighbouring features. The payroll engine only ever selects from them.
type companyRow struct {
	ID       uuid.UUID
	Name     string
	IsActive bool
}

func (companyRow) TableName() string {
	return "companies"
}

type employeeRow struct {
	ID         uuid.UUID
	FullName   string
	FatherName string
	IsActive   bool
}

func (employeeRow) TableName() string {
	return "employees"
}

type employmentRow struct {
	ID              uuid.UUID
	EmployeeID      uuid.UUID
	CompanyID       uuid.UUID
	DesignationID   uuid.UUID
	DepartmentID    uuid.UUID
	MonthlySalary   float64
	JoiningDate     time.Time
	LeavingDate     *time.Time
	DesignationName string `gorm:"->"`
}

func (employmentRow) TableName() string {
	return "employment_histories"
}

type attendanceRow struct {
	EmployeeID   uuid.UUID
	CompanyID    uuid.UUID
	Month        string
	PresentCount int
}

func (attendanceRow) TableName() string {
	return "monthly_attendances"
}
