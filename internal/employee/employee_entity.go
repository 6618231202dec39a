package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee belongs to the agency, not to a client company. Postings to
// client sites are tracked as EmploymentHistory rows.
type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string     `gorm:"type:varchar(150);not null"`
	FatherName     string     `gorm:"type:varchar(150)"`
	DateOfBirth    *time.Time `gorm:"type:date"`
	Phone          string     `gorm:"type:varchar(30)"`
	Address        string     `gorm:"type:varchar(500)"`
	IsActive       bool       `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmploymentHistory records one posting of an employee to a client company.
// A null LeavingDate marks the posting as current; payroll only considers
// rows where LeavingDate is null for the requested company.
type EmploymentHistory struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	DesignationID uuid.UUID  `gorm:"type:uuid"`
	DepartmentID  uuid.UUID  `gorm:"type:uuid"`
	MonthlySalary float64    `gorm:"type:numeric(12,2);not null"`
	JoiningDate   time.Time  `gorm:"type:date;not null"`
	LeavingDate   *time.Time `gorm:"type:date"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EmploymentHistory) TableName() string {
	return "employment_histories"
}
