package attendance

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyAttendance is the per-month roll-up payroll reads. Sites report a
// present-day count per employee and month rather than daily punches.
type MonthlyAttendance struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_company_month"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_company_month"`
	Month        string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_attendance_employee_company_month"`
	PresentCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (MonthlyAttendance) TableName() string {
	return "monthly_attendances"
}
