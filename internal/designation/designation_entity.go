package designation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Designation is a job title (Security Guard, Supervisor, Gunman, ...).
// Payroll joins it by id to label a posting's line on the payslip.
type Designation struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:uq_designation_name"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Designation) TableName() string {
	return "designations"
}
