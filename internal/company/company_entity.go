package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a client site the agency posts staff to.
type Company struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string         `gorm:"type:varchar(150);not null;uniqueIndex:uq_company_name"`
	Address       string         `gorm:"type:varchar(500)"`
	ContactPerson string         `gorm:"type:varchar(150)"`
	ContactNumber string         `gorm:"type:varchar(30)"`
	Email         string         `gorm:"type:varchar(255);index"`
	IsActive      bool           `gorm:"not null;default:true"`
	CreatedAt     time.Time      `gorm:"not null;default:now()"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
