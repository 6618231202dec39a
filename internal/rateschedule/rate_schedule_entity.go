package rateschedule

import (
	"time"

	ratescheduleerrors "staffpay/internal/rateschedule/errors"

	"github.com/google/uuid"
)

// Category is the government-wage classification a statutory rate belongs to.
type Category string

const (
	CategoryCentral     Category = "CENTRAL"
	CategoryState       Category = "STATE"
	CategorySpecialized Category = "SPECIALIZED"
)

type SubCategory string

const (
	SubCategorySkilled     SubCategory = "SKILLED"
	SubCategoryUnskilled   SubCategory = "UNSKILLED"
	SubCategoryHighSkilled SubCategory = "HIGHSKILLED"
	SubCategorySemiSkilled SubCategory = "SEMISKILLED"
)

// ParseCategory validates membership statically; no storage lookup involved.
func ParseCategory(v string) (Category, error) {
	switch Category(v) {
	case CategoryCentral, CategoryState, CategorySpecialized:
		return Category(v), nil
	}
	return "", ratescheduleerrors.ErrInvalidCategory
}

func ParseSubCategory(v string) (SubCategory, error) {
	switch SubCategory(v) {
	case SubCategorySkilled, SubCategoryUnskilled, SubCategoryHighSkilled, SubCategorySemiSkilled:
		return SubCategory(v), nil
	}
	return "", ratescheduleerrors.ErrInvalidSubCategory
}

// RateSchedule is a date-ranged statutory per-day wage for one
// (category, sub-category) segment. EffectiveTo nil means ongoing.
// Active records for the same segment never overlap in time.
type RateSchedule struct {
	ID            uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Category      Category    `gorm:"column:category;type:varchar(20);not null;index:idx_rate_segment"`
	SubCategory   SubCategory `gorm:"column:sub_category;type:varchar(20);not null;index:idx_rate_segment"`
	RatePerDay    float64     `gorm:"column:rate_per_day;type:numeric(12,2);not null"`
	EffectiveFrom time.Time   `gorm:"column:effective_from;type:timestamptz;not null;index"`
	EffectiveTo   *time.Time  `gorm:"column:effective_to;type:timestamptz"`
	IsActive      bool        `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time   `gorm:"column:created_at"`
	UpdatedAt     time.Time   `gorm:"column:updated_at"`
}

func (RateSchedule) TableName() string {
	return "salary_rate_schedules"
}
