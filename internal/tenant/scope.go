package tenant

import "gorm.io/gorm"

// Scope filters any query to a single client company.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// MonthScope narrows a query to one YYYY-MM payroll month. Callers validate
// the format; an unvalidated value just matches nothing.
func MonthScope(month string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("month = ?", month)
	}
}
