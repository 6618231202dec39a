package salarytemplate

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type FieldType string

const (
	FieldTypeText   FieldType = "TEXT"
	FieldTypeNumber FieldType = "NUMBER"
)

// FieldPurpose decides how a computed value participates in the payroll
// totals: allowances add to gross, deductions subtract from net, the rest is
// stored without aggregation.
type FieldPurpose string

const (
	PurposeInformation FieldPurpose = "INFORMATION"
	PurposeCalculation FieldPurpose = "CALCULATION"
	PurposeAllowance   FieldPurpose = "ALLOWANCE"
	PurposeDeduction   FieldPurpose = "DEDUCTION"
)

func validFieldType(t FieldType) bool {
	return t == FieldTypeText || t == FieldTypeNumber
}

func validPurpose(p FieldPurpose) bool {
	switch p {
	case PurposeInformation, PurposeCalculation, PurposeAllowance, PurposeDeduction:
		return true
	}
	return false
}

type FieldRules struct {
	DefaultValue    *float64 `json:"defaultValue,omitempty"`
	CalculationType string   `json:"calculationType,omitempty"` // "percentage" | "fixed"
	Percentage      float64  `json:"percentage,omitempty"`
	BasedOn         string   `json:"basedOn,omitempty"` // basicPay | monthlySalary | grossSalary
	Amount          float64  `json:"amount,omitempty"`
}

type SalaryField struct {
	Key                string       `json:"key"`
	Label              string       `json:"label"`
	Type               FieldType    `json:"type"`
	Category           string       `json:"category"`
	Purpose            FieldPurpose `json:"purpose"`
	Enabled            bool         `json:"enabled"`
	Rules              *FieldRules  `json:"rules,omitempty"`
	RequiresAdminInput bool         `json:"requiresAdminInput,omitempty"`
}

// FieldList is stored as a jsonb column.
type FieldList []SalaryField

func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FieldList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for FieldList", value)
	}

	return json.Unmarshal(data, l)
}

// SalaryTemplate is a company's payroll line-item schema. Templates are not
// versioned: when several rows exist for one company, the latest created one
// is the active template.
type SalaryTemplate struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	MandatoryFields FieldList `gorm:"column:mandatory_fields;type:jsonb;not null"`
	OptionalFields  FieldList `gorm:"column:optional_fields;type:jsonb;not null"`
	CustomFields    FieldList `gorm:"column:custom_fields;type:jsonb;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (SalaryTemplate) TableName() string {
	return "salary_templates"
}
