package salarytemplate

import (
	salarytemplateerrors "staffpay/internal/salarytemplate/errors"
)

// BasicDutyKey is the conventional key of the calculation field holding the
// contractual day divisor for per-day wages.
const BasicDutyKey = "basicDuty"

// DefaultBasicDuty applies when a template carries no basicDuty field.
// Documented fallback, not an error.
const DefaultBasicDuty = 30.0

// ParsedTemplate is the flattened, enabled-only view of a template. Fields
// keeps the configured order: mandatory, then optional, then custom. Payroll
// evaluation depends on this order, so it must never be re-sorted.
type ParsedTemplate struct {
	Fields []SalaryField

	Allowances   []SalaryField
	Deductions   []SalaryField
	Information  []SalaryField
	Calculations []SalaryField
}

// Parse flattens and partitions a template. Any field missing its key, type,
// or purpose (or carrying an unknown enum value) fails the whole template.
func Parse(template *SalaryTemplate) (*ParsedTemplate, error) {
	parsed := &ParsedTemplate{}

	for _, group := range []FieldList{template.MandatoryFields, template.OptionalFields, template.CustomFields} {
		for _, field := range group {
			if field.Key == "" || field.Type == "" || field.Purpose == "" {
				return nil, salarytemplateerrors.ErrInvalidTemplateConfig
			}
			if !validFieldType(field.Type) || !validPurpose(field.Purpose) {
				return nil, salarytemplateerrors.ErrInvalidTemplateConfig
			}

			if !field.Enabled {
				continue
			}

			parsed.Fields = append(parsed.Fields, field)

			switch field.Purpose {
			case PurposeAllowance:
				parsed.Allowances = append(parsed.Allowances, field)
			case PurposeDeduction:
				parsed.Deductions = append(parsed.Deductions, field)
			case PurposeInformation:
				parsed.Information = append(parsed.Information, field)
			case PurposeCalculation:
				parsed.Calculations = append(parsed.Calculations, field)
			}
		}
	}

	return parsed, nil
}

// ResolveBasicDuty returns the basicDuty field's configured default, or 30.
func (p *ParsedTemplate) ResolveBasicDuty() float64 {
	for _, field := range p.Calculations {
		if field.Key != BasicDutyKey {
			continue
		}
		if field.Rules != nil && field.Rules.DefaultValue != nil {
			return *field.Rules.DefaultValue
		}
	}
	return DefaultBasicDuty
}

// AdminInputFields lists the enabled fields whose value must be supplied per
// employee at calculation time.
func (p *ParsedTemplate) AdminInputFields() []SalaryField {
	var fields []SalaryField
	for _, field := range p.Fields {
		if field.RequiresAdminInput {
			fields = append(fields, field)
		}
	}
	return fields
}
