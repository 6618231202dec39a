package salarytemplate

import (
	"testing"

	salarytemplateerrors "staffpay/internal/salarytemplate/errors"

	"github.com/stretchr/testify/assert"
)

func numberField(key string, purpose FieldPurpose) SalaryField {
	return SalaryField{
		Key:     key,
		Label:   key,
		Type:    FieldTypeNumber,
		Purpose: purpose,
		Enabled: true,
	}
}

func TestParse_FlattensInConfiguredOrder(t *testing.T) {
	template := &SalaryTemplate{
		MandatoryFields: FieldList{
			numberField("basicDuty", PurposeCalculation),
			numberField("hra", PurposeAllowance),
		},
		OptionalFields: FieldList{
			numberField("conveyance", PurposeAllowance),
		},
		CustomFields: FieldList{
			numberField("pf", PurposeDeduction),
		},
	}

	parsed, err := Parse(template)
	assert.NoError(t, err)

	keys := make([]string, 0, len(parsed.Fields))
	for _, f := range parsed.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"basicDuty", "hra", "conveyance", "pf"}, keys)

	assert.Len(t, parsed.Allowances, 2)
	assert.Len(t, parsed.Deductions, 1)
	assert.Len(t, parsed.Calculations, 1)
	assert.Empty(t, parsed.Information)
}

func TestParse_SkipsDisabledFields(t *testing.T) {
	disabled := numberField("bonus", PurposeAllowance)
	disabled.Enabled = false

	template := &SalaryTemplate{
		MandatoryFields: FieldList{numberField("hra", PurposeAllowance), disabled},
	}

	parsed, err := Parse(template)
	assert.NoError(t, err)
	assert.Len(t, parsed.Fields, 1)
	assert.Equal(t, "hra", parsed.Fields[0].Key)
}

func TestParse_RejectsMalformedFields(t *testing.T) {
	cases := []SalaryField{
		{Label: "no key", Type: FieldTypeNumber, Purpose: PurposeAllowance, Enabled: true},
		{Key: "noType", Purpose: PurposeAllowance, Enabled: true},
		{Key: "noPurpose", Type: FieldTypeNumber, Enabled: true},
		{Key: "badType", Type: "DECIMAL", Purpose: PurposeAllowance, Enabled: true},
		{Key: "badPurpose", Type: FieldTypeNumber, Purpose: "BONUS", Enabled: true},
	}

	for _, field := range cases {
		template := &SalaryTemplate{MandatoryFields: FieldList{field}}
		_, err := Parse(template)
		assert.ErrorIs(t, err, salarytemplateerrors.ErrInvalidTemplateConfig, "field %q", field.Key)
	}

	// even a disabled field must be well formed
	broken := SalaryField{Label: "no key at all"}
	_, err := Parse(&SalaryTemplate{CustomFields: FieldList{broken}})
	assert.ErrorIs(t, err, salarytemplateerrors.ErrInvalidTemplateConfig)
}

func TestResolveBasicDuty(t *testing.T) {
	duty := 26.0
	withDuty := numberField("basicDuty", PurposeCalculation)
	withDuty.Rules = &FieldRules{DefaultValue: &duty}

	parsed, err := Parse(&SalaryTemplate{MandatoryFields: FieldList{withDuty}})
	assert.NoError(t, err)
	assert.Equal(t, 26.0, parsed.ResolveBasicDuty())

	// absent field falls back to 30
	parsed, err = Parse(&SalaryTemplate{MandatoryFields: FieldList{numberField("hra", PurposeAllowance)}})
	assert.NoError(t, err)
	assert.Equal(t, DefaultBasicDuty, parsed.ResolveBasicDuty())
}

func TestAdminInputFields(t *testing.T) {
	manual := numberField("incentive", PurposeAllowance)
	manual.RequiresAdminInput = true

	parsed, err := Parse(&SalaryTemplate{
		MandatoryFields: FieldList{numberField("hra", PurposeAllowance)},
		CustomFields:    FieldList{manual},
	})
	assert.NoError(t, err)

	fields := parsed.AdminInputFields()
	assert.Len(t, fields, 1)
	assert.Equal(t, "incentive", fields[0].Key)
}
