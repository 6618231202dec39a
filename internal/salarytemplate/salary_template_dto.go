package salarytemplate

type CreateSalaryTemplateRequest struct {
	CompanyID       string        `json:"companyId" binding:"required,uuid"`
	MandatoryFields []SalaryField `json:"mandatoryFields" binding:"required"`
	OptionalFields  []SalaryField `json:"optionalFields"`
	CustomFields    []SalaryField `json:"customFields"`
}

type UpdateSalaryTemplateRequest struct {
	MandatoryFields []SalaryField `json:"mandatoryFields" binding:"required"`
	OptionalFields  []SalaryField `json:"optionalFields"`
	CustomFields    []SalaryField `json:"customFields"`
}

type SalaryTemplateResponse struct {
	ID              string        `json:"id"`
	CompanyID       string        `json:"companyId"`
	MandatoryFields []SalaryField `json:"mandatoryFields"`
	OptionalFields  []SalaryField `json:"optionalFields"`
	CustomFields    []SalaryField `json:"customFields"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
}
