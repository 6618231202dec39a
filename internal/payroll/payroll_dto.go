package payroll

type CalculatePayrollRequest struct {
	CompanyID    string                         `json:"companyId" binding:"required"`
	PayrollMonth string                         `json:"payrollMonth" binding:"required"`
	AdminInputs  map[string]map[string]*float64 `json:"adminInputs"`
}

type EmployeePayrollResult struct {
	SerialNumber int            `json:"serialNumber"`
	EmployeeID   string         `json:"employeeId"`
	EmployeeName string         `json:"employeeName"`
	Status       string         `json:"status"`
	Error        string         `json:"error,omitempty"`
	SalaryData   map[string]any `json:"salaryData,omitempty"`
}

type CalculatePayrollResponse struct {
	CompanyID    string                  `json:"companyId"`
	CompanyName  string                  `json:"companyName"`
	PayrollMonth string                  `json:"payrollMonth"`
	Results      []EmployeePayrollResult `json:"results"`
}

type PayrollRecordInput struct {
	EmployeeID string         `json:"employeeId"`
	SalaryData map[string]any `json:"salaryData"`
}

type FinalizePayrollRequest struct {
	CompanyID      string               `json:"companyId" binding:"required"`
	PayrollMonth   string               `json:"payrollMonth" binding:"required"`
	PayrollRecords []PayrollRecordInput `json:"payrollRecords" binding:"required"`
}

type FinalizePayrollResponse struct {
	CompanyID    string `json:"companyId"`
	PayrollMonth string `json:"payrollMonth"`
	RecordCount  int    `json:"recordCount"`
}

type ReportQuery struct {
	CompanyID  string `form:"companyId"`
	EmployeeID string `form:"employeeId"`
	Month      string `form:"month"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

type SalaryRecordResponse struct {
	ID          string         `json:"id"`
	EmployeeID  string         `json:"employeeId"`
	CompanyID   string         `json:"companyId"`
	CompanyName string         `json:"companyName"`
	Month       string         `json:"month"`
	SalaryData  map[string]any `json:"salaryData"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type MonthlyTotal struct {
	Month          string  `json:"month"`
	Employees      int64   `json:"employees"`
	TotalNetSalary float64 `json:"totalNetSalary"`
}

type PayrollStatsResponse struct {
	TotalRecords       int64          `json:"totalRecords"`
	CompaniesProcessed int64          `json:"companiesProcessed"`
	LatestMonth        string         `json:"latestMonth"`
	MonthlyTotals      []MonthlyTotal `json:"monthlyTotals"`
}

type MissingAdminInput struct {
	EmployeeID string `json:"employeeId"`
	FieldKey   string `json:"fieldKey"`
}
