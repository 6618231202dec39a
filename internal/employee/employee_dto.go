package employee

type CreateEmployeeRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	FatherName  string `json:"fatherName"`
	DateOfBirth string `json:"dateOfBirth"` // DD-MM-YYYY
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type UpdateEmployeeRequest struct {
	FullName    string `json:"fullName"`
	FatherName  string `json:"fatherName"`
	DateOfBirth string `json:"dateOfBirth"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	IsActive    *bool  `json:"isActive"`
}

type ListEmployeesQuery struct {
	Search    string `form:"search"`
	CompanyID string `form:"companyId"`
	IsActive  *bool  `form:"isActive"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

type AssignEmployeeRequest struct {
	CompanyID     string  `json:"companyId" binding:"required"`
	DesignationID string  `json:"designationId" binding:"required"`
	DepartmentID  string  `json:"departmentId"`
	MonthlySalary float64 `json:"monthlySalary" binding:"required"`
	JoiningDate   string  `json:"joiningDate" binding:"required"` // DD-MM-YYYY
}

type LeaveCompanyRequest struct {
	CompanyID   string `json:"companyId" binding:"required"`
	LeavingDate string `json:"leavingDate" binding:"required"` // DD-MM-YYYY
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employeeNumber"`
	FullName       string `json:"fullName"`
	FatherName     string `json:"fatherName"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	IsActive       bool   `json:"isActive"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employeeNumber"`
	FullName       string `json:"fullName"`
}

type EmploymentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	CompanyID     string  `json:"companyId"`
	DesignationID string  `json:"designationId,omitempty"`
	DepartmentID  string  `json:"departmentId,omitempty"`
	MonthlySalary float64 `json:"monthlySalary"`
	JoiningDate   string  `json:"joiningDate"`
	LeavingDate   string  `json:"leavingDate,omitempty"`
}
