package attendance

type UpsertAttendanceRequest struct {
	EmployeeID   string `json:"employeeId" binding:"required"`
	CompanyID    string `json:"companyId" binding:"required"`
	Month        string `json:"month" binding:"required"`
	PresentCount int    `json:"presentCount"`
}

type AttendanceEntry struct {
	EmployeeID   string `json:"employeeId" binding:"required"`
	PresentCount int    `json:"presentCount"`
}

type BulkUpsertAttendanceRequest struct {
	CompanyID string            `json:"companyId" binding:"required"`
	Month     string            `json:"month" binding:"required"`
	Entries   []AttendanceEntry `json:"entries" binding:"required"`
}

type AttendanceResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	CompanyID    string `json:"companyId"`
	Month        string `json:"month"`
	PresentCount int    `json:"presentCount"`
}
