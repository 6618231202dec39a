package company

type CreateCompanyRequest struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email" binding:"omitempty,email"`
}

type UpdateCompanyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email" binding:"omitempty,email"`
	IsActive      *bool  `json:"isActive"`
}

type ListCompaniesQuery struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"isActive"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type CompanyResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	IsActive      bool   `json:"isActive"`
}
