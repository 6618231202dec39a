package rateschedule

type CreateRateScheduleRequest struct {
	Category      string  `json:"category" binding:"required,oneof=CENTRAL STATE SPECIALIZED"`
	SubCategory   string  `json:"subCategory" binding:"required,oneof=SKILLED UNSKILLED HIGHSKILLED SEMISKILLED"`
	RatePerDay    float64 `json:"ratePerDay" binding:"required"`
	EffectiveFrom string  `json:"effectiveFrom" binding:"required"`
	EffectiveTo   *string `json:"effectiveTo"`
	IsActive      *bool   `json:"isActive"`
}

// UpdateRateScheduleRequest carries only the fields being changed. An empty
// effectiveTo string clears the end date, making the rate ongoing again.
type UpdateRateScheduleRequest struct {
	RatePerDay    *float64 `json:"ratePerDay"`
	EffectiveFrom *string  `json:"effectiveFrom"`
	EffectiveTo   *string  `json:"effectiveTo"`
	IsActive      *bool    `json:"isActive"`
}

type ListRateSchedulesQuery struct {
	Category    string `form:"category" binding:"omitempty,oneof=CENTRAL STATE SPECIALIZED"`
	SubCategory string `form:"subCategory" binding:"omitempty,oneof=SKILLED UNSKILLED HIGHSKILLED SEMISKILLED"`
	IsActive    *bool  `form:"isActive"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

type RateScheduleResponse struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	SubCategory   string  `json:"subCategory"`
	RatePerDay    float64 `json:"ratePerDay"`
	EffectiveFrom string  `json:"effectiveFrom"`
	EffectiveTo   *string `json:"effectiveTo"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}
