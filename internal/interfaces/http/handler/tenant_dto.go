package handler

// CreateTenantRequest represents the request body for tenant creation
type CreateTenantRequest struct {
	Name           string `json:"name" binding:"required,max=200"`
	RegistrationNo string `json:"registration_no" binding:"required,max=100"`
	ContactEmail   string `json:"contact_email" binding:"required,email"`
	PayoutIBAN     string `json:"payout_iban" binding:"required,iban"`
}

// UpdateTenantRequest represents the request body for tenant updates
type UpdateTenantRequest struct {
	Name           string `json:"name" binding:"required,max=200"`
	RegistrationNo string `json:"registration_no" binding:"required,max=100"`
	ContactEmail   string `json:"contact_email" binding:"required,email"`
	PayoutIBAN     string `json:"payout_iban" binding:"required,iban"`
}

// TenantListQuery represents query parameters for tenant listing
type TenantListQuery struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	// AssignedToMe narrows the listing to the caller's own assignments.
	// Only meaningful for agents.
	AssignedToMe bool `form:"assigned_to_me"`
}
