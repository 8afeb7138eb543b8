package dto

type StoreResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	LogoURL       *string `json:"logo_url"`
	Plan          string  `json:"plan"`
	PlanExpiresAt *string `json:"plan_expires_at"` // YYYY-MM-DD
	CreatedAt     string  `json:"created_at"`
}

type UpdateStoreRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
}
