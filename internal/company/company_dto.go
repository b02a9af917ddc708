package company

type ProfileResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	LogoURL      string   `json:"logo_url,omitempty"`
	WatermarkURL string   `json:"watermark_url,omitempty"`
	CurrencyCode string   `json:"currency_code"`
	DefaultTerms []string `json:"default_terms"`
	IsActive     bool     `json:"is_active"`
}

// UpdateProfileRequest leaves empty strings and a nil terms list unchanged.
type UpdateProfileRequest struct {
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email" binding:"omitempty,email"`
	LogoURL      string   `json:"logo_url" binding:"omitempty,url"`
	WatermarkURL string   `json:"watermark_url" binding:"omitempty,url"`
	CurrencyCode string   `json:"currency_code" binding:"omitempty,len=3"`
	DefaultTerms []string `json:"default_terms"`
	IsActive     *bool    `json:"is_active"`
}
