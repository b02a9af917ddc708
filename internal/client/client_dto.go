package client

type CreateClientRequest struct {
	Name         string `json:"name" binding:"required"`
	SiteLocation string `json:"site_location"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email" binding:"omitempty,email"`
}

type UpdateClientRequest struct {
	Name         string `json:"name" binding:"required"`
	SiteLocation string `json:"site_location"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email" binding:"omitempty,email"`
}

type ClientResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"`
	SiteLocation string `json:"site_location"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}
