package dto

type RegisterRequest struct {
	UserCompanyID string `json:"user_company_id" validate:"required,uuid"`
	UserName      string `json:"user_name" validate:"required,min=3,max=100"`
	UserEmail     string `json:"user_email" validate:"required,email"`
	UserPassword  string `json:"user_password" validate:"required,min=8"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
