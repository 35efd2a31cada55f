package dto

type CreateCompanyRequest struct {
	CompanyName    string  `json:"company_name" validate:"required,min=3,max=100"`
	CompanyAddress *string `json:"company_address"`
	CompanyPhone   *string `json:"company_phone" validate:"omitempty,max=30"`
}
