package dto

type CreateProjectRequest struct {
	ProjectName        string  `json:"project_name" validate:"required,min=3,max=100"`
	ProjectDescription *string `json:"project_description"`
}

type UpdateProjectRequest struct {
	ProjectName        *string `json:"project_name" validate:"omitempty,min=3,max=100"`
	ProjectDescription *string `json:"project_description"`
	ProjectIsActive    *bool   `json:"project_is_active"`
}
