package dto

import "APEX_BACK-END/internal/models"

// CreateBuildRequest represents the payload for creating a build
type CreateBuildRequest struct {
	CarModel      string             `json:"carModel" validate:"required"`
	Color         string             `json:"color" validate:"required"`
	SelectedParts []models.BuildPart `json:"selectedParts,omitempty"`
	TotalPrice    float64            `json:"totalPrice,omitempty"`
}

// UpdateBuildRequest represents a partial update to a build.
// Nil fields are left unchanged.
type UpdateBuildRequest struct {
	CarModel      *string             `json:"carModel,omitempty"`
	Color         *string             `json:"color,omitempty"`
	SelectedParts *[]models.BuildPart `json:"selectedParts,omitempty"`
	TotalPrice    *float64            `json:"totalPrice,omitempty"`
}

// BuildResponse represents a build in API responses
type BuildResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	CarModel      string             `json:"carModel"`
	Color         string             `json:"color"`
	SelectedParts []models.BuildPart `json:"selectedParts"`
	TotalPrice    float64            `json:"totalPrice"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

// BuildListResponse represents a list of builds owned by one user
type BuildListResponse struct {
	Builds []BuildResponse `json:"builds"`
}

// MessageResponse carries a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}
