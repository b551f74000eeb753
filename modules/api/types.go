package api

import "github.com/example/studenthustle/domain/marketplace"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTaskRequest represents a POST /api/tasks body.
type CreateTaskRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Budget      marketplace.Amount `json:"budget"`
	Category    string             `json:"category"`
	City        string             `json:"city"`
	CreatedBy   string             `json:"createdBy"`
}

// CreateApplicationRequest represents a POST /api/tasks/:taskId/applications body.
type CreateApplicationRequest struct {
	ApplicantName string             `json:"applicantName"`
	Message       string             `json:"message"`
	OfferBudget   marketplace.Amount `json:"offerBudget"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
