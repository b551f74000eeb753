package application

import "github.com/example/studenthustle/domain/marketplace"

// CreateApplicationRequest represents a create-application service request.
type CreateApplicationRequest struct {
	TaskID        string             `json:"taskId"`
	ApplicantName string             `json:"applicantName"`
	Message       string             `json:"message"`
	OfferBudget   marketplace.Amount `json:"offerBudget"`
}

// ListTaskApplicationsRequest represents a list-task-applications service request.
type ListTaskApplicationsRequest struct {
	TaskID string `json:"taskId"`
}

// ListApplicationsRequest represents a list-applications service request.
type ListApplicationsRequest struct {
	ApplicantName string `json:"applicantName,omitempty"`
}

// ListApplicationsResponse is returned by both list services.
type ListApplicationsResponse struct {
	Applications []marketplace.Application `json:"applications"`
}
