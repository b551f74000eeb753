package task

import "github.com/example/studenthustle/domain/marketplace"

// CreateTaskRequest represents a create-task service request.
type CreateTaskRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Budget      marketplace.Amount `json:"budget"`
	Category    string             `json:"category"`
	City        string             `json:"city"`
	CreatedBy   string             `json:"createdBy"`
}

// GetTaskRequest represents a get-task service request.
type GetTaskRequest struct {
	TaskID string `json:"taskId"`
}

// ListTasksRequest represents a list-tasks service request.
type ListTasksRequest struct{}

// ListTasksResponse represents a list-tasks service response.
type ListTasksResponse struct {
	Tasks []marketplace.Task `json:"tasks"`
}
