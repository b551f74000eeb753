package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/example/studenthustle/domain/marketplace"
	domain "github.com/example/studenthustle/domain/user"
	"github.com/gofiber/fiber/v2"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorMessage extracts the user-facing text from err.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// NewTask is the body of a post-task call.
type NewTask struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Budget      marketplace.Amount `json:"budget"`
	Category    string             `json:"category"`
	City        string             `json:"city"`
	CreatedBy   string             `json:"createdBy"`
}

// NewApplication is the body of an apply call.
type NewApplication struct {
	ApplicantName string             `json:"applicantName"`
	Message       string             `json:"message"`
	OfferBudget   marketplace.Amount `json:"offerBudget"`
}

// APIClient calls the REST API. Each method makes exactly one request.
type APIClient struct {
	baseURL string
}

// NewAPIClient creates a client for the server at baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{baseURL: strings.TrimRight(baseURL, "/")}
}

// Register creates an account and returns its session.
func (c *APIClient) Register(name, email, password string) (*domain.Session, error) {
	var session domain.Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(fiber.MethodPost, "/api/auth/register", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Login exchanges credentials for a session.
func (c *APIClient) Login(email, password string) (*domain.Session, error) {
	var session domain.Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(fiber.MethodPost, "/api/auth/login", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListTasks returns every posted task, oldest first.
func (c *APIClient) ListTasks() ([]marketplace.Task, error) {
	var tasks []marketplace.Task
	if err := c.do(fiber.MethodGet, "/api/tasks", "", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask posts a task, sending token as a bearer token when set.
func (c *APIClient) CreateTask(token string, task NewTask) (*marketplace.Task, error) {
	var created marketplace.Task
	if err := c.do(fiber.MethodPost, "/api/tasks", token, task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Apply submits an application to taskID, sending token when set.
func (c *APIClient) Apply(token, taskID string, app NewApplication) (*marketplace.Application, error) {
	var created marketplace.Application
	path := "/api/tasks/" + url.PathEscape(taskID) + "/applications"
	if err := c.do(fiber.MethodPost, path, token, app, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListTaskApplications returns the applications submitted to taskID.
func (c *APIClient) ListTaskApplications(taskID string) ([]marketplace.Application, error) {
	var apps []marketplace.Application
	path := "/api/tasks/" + url.PathEscape(taskID) + "/applications"
	if err := c.do(fiber.MethodGet, path, "", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListApplications lists applications, filtered by exact applicant name when
// applicantName is not empty.
func (c *APIClient) ListApplications(applicantName string) ([]marketplace.Application, error) {
	var apps []marketplace.Application
	path := "/api/applications"
	if applicantName != "" {
		path += "?applicantName=" + url.QueryEscape(applicantName)
	}
	if err := c.do(fiber.MethodGet, path, "", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *APIClient) do(method, path, token string, body, out any) error {
	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		agent.JSON(body)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("failed to prepare %s %s: %w", method, path, err)
	}

	// Bytes releases the agent.
	status, data, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s failed: %w", method, path, errors.Join(errs...))
	}

	if status < 200 || status > 299 {
		apiErr := &APIError{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &errBody) == nil {
			apiErr.Code = errBody.Error
			if errBody.Message != "" {
				apiErr.Message = errBody.Message
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
