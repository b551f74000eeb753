package api

import (
	domain "github.com/example/studenthustle/domain/user"
	"github.com/example/studenthustle/modules/activity"
	"github.com/example/studenthustle/modules/application"
	"github.com/example/studenthustle/modules/auth"
	"github.com/example/studenthustle/modules/task"
	"github.com/gofiber/fiber/v2"
)

const defaultActivityLimit = 20

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth         auth.AuthPort
	tasks        task.TaskPort
	applications application.ApplicationPort
	activity     activity.ActivityPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	authPort auth.AuthPort,
	taskPort task.TaskPort,
	applicationPort application.ApplicationPort,
	activityPort activity.ActivityPort,
) *Handlers {
	return &Handlers{
		auth:         authPort,
		tasks:        taskPort,
		applications: applicationPort,
		activity:     activityPort,
	}
}

// parseBody decodes the request body into out. An empty body leaves out
// untouched so that missing fields are reported by validation.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   codeValidation,
		Message: "Invalid request body",
	})
}

// Register handles POST /api/auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	session, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Failed to register user")
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Failed to log in")
	}

	return c.Status(fiber.StatusOK).JSON(session)
}

// ListTasks handles GET /api/tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListTasks(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to fetch tasks")
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

// CreateTask handles POST /api/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	// signed-in posters are credited by name when they leave createdBy blank
	if claims, ok := c.Locals(UserContextKey).(*domain.Claims); ok && req.CreatedBy == "" {
		req.CreatedBy = claims.Name
	}

	created, err := h.tasks.CreateTask(c.UserContext(), &task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Category:    req.Category,
		City:        req.City,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		return respondError(c, err, "Failed to create task")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// CreateApplication handles POST /api/tasks/:taskId/applications.
func (h *Handlers) CreateApplication(c *fiber.Ctx) error {
	var req CreateApplicationRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	created, err := h.applications.CreateApplication(c.UserContext(), &application.CreateApplicationRequest{
		TaskID:        c.Params("taskId"),
		ApplicantName: req.ApplicantName,
		Message:       req.Message,
		OfferBudget:   req.OfferBudget,
	})
	if err != nil {
		return respondError(c, err, "Failed to submit application")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListTaskApplications handles GET /api/tasks/:taskId/applications.
func (h *Handlers) ListTaskApplications(c *fiber.Ctx) error {
	apps, err := h.applications.ListForTask(c.UserContext(), c.Params("taskId"))
	if err != nil {
		return respondError(c, err, "Failed to fetch applications")
	}
	return c.Status(fiber.StatusOK).JSON(apps)
}

// ListApplications handles GET /api/applications.
func (h *Handlers) ListApplications(c *fiber.Ctx) error {
	apps, err := h.applications.ListApplications(c.UserContext(), c.Query("applicantName"))
	if err != nil {
		return respondError(c, err, "Failed to fetch applications")
	}
	return c.Status(fiber.StatusOK).JSON(apps)
}

// RecentActivity handles GET /api/activity.
func (h *Handlers) RecentActivity(c *fiber.Ctx) error {
	entries, err := h.activity.Recent(c.UserContext(), c.QueryInt("limit", defaultActivityLimit))
	if err != nil {
		return respondError(c, err, "Failed to fetch activity")
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}

// Health handles GET /api/health.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
