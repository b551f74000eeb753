package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/studenthustle/config"
	"github.com/example/studenthustle/modules/activity"
	"github.com/example/studenthustle/modules/application"
	"github.com/example/studenthustle/modules/auth"
	"github.com/example/studenthustle/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app         *fiber.App
	serverCfg   config.ServerConfig
	requireAuth bool

	authPort        auth.AuthPort
	taskPort        task.TaskPort
	applicationPort application.ApplicationPort
	activityPort    activity.ActivityPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule. When requireAuth is set the write
// routes demand a bearer token.
func NewModule(serverCfg config.ServerConfig, requireAuth bool) *APIModule {
	return &APIModule{
		serverCfg:   serverCfg,
		requireAuth: requireAuth,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task", "application", "activity"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authPort = auth.NewAuthAdapter(container)
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	case "application":
		m.applicationPort = application.NewApplicationAdapter(container)
	case "activity":
		m.activityPort = activity.NewActivityAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	switch {
	case m.authPort == nil:
		return fmt.Errorf("auth dependency not set")
	case m.taskPort == nil:
		return fmt.Errorf("task dependency not set")
	case m.applicationPort == nil:
		return fmt.Errorf("application dependency not set")
	case m.activityPort == nil:
		return fmt.Errorf("activity dependency not set")
	}

	handlers := NewHandlers(m.authPort, m.taskPort, m.applicationPort, m.activityPort)
	m.app = newApp(handlers, m.authPort, m.serverCfg, m.requireAuth)

	addr := fmt.Sprintf(":%d", m.serverCfg.Port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s (require auth: %t)", addr, m.requireAuth)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port":         m.serverCfg.Port,
			"require_auth": m.requireAuth,
		},
	}
}

// newApp builds the Fiber application with middleware and routes.
func newApp(h *Handlers, authPort auth.AuthPort, cfg config.ServerConfig, requireAuth bool) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	api := app.Group("/api")
	api.Get("/health", h.Health)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)

	// Write routes stay public unless REQUIRE_AUTH is set.
	write := []fiber.Handler{}
	if requireAuth {
		write = append(write, AuthMiddleware(authPort))
	}

	api.Get("/tasks", h.ListTasks)
	api.Post("/tasks", append(write, h.CreateTask)...)
	api.Get("/tasks/:taskId/applications", h.ListTaskApplications)
	api.Post("/tasks/:taskId/applications", append(write, h.CreateApplication)...)
	api.Get("/applications", h.ListApplications)
	api.Get("/activity", h.RecentActivity)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	return app
}
