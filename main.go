package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/studenthustle/config"
	"github.com/example/studenthustle/modules/activity"
	"github.com/example/studenthustle/modules/api"
	"github.com/example/studenthustle/modules/application"
	"github.com/example/studenthustle/modules/auth"
	"github.com/example/studenthustle/modules/cache"
	"github.com/example/studenthustle/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== StudentHustle ===")

	cfg := config.Load()

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	taskModule := task.NewModule(cfg.Store)

	// The list cache must be attached before the task module starts.
	if cfg.Cache.Enabled() {
		cacheModule := cache.NewModule(cfg.Cache)
		taskModule.SetCache(cacheModule.GetCache())
		app.Register(cacheModule)
	}

	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule(cfg.Store, cfg.Auth))
	app.Register(taskModule)
	app.Register(application.NewModule(cfg.Store))
	app.Register(activity.NewModule(cfg.Activity.FeedSize))
	app.Register(api.NewModule(cfg.Server, cfg.Auth.RequireAuth))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("  Environment: %s", cfg.Server.Environment)
	log.Printf("  Store:       %s", cfg.Store.Driver)
	log.Printf("  List cache:  %t", cfg.Cache.Enabled())
	log.Printf("  Auth on writes: %t", cfg.Auth.RequireAuth)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.Server.Port)
	log.Println("")
	log.Println("  POST   /api/auth/register                - Register a new user")
	log.Println("  POST   /api/auth/login                   - Log in and get a token")
	log.Println("  GET    /api/tasks                        - List tasks, oldest first")
	log.Println("  POST   /api/tasks                        - Post a task")
	log.Println("  GET    /api/tasks/:taskId/applications   - List applications for a task")
	log.Println("  POST   /api/tasks/:taskId/applications   - Apply to a task")
	log.Println("  GET    /api/applications?applicantName=  - List applications, newest first")
	log.Println("  GET    /api/activity?limit=              - Recent marketplace activity")
	log.Println("  GET    /api/health                       - Health check")
	if cfg.Server.StaticDir != "" {
		log.Printf("  GET    /                                 - Static files from %s", cfg.Server.StaticDir)
	}
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
