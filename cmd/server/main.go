package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/aoyama/task-dashboard/internal/auth"
	"github.com/aoyama/task-dashboard/internal/handlers"
	"github.com/aoyama/task-dashboard/internal/services"
	"github.com/aoyama/task-dashboard/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	var (
		taskStore store.TaskStore
		userStore store.UserStore
	)

	if projectID := os.Getenv("GOOGLE_CLOUD_PROJECT"); projectID != "" {
		fs, err := store.NewFirestoreStore(context.Background(), projectID)
		if err != nil {
			log.Fatalf("Failed to create Firestore store: %v", err)
		}
		defer fs.Close()
		taskStore, userStore = fs, fs
	} else {
		log.Println("GOOGLE_CLOUD_PROJECT not set, using in-memory store (data is not persisted)")
		ms := store.NewMemoryStore()
		taskStore, userStore = ms, ms
	}

	tokens := auth.NewManager(secret, auth.DefaultTokenTTL)

	taskHandler := handlers.NewTaskHandler(services.NewTaskService(taskStore))
	userHandler := handlers.NewUserHandler(services.NewProfileService(userStore))
	authHandler := handlers.NewAuthHandler(services.NewAccountService(userStore, tokens))

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	handlers.Register(e, tokens, authHandler, taskHandler, userHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
