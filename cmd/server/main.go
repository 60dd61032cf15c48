package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"fitbysuarez/coaching/internal/api"
	"fitbysuarez/coaching/internal/calendar"
	"fitbysuarez/coaching/internal/config"
	"fitbysuarez/coaching/internal/email"
	"fitbysuarez/coaching/internal/repository/mongo"
	"fitbysuarez/coaching/internal/service"
	"fitbysuarez/coaching/internal/storage"
)

// @title Coaching API
// @version 1.0
// @description API for managing coaching clients, program templates, the
// @description exercise library and per-date workouts.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Coaching Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureLibraryIndexes(ctx, appDB.Collection("library"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("programs"))
		mongo.EnsureClientWorkoutIndexes(ctx, appDB.Collection("client_workouts"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Email Sender ---
	var sender email.Sender
	if cfg.Email.APIKey != "" {
		sender = email.NewResendSender(cfg.Email.APIKey, cfg.Email.From)
		log.Println("Email sender initialized (Resend).")
	} else {
		sender = email.NewNoopSender()
		log.Println("No email API key configured; outbound mail is logged only.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	libraryRepo := mongo.NewMongoLibraryRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	workoutRepo := mongo.NewMongoClientWorkoutRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	clientService := service.NewClientService(userRepo, sender, cfg.Server.AppURL)
	programService := service.NewProgramService(programRepo)
	workoutService := service.NewWorkoutService(workoutRepo)
	libraryService := service.NewLibraryService(libraryRepo, fileStorage)

	resolver := calendar.NewResolver(userRepo, programRepo, workoutRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, clientService, programService, workoutService, libraryService, resolver)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
