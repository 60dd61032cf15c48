package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitbysuarez/coaching/internal/calendar"
	"fitbysuarez/coaching/internal/domain"
	"fitbysuarez/coaching/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	clientService service.ClientService,
	programService service.ProgramService,
	workoutService service.WorkoutService,
	libraryService service.LibraryService,
	resolver *calendar.Resolver,
) {

	authHandler := NewAuthHandler(authService)
	clientHandler := NewClientHandler(clientService, resolver)
	programHandler := NewProgramHandler(programService)
	workoutHandler := NewWorkoutHandler(workoutService)
	libraryHandler := NewLibraryHandler(libraryService)

	authMiddleware := AuthMiddleware(jwtSecret)
	trainerOnly := RoleMiddleware(domain.RoleTrainer)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		protected.POST("/auth/password", authHandler.UpdatePassword)

		// --- Client Routes ---
		clientGroup := protected.Group("/clients")
		{
			clientGroup.POST("", trainerOnly, clientHandler.CreateClient)
			clientGroup.GET("", trainerOnly, clientHandler.ListClients)
			clientGroup.GET("/:id", trainerOnly, clientHandler.GetClient)
			clientGroup.PATCH("/:id", trainerOnly, clientHandler.UpdateClient)
			clientGroup.DELETE("/:id", trainerOnly, clientHandler.DeleteClient)

			// Resolved calendar: trainers see any client, clients only themselves.
			clientGroup.GET("/:id/calendar", clientHandler.GetCalendar)

			// Per-date workout overrides.
			clientGroup.GET("/:id/workouts", trainerOnly, workoutHandler.ListWorkouts)
			clientGroup.PUT("/:id/workouts/:date", trainerOnly, workoutHandler.UpsertWorkout)
			clientGroup.GET("/:id/workouts/:date", trainerOnly, workoutHandler.GetWorkout)
			clientGroup.DELETE("/:id/workouts/:date", trainerOnly, workoutHandler.DeleteWorkout)
		}

		// --- Payments ---
		protected.GET("/payments", trainerOnly, clientHandler.GetPayments)
		protected.POST("/clients/:id/payment-reminder", trainerOnly, clientHandler.SendPaymentReminder)

		// --- Program Routes ---
		programGroup := protected.Group("/programs")
		programGroup.Use(trainerOnly)
		{
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.GET("/:id", programHandler.GetProgram)
			programGroup.PUT("/:id", programHandler.ReplaceProgram)
			programGroup.DELETE("/:id", programHandler.DeleteProgram)
			programGroup.POST("/:id/weeks", programHandler.AddWeek)
			programGroup.PUT("/:id/days", programHandler.SetDay)
		}

		// --- Library Routes ---
		libraryGroup := protected.Group("/library")
		{
			// Both roles can browse; only trainers mutate.
			libraryGroup.GET("", libraryHandler.Search)
			libraryGroup.POST("", trainerOnly, libraryHandler.Upsert)
			libraryGroup.POST("/:id/video-upload-url", trainerOnly, libraryHandler.GenerateVideoUploadURL)
			libraryGroup.POST("/:id/video-upload-confirm", trainerOnly, libraryHandler.ConfirmVideoUpload)
		}
	}
}
