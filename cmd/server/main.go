package main

import (
	"log"

	"github.com/AidanBoudreau/TimeLink/internal/auth"
	"github.com/AidanBoudreau/TimeLink/internal/config"
	"github.com/AidanBoudreau/TimeLink/internal/database"
	"github.com/AidanBoudreau/TimeLink/internal/handlers"
	"github.com/AidanBoudreau/TimeLink/internal/middleware"
	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/AidanBoudreau/TimeLink/internal/repository"
	"github.com/AidanBoudreau/TimeLink/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default users and jobs
	if cfg.SeedDefaultUsers {
		if err := database.Seed(database.GetDB()); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Token service
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)
	jobRepo := repository.NewJobRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	timesheetService := services.NewTimesheetService(entryRepo, jobRepo)
	jobService := services.NewJobService(jobRepo)
	reportService := services.NewReportService(reportRepo, entryRepo)
	userService := services.NewUserService(userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	timesheetHandler := handlers.NewTimesheetHandler(timesheetService)
	jobHandler := handlers.NewJobHandler(jobService)
	reportHandler := handlers.NewReportHandler(reportService)
	userHandler := handlers.NewUserHandler(userService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TimeLink API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
			authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
		}

		// Employee routes (any authenticated active user, own data only)
		employee := api.Group("/employee")
		employee.Use(middleware.RequireAuth(tokens))
		{
			employee.GET("/dashboard", timesheetHandler.Dashboard)
			employee.POST("/clock-in", timesheetHandler.ClockIn)
			employee.POST("/clock-out", timesheetHandler.ClockOut)
			employee.POST("/breaks/start", timesheetHandler.StartBreak)
			employee.POST("/breaks/end", timesheetHandler.EndBreak)
			employee.POST("/task-entries", timesheetHandler.AddTaskEntry)
			employee.GET("/time-entries", timesheetHandler.ListMyEntries)
		}

		// Manager routes
		manager := api.Group("/manager")
		manager.Use(middleware.RequireAuth(tokens), middleware.RequireRole(models.RoleManager, models.RoleAdmin))
		{
			manager.GET("/dashboard", timesheetHandler.ManagerDashboard)
			manager.GET("/time-entries", timesheetHandler.ListAllEntries)
			manager.GET("/time-entries/:id", timesheetHandler.GetEntry)
			manager.PUT("/time-entries/:id", timesheetHandler.CorrectEntry)
			manager.DELETE("/time-entries/:id", timesheetHandler.DeleteEntry)
			manager.GET("/reports", reportHandler.ListReports)
			manager.GET("/reports/:id", reportHandler.GetReport)
			manager.POST("/reports", reportHandler.GenerateReport)
			manager.GET("/jobs", jobHandler.ListJobs)
			manager.GET("/jobs/:id", jobHandler.GetJob)
			manager.POST("/jobs", jobHandler.CreateJob)
			manager.PUT("/jobs/:id", jobHandler.UpdateJob)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(tokens), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/dashboard", userHandler.AdminDashboard)
			admin.GET("/users", userHandler.ListUsers)
			admin.POST("/users", userHandler.CreateUser)
			admin.PUT("/users/:id", userHandler.UpdateUser)
			admin.DELETE("/users/:id", userHandler.DeactivateUser)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
