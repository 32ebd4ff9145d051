package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobmatch/internal/handlers"
	"jobmatch/internal/middleware"
	"jobmatch/internal/models"
	"jobmatch/internal/repositories"
	"jobmatch/internal/services"
	"jobmatch/internal/storage"
	"jobmatch/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "dev_secret_change_me")
	viper.SetDefault("DB_PATH", "jobmatch.db")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("API_LATENCY_MS", 0)
	viper.SetDefault("SEED_DEMO", false)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	latency := time.Duration(viper.GetInt("API_LATENCY_MS")) * time.Millisecond

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// --- Database and store ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	store, err := storage.NewGormStore(db)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// --- Optional RabbitMQ client ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewStoreUserRepository(store)
	cvRepo := repositories.NewStoreCVRepository(store)
	jobRepo := repositories.NewStoreJobRepository(store)

	// --- Services ---
	sessionManager := services.NewSessionManager(store, userRepo)
	authService := services.NewAuthService(userRepo, sessionManager, jwtSecret, latency)
	cvService := services.NewCVService(cvRepo, latency)
	var publisher services.JobEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	jobService := services.NewJobService(jobRepo, publisher, latency)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	cvHandler := handlers.NewCVHandler(cvService)
	jobHandler := handlers.NewJobHandler(jobService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")

	// Authentication routes (public)
	authHandler.RegisterRoutes(apiV1)

	// CV routes require a logged-in candidate; job routes a logged-in
	// employer. Each guard is mounted on its own path prefix so it only
	// sees requests for the routes it protects. A caller with the wrong
	// role is redirected to their own landing page instead of receiving 403.
	candidateRoutes := apiV1.Group("/cvs", middleware.AuthRequired(authService, models.RoleCandidate))
	cvHandler.RegisterRoutes(candidateRoutes)

	employerRoutes := apiV1.Group("/jobs", middleware.AuthRequired(authService, models.RoleEmployer))
	jobHandler.RegisterRoutes(employerRoutes)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if viper.GetBool("SEED_DEMO") {
		seedDemoData(authService, cvService, jobService, userRepo)
	}

	// --- Job events consumer ---
	if mqClient != nil {
		go func() {
			log.Info("Starting RabbitMQ consumer for job events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Infof("Received job event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeJobEvents(messageHandler); consumerErr != nil {
				log.Errorf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Infof("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
}

// openDatabase opens PostgreSQL when DATABASE_URL is set, otherwise the
// SQLite file at DB_PATH.
func openDatabase() (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	}
	if databaseURL := viper.GetString("DATABASE_URL"); databaseURL != "" {
		return gorm.Open(postgres.Open(databaseURL), config)
	}
	return gorm.Open(sqlite.Open(viper.GetString("DB_PATH")), config)
}

// seedDemoData registers one demo candidate and one demo employer with a
// sample CV and job posting. Safe to run repeatedly: existing demo emails are
// left alone.
func seedDemoData(authService *services.AuthService, cvService *services.CVService, jobService *services.JobService, userRepo repositories.UserRepository) {
	candidate, created := seedUser(authService, userRepo, services.RegisterRequest{
		Email:    "candidate@example.com",
		Password: "password123",
		Role:     models.RoleCandidate,
		FullName: "Demo Candidate",
	})
	if created {
		if _, err := cvService.Create(candidate.ID, models.CV{
			Title:   "Backend Developer",
			Summary: "Five years building web services.",
			Skills:  []string{"Go", "SQL", "Docker"},
			Experience: []models.CVExperience{
				{Company: "Acme Corp", Role: "Developer", Years: 3.5},
			},
		}); err != nil {
			log.Errorf("Failed to seed demo CV: %v", err)
		}
	}

	employer, created := seedUser(authService, userRepo, services.RegisterRequest{
		Email:       "employer@example.com",
		Password:    "password123",
		Role:        models.RoleEmployer,
		CompanyName: "Demo Company",
	})
	if created {
		salaryMin, salaryMax := 60000.0, 90000.0
		if _, err := jobService.Create(employer.ID, models.Job{
			Title:          "Backend Developer",
			Description:    "Build and run our job board services.",
			Skills:         []string{"Go", "PostgreSQL"},
			SalaryMin:      &salaryMin,
			SalaryMax:      &salaryMax,
			Location:       "Remote",
			EmploymentType: models.EmploymentFullTime,
		}); err != nil {
			log.Errorf("Failed to seed demo job: %v", err)
		}
	}

	// Seeding registers both accounts, so the last one holds the session.
	// Clear it so the demo starts logged out.
	if err := authService.Logout(); err != nil {
		log.Errorf("Failed to clear session after seeding: %v", err)
	}
}

func seedUser(authService *services.AuthService, userRepo repositories.UserRepository, req services.RegisterRequest) (*models.User, bool) {
	if existing, err := userRepo.GetByEmail(req.Email); err == nil {
		return existing, false
	}
	user, err := authService.Register(req)
	if err != nil {
		log.Errorf("Failed to seed user %s: %v", req.Email, err)
		return nil, false
	}
	log.Infof("Seeded demo user %s (ID: %s)", user.Email, user.ID)
	return user, true
}
