package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amdc-hr/interview-intake/internal/config"
	"github.com/amdc-hr/interview-intake/internal/database"
	"github.com/amdc-hr/interview-intake/internal/handler"
	"github.com/amdc-hr/interview-intake/internal/middleware"
	"github.com/amdc-hr/interview-intake/internal/models"
	"github.com/amdc-hr/interview-intake/internal/repository"
	"github.com/amdc-hr/interview-intake/internal/router"
	"github.com/amdc-hr/interview-intake/internal/service"
	"github.com/amdc-hr/interview-intake/internal/session"
	"github.com/amdc-hr/interview-intake/pkg/localdisk"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Candidate{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	storage, err := localdisk.New(cfg.UploadRoot, logger)
	if err != nil {
		log.Fatalf("failed to initialise upload storage: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)

	candidateRepo := repository.NewCandidateRepository(db)
	sink := service.NewAttachmentSink(storage, cfg.AllowedExtensions, cfg.MaxUploadMB, logger)
	intakeService := service.NewIntakeService(candidateRepo, sink, redisClient, validate, cfg.DedupeTTL, logger)
	quizService := service.NewQuizService(candidateRepo, service.DefaultAnswerKey(), logger)

	intakeHandler := handler.NewIntakeHandler(intakeService, sessions, logger)
	quizHandler := handler.NewQuizHandler(quizService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app)
	router.Register(app, cfg, router.Dependencies{
		IntakeHandler:     intakeHandler,
		QuizHandler:       quizHandler,
		SessionMiddleware: middleware.CandidateSession(sessions),
		SubmitLimiter:     middleware.RateLimit("submit_details", cfg.SubmitRateMax, cfg.SubmitRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
