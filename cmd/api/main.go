package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/notify"
	"go-jobboard-backend/internal/repository/mongodb"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/email"
	"go-jobboard-backend/pkg/logger"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	// 3. Setup Database
	client, err := database.NewMongoConnection(cfg.MongoURI)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.MongoDatabase)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			cancel()
			logger.Log.Error("Failed to create indexes", "error", err)
			os.Exit(1)
		}
		cancel()
	}

	// 4. Setup Repositories
	userRepo := mongodb.NewUserRepository(db)
	personalDataRepo := mongodb.NewPersonalDataRepository(client, db)
	skillsRepo := mongodb.NewSkillsRepository(client, db)
	recruiterDataRepo := mongodb.NewRecruiterDataRepository(client, db)
	educationRepo := mongodb.NewEducationRepository(client, db)
	employmentRepo := mongodb.NewEmploymentRepository(client, db)
	jobRepo := mongodb.NewJobRepository(client, db)

	// 5. Setup Notifications
	var notifier notify.Notifier = notify.NewNoop()
	sender := email.NewSender(cfg)
	if sender.IsConfigured() {
		notifier = notify.NewEmailNotifier(sender, cfg.AppBaseURL)
	} else {
		logger.Log.Warn("SMTP not fully configured - email notifications disabled")
	}

	// 6. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, notifier, cfg.JWTSecret, cfg.JWTExpiry)
	profileUC := usecase.NewProfileUsecase(userRepo, personalDataRepo, skillsRepo, educationRepo, employmentRepo, cfg.SkillsDelimiter, cfg.ListDelimiter)
	recruiterUC := usecase.NewRecruiterUsecase(userRepo, recruiterDataRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, userRepo, notifier, cfg.ListDelimiter)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		ProfileUC:   profileUC,
		RecruiterUC: recruiterUC,
		JobUC:       jobUC,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
