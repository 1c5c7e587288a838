package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/developia-II/candidate-tracker-backend/internal/config"
	"github.com/developia-II/candidate-tracker-backend/internal/database"
	"github.com/developia-II/candidate-tracker-backend/internal/handlers"
	"github.com/developia-II/candidate-tracker-backend/internal/metrics"
	"github.com/developia-II/candidate-tracker-backend/internal/services"
	"github.com/developia-II/candidate-tracker-backend/internal/storage"
	"github.com/developia-II/candidate-tracker-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Log.WithError(err).Fatal("Invalid configuration")
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := run(cfg, quit); err != nil {
		utils.Log.WithError(err).Fatal("Server stopped")
	}
	utils.Log.Info("Server exiting")
}

// run returns only after the database handle is released, so callers may exit
// straight away.
func run(cfg *config.Config, quit <-chan os.Signal) error {
	ctx := context.Background()

	// Database
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			utils.Log.WithError(err).Warn("Disconnect failed")
		}
	}()

	if err := database.EnsureIndexes(ctx, db.DB); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}

	// Resume storage
	files, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init file storage: %w", err)
	}

	m := metrics.New()
	candidateStore := database.NewCandidateStore(db.DB, cfg.RequestTimeout)
	feedbackStore := database.NewFeedbackStore(db.DB, cfg.RequestTimeout)

	app := handlers.NewApp(handlers.Deps{
		Config:     cfg,
		Candidates: services.NewCandidateService(candidateStore, files, m, utils.Log, cfg.MaxResumeBytes),
		Feedback:   services.NewFeedbackService(candidateStore, feedbackStore, m, utils.Log),
		Files:      files,
		Metrics:    m,
		Ping:       db.Ping,
	})

	utils.Log.WithFields(logrus.Fields{
		"port":    cfg.Port,
		"storage": files.Backend(),
	}).Info("Server starting")
	return serve(app, ":"+cfg.Port, quit)
}

// serve blocks until the listener fails or a shutdown signal arrives.
func serve(app *fiber.App, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-quit:
	}

	// Graceful shutdown
	utils.Log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		utils.Log.WithError(err).Error("Server forced to shutdown")
	}
	return nil
}
