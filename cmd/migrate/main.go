// Command migrate moves feedback written by earlier schema revisions into the
// feedback collection. It is safe to run more than once.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/developia-II/candidate-tracker-backend/internal/config"
	"github.com/developia-II/candidate-tracker-backend/internal/database"
	"github.com/developia-II/candidate-tracker-backend/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Log.WithError(err).Fatal("Invalid configuration")
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	rating := flag.Int("rating", cfg.LegacyFeedbackRating, "rating given to migrated feedback without one (1-5)")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall migration timeout")
	flag.Parse()

	res, err := run(cfg, *rating, *timeout)
	if err != nil {
		utils.Log.WithError(err).Fatal("Migration failed")
	}

	utils.Log.WithFields(logrus.Fields{
		"candidates": res.Candidates,
		"feedback":   res.Feedback,
		"backfilled": res.Backfilled,
		"referenced": res.Referenced,
	}).Info("Migration complete")
}

func run(cfg *config.Config, rating int, timeout time.Duration) (database.MigrationResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return database.MigrationResult{}, fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			utils.Log.WithError(err).Warn("Disconnect failed")
		}
	}()

	if err := database.EnsureIndexes(ctx, db.DB); err != nil {
		return database.MigrationResult{}, fmt.Errorf("create indexes: %w", err)
	}

	return database.MigrateLegacyFeedback(ctx, db.DB, rating, utils.Log)
}
