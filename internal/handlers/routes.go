package handlers

import (
	"context"
	"strings"

	"github.com/developia-II/candidate-tracker-backend/internal/config"
	"github.com/developia-II/candidate-tracker-backend/internal/metrics"
	"github.com/developia-II/candidate-tracker-backend/internal/services"
	"github.com/developia-II/candidate-tracker-backend/internal/storage"
	"github.com/developia-II/candidate-tracker-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type Deps struct {
	Config     *config.Config
	Candidates *services.CandidateService
	Feedback   *services.FeedbackService
	Files      storage.FileStore
	Metrics    *metrics.Metrics
	// Ping reports database reachability for /healthz.
	Ping func(ctx context.Context) error
}

// multipart framing and the text fields ride on top of the resume itself
const formOverhead = 1 << 20

func NewApp(d Deps) *fiber.App {
	cfg := d.Config

	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		BodyLimit:             cfg.MaxResumeBytes + formOverhead,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
		Output: utils.Log.Writer(),
	}))
	origins := strings.Join(cfg.CORSOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
		// fiber refuses credentials together with a wildcard origin
		AllowCredentials: !strings.Contains(origins, "*"),
	}))
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
		app.Get("/metrics", d.Metrics.Handler())
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Backend server is running!")
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if d.Ping != nil {
			if err := d.Ping(c.UserContext()); err != nil {
				utils.Log.WithError(err).Warn("health check failed")
				return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database unavailable")
			}
		}
		return utils.MessageResponse(c, "ok")
	})

	if local, ok := d.Files.(*storage.LocalStore); ok {
		app.Static(storage.LocalURLPath, local.Dir(), fiber.Static{ByteRange: true})
	}

	api := app.Group("/api")
	if cfg.RateLimitMax > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
		}))
	}

	candidates := NewCandidateHandler(d.Candidates, cfg.MaxResumeBytes)
	api.Get("/candidates", candidates.GetCandidates)
	api.Post("/candidates", candidates.CreateCandidate)
	api.Get("/candidates/:id", candidates.GetCandidate)

	feedback := NewFeedbackHandler(d.Feedback)
	api.Post("/feedback/:candidateId", feedback.SubmitFeedback)
	api.Get("/feedback/:candidateId", feedback.GetFeedback)
	api.Delete("/feedback/:id", feedback.DeleteFeedback)

	return app
}
