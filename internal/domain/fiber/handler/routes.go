package handler

import (
	"time"

	"github.com/fadilmartias/resume-matcher/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth           *AuthHandler
	Resume         *ResumeHandler
	Job            *JobHandler
	Recommendation *RecommendationHandler
	Tokens         middleware.TokenValidator
	UploadsPerMin  int
}

func (h Handlers) RegisterRoutes(app *fiber.App) {
	app.Post("/register", h.Auth.Register)
	app.Post("/login", h.Auth.Login)

	auth := middleware.RequireAuth(h.Tokens)
	uploads := h.UploadsPerMin
	if uploads <= 0 {
		uploads = 10
	}

	app.Post("/resumes", auth, middleware.UploadRateLimiter(uploads, time.Minute), h.Resume.Upload)
	app.Get("/resumes", auth, h.Resume.List)
	app.Get("/resumes/:id", auth, h.Resume.Get)

	app.Post("/jobs/refresh", auth, middleware.RequireAdmin(), h.Job.Refresh)
	app.Get("/jobs", auth, h.Job.List)

	app.Get("/recommendations", auth, h.Recommendation.Recommend)
}
