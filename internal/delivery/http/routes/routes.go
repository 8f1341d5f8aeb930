package routes

import (
	"log"

	"resume-match/internal/config"
	"resume-match/internal/database"
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/repository"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the shared infrastructure the route tree needs.
type Deps struct {
	Config    config.Config
	DB        database.DB
	Reasoner  usecase.ReasoningService
	Extractor usecase.ResumeExtractor
	Locker    usecase.MatchLocker
	Logger    *log.Logger
	UploadDir string
}

func Register(app *fiber.App, d Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(d.DB).RegisterRoutes(app)

	api := app.Group("/api")
	registerV1(api.Group("/v1"), d)
}

func registerV1(r fiber.Router, d Deps) {
	jwtSvc := jwt.NewHMACService(
		d.Config.JWT.AccessSecret,
		d.Config.JWT.RefreshSecret,
		d.Config.JWT.AccessExpiresIn,
		d.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(d.DB)
	resumeRepo := repository.NewPostgresResumeRepository(d.DB)
	jobRepo := repository.NewPostgresJobRepository(d.DB)
	matchRepo := repository.NewPostgresMatchRepository(d.DB)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, d.Extractor, d.Logger)
	matchUC := usecase.NewMatchUsecase(resumeRepo, jobRepo, matchRepo, d.Reasoner, d.Locker, d.Logger)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(authUC).RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	resumeGroup := protected.Group("/resumes")
	handler.NewResumeHandler(resumeUC, d.UploadDir).RegisterRoutes(resumeGroup)

	matchGroup := protected.Group("/matches")
	handler.NewMatchHandler(matchUC).RegisterRoutes(matchGroup)
}
