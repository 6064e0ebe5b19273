// Package controller exposes the assembled view models and workflow
// callbacks to the rendering layer over HTTP. It holds no domain logic: every
// handler delegates to a session or a service.
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lessongate/lessongate/internal/config"
	"github.com/lessongate/lessongate/internal/repository"
	"github.com/lessongate/lessongate/internal/service"
	"github.com/lessongate/lessongate/internal/session"
	"go.uber.org/zap"
)

type Server struct {
	app           *fiber.App
	cfg           *config.Config
	sessions      *session.Registry
	requests      *service.RequestService
	notifications *service.NotificationService
	subjects      *repository.SubjectRepository
	users         *repository.UserRepository
	logger        *zap.Logger
}

func NewServer(
	cfg *config.Config,
	sessions *session.Registry,
	requests *service.RequestService,
	notifications *service.NotificationService,
	subjects *repository.SubjectRepository,
	users *repository.UserRepository,
	logger *zap.Logger,
) *Server {
	s := &Server{
		app:           fiber.New(fiber.Config{DisableStartupMessage: true}),
		cfg:           cfg,
		sessions:      sessions,
		requests:      requests,
		notifications: notifications,
		subjects:      subjects,
		users:         users,
		logger:        logger,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Use(RequestLogger(s.logger))

	api := s.app.Group("/api")

	// Covers are public assets.
	api.Get("/subjects/:id/cover.png", s.handleSubjectCover)

	authed := api.Group("", AuthRequired(s.cfg.JWTSecret))
	authed.Get("/catalog", s.handleCatalog)
	authed.Post("/lessons/:id/request", s.handleSubmitRequest)
	authed.Get("/notifications", s.handleNotifications)
	authed.Post("/notifications/:id/read", s.handleMarkRead)
	authed.Post("/session/visibility", s.handleVisibility)
	authed.Post("/auth/signout", s.handleSignOut)

	admin := authed.Group("/admin", s.adminRequired)
	admin.Get("/requests", s.handlePendingRequests)
	admin.Post("/requests/:id/approve", s.handleApprove)
	admin.Post("/requests/:id/reject", s.handleReject)
}

// adminRequired gates the decision endpoints: decisions are the server-side
// actor of the request lifecycle, never the requesting client.
func (s *Server) adminRequired(c *fiber.Ctx) error {
	user, err := s.users.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		s.logger.Error("Failed to load user for admin check", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal error",
		})
	}

	if user == nil || !user.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden - Admin access required",
		})
	}

	return c.Next()
}

// Listen serves until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
