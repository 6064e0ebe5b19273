package controller

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lessongate/lessongate/internal/cover"
	"github.com/lessongate/lessongate/internal/model"
	"github.com/lessongate/lessongate/internal/service"
	"go.uber.org/zap"
)

// handleCatalog returns the session's assembled subject/lesson/video view.
// Touching the endpoint ensures a live session, which also arms the refresh
// scheduler for this user.
func (s *Server) handleCatalog(c *fiber.Ctx) error {
	sess := s.sessions.GetOrCreate(currentUserID(c))

	return c.JSON(fiber.Map{
		"subjects": sess.Catalog(),
	})
}

type submitRequestBody struct {
	Message string `json:"message"`
}

// handleSubmitRequest runs the request workflow for one locked lesson. The
// optimistic pending update is applied only after the insert succeeded; on
// failure the lesson's visible state is untouched.
func (s *Server) handleSubmitRequest(c *fiber.Ctx) error {
	lessonID := c.Params("id")
	userID := currentUserID(c)

	// The message is optional; an empty body is a request without one.
	var body submitRequestBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	request, err := s.requests.Submit(c.Context(), userID, lessonID, body.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lesson not found",
			})
		case errors.Is(err, service.ErrAlreadyGranted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Access already granted",
			})
		case errors.Is(err, service.ErrRequestPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Request already pending",
			})
		default:
			s.logger.Error("Failed to submit access request",
				zap.String("lesson_id", lessonID),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to submit request",
			})
		}
	}

	if sess := s.sessions.Get(userID); sess != nil {
		sess.NoteRequestSubmitted(lessonID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Request submitted",
		"request": request,
	})
}

type notificationView struct {
	model.Notification
	Display service.Display `json:"display"`
}

func (s *Server) handleNotifications(c *fiber.Ctx) error {
	notifications, err := s.notifications.ListForUser(c.Context(), currentUserID(c))
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list notifications",
		})
	}

	views := make([]notificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, notificationView{
			Notification: n,
			Display:      service.DisplayFor(n),
		})
	}

	return c.JSON(fiber.Map{
		"notifications": views,
		"unread_count":  service.UnreadCount(notifications),
	})
}

func (s *Server) handleMarkRead(c *fiber.Ctx) error {
	if err := s.notifications.MarkRead(c.Context(), c.Params("id")); err != nil {
		s.logger.Error("Failed to mark notification read",
			zap.String("notification_id", c.Params("id")),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark notification read",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type visibilityBody struct {
	Visible bool `json:"visible"`
}

// handleVisibility forwards the client's page-visibility changes; the
// scheduler suppresses polling while hidden and refreshes on regain.
func (s *Server) handleVisibility(c *fiber.Ctx) error {
	var body visibilityBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	s.sessions.GetOrCreate(currentUserID(c)).SetVisible(body.Visible)
	return c.SendStatus(fiber.StatusNoContent)
}

// handleSignOut tears down the user's session. The token itself is discarded
// client-side; nothing is stored server-side for it.
func (s *Server) handleSignOut(c *fiber.Ctx) error {
	s.sessions.Close(currentUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handlePendingRequests(c *fiber.Ctx) error {
	requests, err := s.requests.Pending(c.Context())
	if err != nil {
		s.logger.Error("Failed to list pending requests", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list pending requests",
		})
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

type decisionBody struct {
	Response string `json:"response"`
}

func (s *Server) handleApprove(c *fiber.Ctx) error {
	return s.handleDecision(c, s.requests.Approve, "Request approved")
}

func (s *Server) handleReject(c *fiber.Ctx) error {
	return s.handleDecision(c, s.requests.Reject, "Request rejected")
}

func (s *Server) handleDecision(c *fiber.Ctx, decide func(ctx context.Context, requestID, response string) error, message string) error {
	requestID := c.Params("id")

	var body decisionBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	if err := decide(c.Context(), requestID, body.Response); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Request not found",
			})
		case errors.Is(err, service.ErrNotPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Request already decided",
			})
		default:
			s.logger.Error("Failed to decide access request",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to decide request",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}

// handleSubjectCover serves the subject's uploaded image when present, and a
// rendered default cover otherwise.
func (s *Server) handleSubjectCover(c *fiber.Ctx) error {
	subject, err := s.subjects.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		s.logger.Error("Failed to load subject for cover", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load subject",
		})
	}
	if subject == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subject not found",
		})
	}

	if subject.ImageURL != nil && *subject.ImageURL != "" {
		return c.Redirect(*subject.ImageURL, fiber.StatusFound)
	}

	png, err := cover.Render(subject.Name, subject.Color)
	if err != nil {
		s.logger.Error("Failed to render cover",
			zap.String("subject_id", subject.ID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render cover",
		})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
