package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lessongate/lessongate/internal/model"
	"github.com/lessongate/lessongate/internal/signal"
	"go.uber.org/zap"
)

type RequestStore interface {
	Create(ctx context.Context, req *model.AccessRequest) error
	GetByID(ctx context.Context, id string) (*model.AccessRequest, error)
	GetPending(ctx context.Context) ([]*model.AccessRequest, error)
	HasPending(ctx context.Context, userID, lessonID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus, response string) error
}

type GrantStore interface {
	HasAccess(ctx context.Context, userID, lessonID string) (bool, error)
	Grant(ctx context.Context, userID, lessonID, grantType string) error
}

type LessonStore interface {
	GetByID(ctx context.Context, id string) (*model.Lesson, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Pusher delivers a decision message to an out-of-band channel, e.g. a linked
// Telegram chat.
type Pusher interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// RequestService owns the access-request workflow: submission by the user,
// approval/rejection by an admin, and the fan-out a decision causes
// (grant, in-app notification, access-change signal, optional push).
type RequestService struct {
	requests      RequestStore
	grants        GrantStore
	lessons       LessonStore
	notifications NotificationStore
	users         UserStore
	bus           *signal.Bus
	pusher        Pusher // nil when no push channel is configured
	logger        *zap.Logger
}

func NewRequestService(
	requests RequestStore,
	grants GrantStore,
	lessons LessonStore,
	notifications NotificationStore,
	users UserStore,
	bus *signal.Bus,
	pusher Pusher,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests:      requests,
		grants:        grants,
		lessons:       lessons,
		notifications: notifications,
		users:         users,
		bus:           bus,
		pusher:        pusher,
		logger:        logger,
	}
}

// Submit creates a pending request for a locked lesson. A lesson the user
// already unlocked or already has a pending request for is rejected; a
// rejected lesson may be requested again.
func (s *RequestService) Submit(ctx context.Context, userID, lessonID, message string) (*model.AccessRequest, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return nil, ErrNotFound
	}

	hasAccess, err := s.grants.HasAccess(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("check access: %w", err)
	}
	if hasAccess {
		return nil, ErrAlreadyGranted
	}

	hasPending, err := s.requests.HasPending(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("check pending request: %w", err)
	}
	if hasPending {
		return nil, ErrRequestPending
	}

	request := &model.AccessRequest{
		ID:        uuid.NewString(),
		UserID:    userID,
		LessonID:  lessonID,
		SubjectID: lesson.SubjectID,
		Message:   message,
		Status:    model.RequestStatusPending,
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.logger.Info("Access request created",
		zap.String("user_id", userID),
		zap.String("lesson_id", lessonID),
		zap.String("request_id", request.ID),
	)

	return request, nil
}

// Pending returns all pending requests for the admin review screen.
func (s *RequestService) Pending(ctx context.Context) ([]*model.AccessRequest, error) {
	requests, err := s.requests.GetPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("get pending requests: %w", err)
	}
	return requests, nil
}

// Approve transitions a pending request to approved, grants access and
// notifies the requester.
func (s *RequestService) Approve(ctx context.Context, requestID, response string) error {
	request, err := s.loadPending(ctx, requestID)
	if err != nil {
		return err
	}

	if err := s.requests.UpdateStatus(ctx, requestID, model.RequestStatusApproved, response); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}

	if err := s.grants.Grant(ctx, request.UserID, request.LessonID, model.GrantTypeApproved); err != nil {
		return fmt.Errorf("grant access: %w", err)
	}

	s.logger.Info("Access request approved",
		zap.String("request_id", requestID),
		zap.String("user_id", request.UserID),
		zap.String("lesson_id", request.LessonID),
	)

	s.notifyDecision(ctx, request, true)
	s.bus.Publish(signal.AccessChanged{UserID: request.UserID, LessonID: request.LessonID})

	return nil
}

// Reject transitions a pending request to rejected and notifies the
// requester. The user may submit a new request afterwards.
func (s *RequestService) Reject(ctx context.Context, requestID, response string) error {
	request, err := s.loadPending(ctx, requestID)
	if err != nil {
		return err
	}

	if err := s.requests.UpdateStatus(ctx, requestID, model.RequestStatusRejected, response); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}

	s.logger.Info("Access request rejected",
		zap.String("request_id", requestID),
		zap.String("user_id", request.UserID),
		zap.String("lesson_id", request.LessonID),
	)

	s.notifyDecision(ctx, request, false)
	s.bus.Publish(signal.AccessChanged{UserID: request.UserID, LessonID: request.LessonID})

	return nil
}

func (s *RequestService) loadPending(ctx context.Context, requestID string) (*model.AccessRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if request == nil {
		return nil, ErrNotFound
	}
	if !request.IsPending() {
		return nil, ErrNotPending
	}
	return request, nil
}

// notifyDecision writes the in-app notification and pushes to the user's
// linked chat when one exists. Notification failures are logged, never
// propagated: the decision itself already happened.
func (s *RequestService) notifyDecision(ctx context.Context, request *model.AccessRequest, approved bool) {
	lesson, err := s.lessons.GetByID(ctx, request.LessonID)
	if err != nil || lesson == nil {
		s.logger.Error("Failed to load lesson for decision notification",
			zap.String("lesson_id", request.LessonID),
			zap.Error(err),
		)
		return
	}

	title := "Access request rejected"
	message := fmt.Sprintf("Your request for lesson %q was rejected.", lesson.Title)
	icon := "lock"
	if approved {
		title = "Lesson unlocked"
		message = fmt.Sprintf("Your request for lesson %q was approved.", lesson.Title)
		icon = "lock_open"
	}

	notification := &model.Notification{
		ID:       uuid.NewString(),
		UserID:   request.UserID,
		Type:     model.NotificationTypeBroadcast,
		Priority: model.NotificationPriorityHigh,
		Title:    title,
		Message:  message,
		Data: &model.NotificationData{
			Icon:     icon,
			LessonID: request.LessonID,
		},
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Error("Failed to create decision notification",
			zap.String("request_id", request.ID),
			zap.Error(err),
		)
	}

	if s.pusher == nil {
		return
	}

	user, err := s.users.GetByID(ctx, request.UserID)
	if err != nil || user == nil || user.TelegramChatID == nil {
		return
	}

	if err := s.pusher.Send(ctx, *user.TelegramChatID, title+". "+message); err != nil {
		s.logger.Error("Failed to push decision message",
			zap.String("user_id", request.UserID),
			zap.Error(err),
		)
	}
}
