package service

import (
	"context"
	"fmt"

	"github.com/lessongate/lessongate/internal/model"
	"go.uber.org/zap"
)

type NotificationFeed interface {
	GetByUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// NotificationService derives the per-user notification view from already
// fetched records and exposes the single read-marking mutation.
type NotificationService struct {
	feed   NotificationFeed
	logger *zap.Logger
}

func NewNotificationService(feed NotificationFeed, logger *zap.Logger) *NotificationService {
	return &NotificationService{feed: feed, logger: logger}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	notifications, err := s.feed.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one notification read. The operation is idempotent: marking
// an already-read notification again succeeds and changes nothing.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.feed.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// FilterUser keeps only the given user's records. Pure.
func FilterUser(notifications []model.Notification, userID string) []model.Notification {
	out := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// Unread partitions out the unread records. Pure.
func Unread(notifications []model.Notification) []model.Notification {
	out := make([]model.Notification, 0, len(notifications))
	for _, n := range notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount returns the number of unread records. Pure.
func UnreadCount(notifications []model.Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
