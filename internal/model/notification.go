package model

import "time"

type NotificationType string

const (
	NotificationTypeQuizResult  NotificationType = "quiz_result"
	NotificationTypeAchievement NotificationType = "achievement"
	NotificationTypeReminder    NotificationType = "reminder"
	NotificationTypeBroadcast   NotificationType = "broadcast"
	NotificationTypeOther       NotificationType = "other"
)

type NotificationPriority string

const (
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNone   NotificationPriority = "none"
)

// NotificationData is the optional structured payload. Icon, when set,
// overrides the default type-based icon (access decisions use it to stand out
// from generic broadcasts).
type NotificationData struct {
	Icon     string `json:"icon,omitempty"`
	LessonID string `json:"lesson_id,omitempty"`
}

type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Type      NotificationType     `json:"type"`
	Priority  NotificationPriority `json:"priority"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Data      *NotificationData    `json:"data"`
	Read      bool                 `json:"read"`
	CreatedAt time.Time            `json:"created_at"`
}
