package service

import (
	"testing"

	"github.com/lessongate/lessongate/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDisplayFor(t *testing.T) {
	tests := []struct {
		name string
		in   model.Notification
		want Display
	}{
		{
			name: "quiz result",
			in:   model.Notification{Type: model.NotificationTypeQuizResult},
			want: Display{Icon: "quiz", Color: "blue"},
		},
		{
			name: "achievement",
			in:   model.Notification{Type: model.NotificationTypeAchievement},
			want: Display{Icon: "trophy", Color: "amber"},
		},
		{
			name: "reminder",
			in:   model.Notification{Type: model.NotificationTypeReminder},
			want: Display{Icon: "bell", Color: "teal"},
		},
		{
			name: "broadcast",
			in:   model.Notification{Type: model.NotificationTypeBroadcast},
			want: Display{Icon: "megaphone", Color: "purple"},
		},
		{
			name: "other",
			in:   model.Notification{Type: model.NotificationTypeOther},
			want: Display{Icon: "info", Color: "gray"},
		},
		{
			name: "unknown type falls back to other",
			in:   model.Notification{Type: "surprise"},
			want: Display{Icon: "info", Color: "gray"},
		},
		{
			name: "high priority sets badge",
			in:   model.Notification{Type: model.NotificationTypeReminder, Priority: model.NotificationPriorityHigh},
			want: Display{Icon: "bell", Color: "teal", Badge: true},
		},
		{
			name: "medium priority has no badge",
			in:   model.Notification{Type: model.NotificationTypeReminder, Priority: model.NotificationPriorityMedium},
			want: Display{Icon: "bell", Color: "teal"},
		},
		{
			name: "unlock decision overrides icon and color",
			in: model.Notification{
				Type:     model.NotificationTypeBroadcast,
				Priority: model.NotificationPriorityHigh,
				Data:     &model.NotificationData{Icon: "lock_open"},
			},
			want: Display{Icon: "lock_open", Color: "green", Badge: true},
		},
		{
			name: "rejection decision overrides icon and color",
			in: model.Notification{
				Type:     model.NotificationTypeBroadcast,
				Priority: model.NotificationPriorityHigh,
				Data:     &model.NotificationData{Icon: "lock"},
			},
			want: Display{Icon: "lock", Color: "red", Badge: true},
		},
		{
			name: "custom icon keeps type color",
			in: model.Notification{
				Type: model.NotificationTypeReminder,
				Data: &model.NotificationData{Icon: "calendar"},
			},
			want: Display{Icon: "calendar", Color: "teal"},
		},
		{
			name: "empty data icon is ignored",
			in: model.Notification{
				Type: model.NotificationTypeBroadcast,
				Data: &model.NotificationData{LessonID: "l1"},
			},
			want: Display{Icon: "megaphone", Color: "purple"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayFor(tt.in))
		})
	}
}
