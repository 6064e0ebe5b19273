package service

import "github.com/lessongate/lessongate/internal/model"

// Display is the set of presentation tokens the rendering layer maps to
// actual icons, colors and badges.
type Display struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Badge bool   `json:"badge"`
}

// defaults per notification type.
var typeDisplay = map[model.NotificationType]Display{
	model.NotificationTypeQuizResult:  {Icon: "quiz", Color: "blue"},
	model.NotificationTypeAchievement: {Icon: "trophy", Color: "amber"},
	model.NotificationTypeReminder:    {Icon: "bell", Color: "teal"},
	model.NotificationTypeBroadcast:   {Icon: "megaphone", Color: "purple"},
	model.NotificationTypeOther:       {Icon: "info", Color: "gray"},
}

// iconColor recolors notifications whose data overrides the icon, so an
// access decision does not look like a generic broadcast.
var iconColor = map[string]string{
	"lock_open": "green",
	"lock":      "red",
}

// DisplayFor maps (type, priority, optional data icon override) to display
// tokens. Deterministic, no hidden state.
func DisplayFor(n model.Notification) Display {
	d, ok := typeDisplay[n.Type]
	if !ok {
		d = typeDisplay[model.NotificationTypeOther]
	}

	if n.Data != nil && n.Data.Icon != "" {
		d.Icon = n.Data.Icon
		if color, ok := iconColor[n.Data.Icon]; ok {
			d.Color = color
		}
	}

	d.Badge = n.Priority == model.NotificationPriorityHigh
	return d
}
