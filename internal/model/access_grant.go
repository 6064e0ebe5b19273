package model

import "time"

// AccessGrant represents a user's unlocked lesson.
type AccessGrant struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LessonID  string    `json:"lesson_id"`
	GrantType string    `json:"grant_type"` // 'approved', 'manual'
	GrantedAt time.Time `json:"granted_at"`
}

// Grant type constants
const (
	GrantTypeApproved = "approved" // granted via an approved access request
	GrantTypeManual   = "manual"   // granted directly by an admin
)
