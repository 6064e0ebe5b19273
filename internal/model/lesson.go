package model

import "time"

// Lesson is the persisted lesson record. Per-user access annotations live on
// the assembled catalog view, never here.
type Lesson struct {
	ID           string    `json:"id"`
	SubjectID    string    `json:"subject_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}
