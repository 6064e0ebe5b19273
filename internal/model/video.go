package model

import "time"

// Video belongs to a lesson. Position drives ordering within the lesson; it is
// optional and not assumed unique, missing values fall back to fetch order.
type Video struct {
	ID           string    `json:"id"`
	LessonID     string    `json:"lesson_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SourceURL    string    `json:"source_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Duration     int       `json:"duration"` // in seconds
	Position     *int      `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
}
