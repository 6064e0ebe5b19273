// Package catalog assembles raw subject, lesson and video records into the
// nested view model the rendering layer consumes. Assembly is a pure function
// of its inputs; the per-user access annotations on lessons are transient view
// state and are never written back to the lesson records.
package catalog

import (
	"time"

	"github.com/lessongate/lessongate/internal/model"
)

// Subject is a read-only catalog node, rebuilt on every assembly.
type Subject struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	ImageURL    *string `json:"image_url"`
	LessonCount int     `json:"lesson_count"`
	Lessons     []Lesson `json:"lessons"`
}

// Lesson carries the per-user access annotation. HasAccess wins over
// RequestStatus: an unlocked lesson is unlocked no matter what the request
// map says.
type Lesson struct {
	ID            string              `json:"id"`
	SubjectID     string              `json:"subject_id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	ThumbnailURL  *string             `json:"thumbnail_url"`
	VideoCount    int                 `json:"video_count"`
	HasAccess     bool                `json:"has_access"`
	RequestStatus model.RequestStatus `json:"request_status"`
	Videos        []Video             `json:"videos"`
}

type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	SourceURL    string    `json:"source_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Duration     int       `json:"duration"`
	Position     int       `json:"position"` // resolved ordinal, missing source positions filled from fetch order
	CreatedAt    time.Time `json:"created_at"`
}
