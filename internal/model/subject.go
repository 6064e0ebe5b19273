package model

import "time"

type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`  // glyph name shown in the catalog
	Color       string    `json:"color"` // hex theme color, e.g. "#4F46E5"
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}
