package entity

import "github.com/google/uuid"

type Film struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	AgeRating       string    `json:"ageRating"`
	Poster          Poster    `json:"poster"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// Poster is the media reference attached to a film. The poster ID is the
// key for the image cache and the /media endpoint.
type Poster struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	MediaType   string `json:"mediaType"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}
