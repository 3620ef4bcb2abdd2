package entity

import "github.com/google/uuid"

type Review struct {
	ID        uuid.UUID `json:"id"`
	FilmID    uuid.UUID `json:"filmId"`
	ClientID  uuid.UUID `json:"clientId"`
	Rating    int       `json:"rating"` // 1-5
	Text      string    `json:"text"`
	CreatedAt string    `json:"createdAt"`
}
