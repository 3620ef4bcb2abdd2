package entity

import "github.com/google/uuid"

// Ticket is the only entity this client originates. It is created once at
// purchase completion and immutable afterwards. TotalCents is fixed at
// purchase time and never recomputed, even if pricing changes later.
type Ticket struct {
	ID         string    `json:"id"`
	FilmID     uuid.UUID `json:"filmId"`
	FilmTitle  string    `json:"filmTitle"`
	PosterID   string    `json:"posterId"`
	SessionID  uuid.UUID `json:"sessionId"`
	HallName   string    `json:"hallName"`
	HallNumber int       `json:"hallNumber"`
	StartAt    string    `json:"startAtISO"`
	Seats      []string  `json:"seats"`
	TotalCents int       `json:"totalCents"`
	MaskedCard string    `json:"maskedCard"` // last 4 digits only
	CardExpiry string    `json:"cardExpiry"`
}
