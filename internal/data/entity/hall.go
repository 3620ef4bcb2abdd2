package entity

import "github.com/google/uuid"

type Hall struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Number    int       `json:"number"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// HallPlan is the seat layout of one hall at fetch time. It lives only for
// the duration of a seat-selection workflow and is never merged into the
// long-lived hall cache.
type HallPlan struct {
	HallID     uuid.UUID      `json:"hallId"`
	Rows       int            `json:"rows"`
	Seats      []Seat         `json:"seats"`
	Categories []SeatCategory `json:"categories"`
}
