package entity

import "github.com/google/uuid"

// Session timestamps stay in their ISO-8601 wire form; all values share the
// same format, so ordering sessions is a plain string comparison.
type Session struct {
	ID       uuid.UUID `json:"id"`
	FilmID   uuid.UUID `json:"filmId"`
	HallID   uuid.UUID `json:"hallId"`
	StartAt  string    `json:"startAt"`
	Timeslot Timeslot  `json:"timeslot"`
}

type Timeslot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
