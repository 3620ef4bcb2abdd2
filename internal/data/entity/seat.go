package entity

import "github.com/google/uuid"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "Available"
	SeatOccupied  SeatStatus = "Occupied"
	SeatReserved  SeatStatus = "Reserved"
	SeatBlocked   SeatStatus = "Blocked"
)

type Seat struct {
	ID     uuid.UUID `json:"id"`
	Row    int       `json:"row"`    // 1-based
	Number int       `json:"number"` // 1-based within row
	// The remote contract misspells this field; the tag must match the wire.
	CategoryID string     `json:"categotyId"`
	Status     SeatStatus `json:"status"`
}

type SeatCategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int    `json:"priceCents"`
}
