package usecase

import (
	"fmt"
	"sort"

	"cinema-client/internal/data/entity"
)

// SeatKey is the user-facing selection key for a seat within one hall plan.
func SeatKey(row, number int) string {
	return fmt.Sprintf("%d-%d", row, number)
}

// SeatSelection is the seat-picking state machine over one fetched hall
// plan. Pure and synchronous; selection never survives a plan reload.
// Totals use a flat per-seat price: category prices feed the legend only.
type SeatSelection struct {
	plan           entity.HallPlan
	unitPriceCents int
	seatsByKey     map[string]entity.Seat
	categoriesByID map[string]entity.SeatCategory
	selected       map[string]struct{}
}

func NewSeatSelection(plan entity.HallPlan, unitPriceCents int) *SeatSelection {
	seats := make(map[string]entity.Seat, len(plan.Seats))
	for _, seat := range plan.Seats {
		seats[SeatKey(seat.Row, seat.Number)] = seat
	}
	categories := make(map[string]entity.SeatCategory, len(plan.Categories))
	for _, c := range plan.Categories {
		categories[c.ID] = c
	}
	return &SeatSelection{
		plan:           plan,
		unitPriceCents: unitPriceCents,
		seatsByKey:     seats,
		categoriesByID: categories,
		selected:       make(map[string]struct{}),
	}
}

// Toggle flips membership for an available seat and reports whether the
// selection changed. Seats in any other status are inert.
func (s *SeatSelection) Toggle(key string) bool {
	seat, ok := s.seatsByKey[key]
	if !ok || seat.Status != entity.SeatAvailable {
		return false
	}

	if _, picked := s.selected[key]; picked {
		delete(s.selected, key)
	} else {
		s.selected[key] = struct{}{}
	}
	return true
}

func (s *SeatSelection) Reset() {
	s.selected = make(map[string]struct{})
}

func (s *SeatSelection) IsSelected(key string) bool {
	_, ok := s.selected[key]
	return ok
}

// Selected returns the chosen seat keys in a stable order.
func (s *SeatSelection) Selected() []string {
	keys := make([]string, 0, len(s.selected))
	for key := range s.selected {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *SeatSelection) Count() int {
	return len(s.selected)
}

func (s *SeatSelection) TotalCents() int {
	return len(s.selected) * s.unitPriceCents
}

// CategoryFor resolves a seat's category from the plan, falling back to a
// default when the plan carries no matching category.
func (s *SeatSelection) CategoryFor(seat entity.Seat) entity.SeatCategory {
	if c, ok := s.categoriesByID[seat.CategoryID]; ok {
		return c
	}
	return entity.SeatCategory{Name: "Standard", PriceCents: s.unitPriceCents}
}

func (s *SeatSelection) Plan() entity.HallPlan {
	return s.plan
}
