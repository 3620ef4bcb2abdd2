package cmd

import (
	"fmt"

	"cinema-client/internal/data/entity"
	"cinema-client/internal/usecase"
	"cinema-client/pkg/utils"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newBookCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "book <film-id>",
		Short: "Pick a session and seats, pay, and store the ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filmID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid film id: %w", err)
			}

			film, err := d.gw.GetFilm(cmd.Context(), filmID)
			if err != nil {
				return fmt.Errorf("get film: %w", err)
			}

			d.svc.Hub.LoadFilmDetail(cmd.Context(), *film, usecase.DetailOptions{
				IncludeSessions: true,
				IncludeHalls:    true,
				SortSessions:    true,
			})

			sessions := d.svc.Hub.SessionsFor(filmID)
			if len(sessions) == 0 {
				return fmt.Errorf("no sessions for %s", film.Title)
			}

			session, err := promptSession(d, sessions)
			if err != nil {
				return err
			}

			plan, err := d.gw.GetHallPlan(cmd.Context(), session.HallID)
			if err != nil {
				return fmt.Errorf("get hall plan: %w", err)
			}

			d.svc.Hub.RefreshSeatCategories(cmd.Context())

			selection := usecase.NewSeatSelection(*plan, d.config.Payment.SeatPriceCents)
			printLegend(d, selection)
			if err := promptSeats(selection); err != nil {
				return err
			}
			if selection.Count() == 0 {
				return fmt.Errorf("no seats selected")
			}

			card, err := promptText("Card number")
			if err != nil {
				return err
			}
			expiry, err := promptText("Expiry (MM/YY)")
			if err != nil {
				return err
			}
			if !usecase.ValidateCard(card, expiry) {
				return fmt.Errorf("card details rejected")
			}

			hallName := ""
			hallNumber := 0
			if hall, ok := d.svc.Hub.HallByID(session.HallID); ok {
				hallName = hall.Name
				hallNumber = hall.Number
			}

			ticket, err := d.svc.Ledger.Append(usecase.TicketDraft{
				FilmID:     film.ID,
				FilmTitle:  film.Title,
				PosterID:   film.Poster.ID,
				SessionID:  session.ID,
				HallName:   hallName,
				HallNumber: hallNumber,
				StartAt:    session.StartAt,
				Seats:      selection.Selected(),
				CardNumber: card,
				CardExpiry: expiry,
			})
			if err != nil {
				return fmt.Errorf("store ticket: %w", err)
			}

			fmt.Printf("Ticket %s: %s, seats %v, %s\n",
				ticket.ID, ticket.FilmTitle, ticket.Seats, utils.FormatPrice(ticket.TotalCents))
			return nil
		},
	}
}

func promptSession(d *deps, sessions []entity.Session) (entity.Session, error) {
	labels := make([]string, len(sessions))
	for i, session := range sessions {
		hallLabel := "-"
		if hall, ok := d.svc.Hub.HallByID(session.HallID); ok {
			hallLabel = fmt.Sprintf("%s #%d", hall.Name, hall.Number)
		}
		labels[i] = fmt.Sprintf("%s  %s", session.StartAt, hallLabel)
	}

	prompt := promptui.Select{Label: "Select session", Items: labels, Size: 10}
	i, _, err := prompt.Run()
	if err != nil {
		return entity.Session{}, err
	}
	return sessions[i], nil
}

// printLegend lists the seat categories present in the plan, falling back
// to the hub's global list when the plan carries none. Category prices are
// informational; the total always uses the flat unit price.
func printLegend(d *deps, selection *usecase.SeatSelection) {
	categories := selection.Plan().Categories
	if len(categories) == 0 {
		categories = d.svc.Hub.SeatCategories()
	}
	if len(categories) == 0 {
		return
	}
	fmt.Println("Categories:")
	for _, c := range categories {
		fmt.Printf("  %s (%s)\n", c.Name, utils.FormatPrice(c.PriceCents))
	}
}

// promptSeats toggles seat keys until the user submits an empty line.
func promptSeats(selection *usecase.SeatSelection) error {
	plan := selection.Plan()
	fmt.Printf("Hall has %d rows, %d seats. Enter seat keys as row-number (e.g. 3-7); empty line to finish.\n",
		plan.Rows, len(plan.Seats))

	for {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("Seat (%d picked, total %s)",
				selection.Count(), utils.FormatPrice(selection.TotalCents())),
		}
		key, err := prompt.Run()
		if err != nil {
			return err
		}
		if key == "" {
			return nil
		}
		if !selection.Toggle(key) {
			fmt.Println("Seat unavailable")
		}
	}
}
