package cmd

import (
	"fmt"
	"os"

	"cinema-client/internal/data/entity"
	"cinema-client/internal/usecase"
	"cinema-client/pkg/utils"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newFilmsCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "films",
		Short: "List films currently on the billboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome := d.svc.Hub.Bootstrap(cmd.Context(), usecase.BootstrapOptions{LoadFilms: true})
			if !outcome.AllSucceeded {
				return fmt.Errorf("load films: %s", d.svc.Hub.LastError())
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Title", "Duration", "Age"})
			for _, film := range d.svc.Hub.Films() {
				t.AppendRow(table.Row{
					film.ID.String(),
					film.Title,
					fmt.Sprintf("%d min", film.DurationMinutes),
					film.AgeRating,
				})
			}
			t.Render()
			return nil
		},
	}
}

func newFilmCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "film <id>",
		Short: "Show one film with its sessions and reviews",
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
				IncludeReviews:  true,
				IncludeHalls:    true,
				MaxReviews:      d.config.API.ReviewPageSize,
				SortSessions:    true,
			})

			fmt.Printf("%s (%s, %d min)\n", film.Title, film.AgeRating, film.DurationMinutes)
			fmt.Println(film.Description)
			if film.Poster.ID != "" {
				if img, err := d.svc.Poster.Fetch(cmd.Context(), film.Poster.ID); err == nil {
					bounds := img.Bounds()
					fmt.Printf("Poster: %s (%dx%d)\n", film.Poster.Filename, bounds.Dx(), bounds.Dy())
				}
			}
			fmt.Printf("Rating: %.1f (%d reviews)\n\n",
				d.svc.Hub.AverageRating(filmID), len(d.svc.Hub.ReviewsFor(filmID)))

			sessions := d.svc.Hub.SessionsFor(filmID)
			if len(sessions) == 0 {
				fmt.Println("No upcoming sessions")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Session", "Starts", "Hall"})
			for _, session := range sessions {
				hallLabel := "-"
				if hall, ok := d.svc.Hub.HallByID(session.HallID); ok {
					hallLabel = fmt.Sprintf("%s #%d", hall.Name, hall.Number)
				}
				t.AppendRow(table.Row{session.ID.String(), session.StartAt, hallLabel})
			}
			t.Render()
			return nil
		},
	}
}

func newTicketsCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "tickets",
		Short: "Show purchased tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := d.svc.Ledger.Reload(); err != nil {
				return fmt.Errorf("reload tickets: %w", err)
			}

			tickets := d.svc.Ledger.Tickets()
			if len(tickets) == 0 {
				fmt.Println("No tickets yet")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Film", "Starts", "Hall", "Seats", "Total", "Card"})
			for _, ticket := range tickets {
				t.AppendRow(table.Row{
					ticket.FilmTitle,
					ticket.StartAt,
					fmt.Sprintf("%s #%d", ticket.HallName, ticket.HallNumber),
					joinSeats(ticket),
					utils.FormatPrice(ticket.TotalCents),
					ticket.MaskedCard,
				})
			}
			t.Render()
			return nil
		},
	}
}

func joinSeats(ticket entity.Ticket) string {
	out := ""
	for i, seat := range ticket.Seats {
		if i > 0 {
			out += ", "
		}
		out += seat
	}
	return out
}
