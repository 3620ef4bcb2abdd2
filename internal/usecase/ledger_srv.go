package usecase

import (
	"encoding/json"
	"fmt"
	"sync"

	"cinema-client/internal/data/blobstore"
	"cinema-client/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ledgerKey carries the schema generation; bumping it abandons old payloads.
const ledgerKey = "tickets_v2"

const ledgerSchemaVersion = 2

// TicketDraft is the input to a purchase commit. The raw card number is
// used once for masking and never persisted.
type TicketDraft struct {
	FilmID     uuid.UUID
	FilmTitle  string
	PosterID   string
	SessionID  uuid.UUID
	HallName   string
	HallNumber int
	StartAt    string
	Seats      []string
	CardNumber string
	CardExpiry string
}

type ledgerEnvelope struct {
	Version int             `json:"version"`
	Tickets []entity.Ticket `json:"tickets"`
}

// LedgerService is the append-only store of completed purchases, newest
// first. Every append writes the whole ledger through to durable storage;
// records are immutable and never deleted.
type LedgerService interface {
	Append(draft TicketDraft) (entity.Ticket, error)
	Reload() error
	Tickets() []entity.Ticket
}

type ledgerService struct {
	blobs          blobstore.Store
	unitPriceCents int
	log            *zap.Logger

	mu      sync.Mutex
	tickets []entity.Ticket
}

func NewLedgerService(blobs blobstore.Store, unitPriceCents int, log *zap.Logger) LedgerService {
	return &ledgerService{
		blobs:          blobs,
		unitPriceCents: unitPriceCents,
		log:            log.With(zap.String("service", "ledger")),
	}
}

func (s *ledgerService) Append(draft TicketDraft) (entity.Ticket, error) {
	ticket := entity.Ticket{
		ID:         uuid.NewString(),
		FilmID:     draft.FilmID,
		FilmTitle:  draft.FilmTitle,
		PosterID:   draft.PosterID,
		SessionID:  draft.SessionID,
		HallName:   draft.HallName,
		HallNumber: draft.HallNumber,
		StartAt:    draft.StartAt,
		Seats:      append([]string(nil), draft.Seats...),
		TotalCents: len(draft.Seats) * s.unitPriceCents,
		MaskedCard: MaskCard(draft.CardNumber),
		CardExpiry: draft.CardExpiry,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets = append([]entity.Ticket{ticket}, s.tickets...)

	if err := s.persist(); err != nil {
		s.log.Error("Failed to persist ledger", zap.Error(err))
		return entity.Ticket{}, err
	}

	s.log.Info("Ticket stored",
		zap.String("ticket_id", ticket.ID),
		zap.String("film", ticket.FilmTitle),
		zap.Int("seats", len(ticket.Seats)),
		zap.Int("total_cents", ticket.TotalCents),
	)
	return ticket, nil
}

// Reload replaces the in-memory ledger wholesale from durable storage.
func (s *ledgerService) Reload() error {
	data, ok, err := s.blobs.Read(ledgerKey)
	if err != nil {
		return fmt.Errorf("reload ledger: %w", err)
	}
	if !ok {
		return nil
	}

	var envelope ledgerEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decode ledger: %w", err)
	}

	s.mu.Lock()
	s.tickets = envelope.Tickets
	s.mu.Unlock()

	s.log.Debug("Ledger reloaded", zap.Int("tickets", len(envelope.Tickets)))
	return nil
}

func (s *ledgerService) Tickets() []entity.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Ticket(nil), s.tickets...)
}

// persist is called with s.mu held.
func (s *ledgerService) persist() error {
	data, err := json.Marshal(ledgerEnvelope{Version: ledgerSchemaVersion, Tickets: s.tickets})
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return s.blobs.Write(ledgerKey, data)
}
