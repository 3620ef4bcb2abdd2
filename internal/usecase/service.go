package usecase

import (
	"cinema-client/internal/data/blobstore"
	"cinema-client/internal/data/credstore"
	"cinema-client/internal/data/gateway"
	"cinema-client/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Hub    HubService
	Poster PosterService
	Ledger LedgerService
}

func NewService(gw gateway.Gateway, creds credstore.Store, blobs blobstore.Store, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Hub:    NewHubService(gw, creds, config, log),
		Poster: NewPosterService(gw, log),
		Ledger: NewLedgerService(blobs, config.Payment.SeatPriceCents, log),
	}
}
