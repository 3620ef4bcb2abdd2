package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	// Poster decoders.
	_ "image/jpeg"
	_ "image/png"

	"cinema-client/internal/data/gateway"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PosterService is a keyed image cache. Concurrent fetches for one id are
// coalesced into a single gateway call; all callers get the same result.
// Failures cache nothing, so the next call retries. No eviction.
type PosterService interface {
	Fetch(ctx context.Context, id string) (image.Image, error)
}

type posterService struct {
	gw  gateway.Gateway
	log *zap.Logger

	mu     sync.RWMutex
	cache  map[string]image.Image
	flight singleflight.Group
}

func NewPosterService(gw gateway.Gateway, log *zap.Logger) PosterService {
	return &posterService{
		gw:    gw,
		log:   log.With(zap.String("service", "poster")),
		cache: make(map[string]image.Image),
	}
}

func (s *posterService) Fetch(ctx context.Context, id string) (image.Image, error) {
	s.mu.RLock()
	img, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}

	// Late callers for the same id attach to the in-flight fetch instead of
	// issuing their own.
	result, err, _ := s.flight.Do(id, func() (any, error) {
		data, err := s.gw.FetchImage(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetch poster %s: %w", id, err)
		}

		decoded, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode poster %s: %w", id, err)
		}

		s.mu.Lock()
		s.cache[id] = decoded
		s.mu.Unlock()

		s.log.Debug("Poster cached",
			zap.String("id", id),
			zap.String("format", format),
			zap.Int("bytes", len(data)),
		)
		return decoded, nil
	})
	if err != nil {
		s.log.Warn("Poster fetch failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return result.(image.Image), nil
}
