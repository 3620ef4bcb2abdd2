package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cinema-client/internal/data/credstore"
	"cinema-client/internal/data/entity"
	"cinema-client/internal/data/gateway"
	"cinema-client/internal/dto/request"
	"cinema-client/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// hallFanoutLimit bounds concurrent hall fetches during preload.
const hallFanoutLimit = 8

// Outcome is the aggregate result of a hub operation, reported both as a
// return value and through the optional completion callback.
type Outcome struct {
	AllSucceeded bool
	ItemsLoaded  int
	Status       string // "ok", "err" or "pending"
}

type BootstrapOptions struct {
	LoadFilms    bool
	LoadProfile  bool
	PreloadHalls bool
	FilmID       *uuid.UUID
	Date         string        // optional session date filter
	Delay        time.Duration // artificial delay before completion
	OnDone       func(Outcome)
}

type DetailOptions struct {
	IncludeSessions bool
	IncludeReviews  bool
	IncludeHalls    bool
	MaxReviews      int
	SortSessions    bool
}

type AuthMode string

const (
	AuthLogin    AuthMode = "login"
	AuthRegister AuthMode = "register"
)

type Credentials struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Gender    string
	Age       int
}

type AuthOptions struct {
	Blocking   bool
	RememberMe bool
	OnDone     func(Outcome)
}

// HubService owns all long-lived client state. Fetches may run concurrently,
// but every merge into shared state happens under one lock, one completion
// at a time. Gateway failures never escape the hub: callers observe missing
// data and the LastError flag instead.
type HubService interface {
	Bootstrap(ctx context.Context, opts BootstrapOptions) Outcome
	LoadFilmDetail(ctx context.Context, film entity.Film, opts DetailOptions)
	SubmitReview(ctx context.Context, filmID uuid.UUID, rating int, text string)
	Authenticate(ctx context.Context, creds Credentials, mode AuthMode, opts AuthOptions) Outcome
	UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) bool
	RefreshSeatCategories(ctx context.Context)
	Logout()

	Films() []entity.Film
	SessionsFor(filmID uuid.UUID) []entity.Session
	HallByID(id uuid.UUID) (entity.Hall, bool)
	ReviewsFor(filmID uuid.UUID) []entity.Review
	AverageRating(filmID uuid.UUID) float64
	SeatCategories() []entity.SeatCategory
	Profile() (entity.UserProfile, bool)
	Busy() bool
	LastError() string
}

type hubService struct {
	gw       gateway.Gateway
	creds    credstore.Store
	config   *utils.Config
	log      *zap.Logger
	authWait time.Duration

	mu             sync.Mutex
	films          []entity.Film
	sessionsByFilm map[uuid.UUID][]entity.Session
	hallsByID      map[uuid.UUID]entity.Hall
	reviewsByFilm  map[uuid.UUID][]entity.Review
	seatCategories []entity.SeatCategory
	profile        *entity.UserProfile
	busy           bool
	lastError      string
}

func NewHubService(gw gateway.Gateway, creds credstore.Store, config *utils.Config, log *zap.Logger) HubService {
	authWait := time.Duration(config.API.AuthWaitSeconds) * time.Second
	if authWait <= 0 {
		authWait = 5 * time.Second
	}
	return &hubService{
		gw:             gw,
		creds:          creds,
		config:         config,
		log:            log.With(zap.String("service", "hub")),
		authWait:       authWait,
		sessionsByFilm: make(map[uuid.UUID][]entity.Session),
		hallsByID:      make(map[uuid.UUID]entity.Hall),
		reviewsByFilm:  make(map[uuid.UUID][]entity.Review),
	}
}

func (s *hubService) Bootstrap(ctx context.Context, opts BootstrapOptions) Outcome {
	s.setBusy(true)
	defer s.setBusy(false)

	ok := true
	count := 0

	// Films and profile load independently; one failing leaves the other's
	// data intact and only flips the aggregate flag.
	var wg sync.WaitGroup
	var resMu sync.Mutex

	if opts.LoadProfile {
		wg.Add(1)
		go func() {
			defer wg.Done()
			profile, err := s.gw.GetProfile(ctx)
			if err != nil {
				s.fail("load profile", err)
				resMu.Lock()
				ok = false
				resMu.Unlock()
				return
			}
			s.mu.Lock()
			s.profile = profile
			s.mu.Unlock()
			resMu.Lock()
			count++
			resMu.Unlock()
		}()
	}

	if opts.LoadFilms {
		wg.Add(1)
		go func() {
			defer wg.Done()
			films, err := s.gw.ListFilms(ctx, 0, s.config.API.FilmPageSize)
			if err != nil {
				s.fail("load films", err)
				resMu.Lock()
				ok = false
				resMu.Unlock()
				return
			}
			s.mu.Lock()
			s.films = films
			s.mu.Unlock()
			resMu.Lock()
			count += len(films)
			resMu.Unlock()
		}()
	}

	wg.Wait()

	if opts.PreloadHalls && opts.FilmID != nil {
		sessions, err := s.gw.ListSessions(ctx, gateway.SessionQuery{
			Page:   0,
			Size:   s.config.API.SessionPageSize,
			FilmID: opts.FilmID,
			Date:   opts.Date,
		})
		if err != nil {
			s.fail("load sessions", err)
		} else {
			s.mu.Lock()
			s.sessionsByFilm[*opts.FilmID] = sessions
			s.mu.Unlock()
			count += len(sessions)
			count += s.preloadHalls(ctx, sessions)
		}
	}

	if opts.Delay > 0 {
		select {
		case <-time.After(opts.Delay):
		case <-ctx.Done():
		}
	}

	status := "ok"
	if !ok {
		status = "err"
	}
	outcome := Outcome{AllSucceeded: ok, ItemsLoaded: count, Status: status}

	s.log.Info("Bootstrap finished",
		zap.Bool("ok", ok),
		zap.Int("items", count),
	)

	if opts.OnDone != nil {
		opts.OnDone(outcome)
	}
	return outcome
}

// preloadHalls fans out one fetch per distinct hall id referenced by the
// sessions and merges each hall as its fetch completes, in whatever order
// the results arrive. Returns the number of halls merged.
func (s *hubService) preloadHalls(ctx context.Context, sessions []entity.Session) int {
	ids := distinctHallIDs(sessions)
	if len(ids) == 0 {
		return 0
	}

	type hallResult struct {
		id   uuid.UUID
		hall *entity.Hall
		err  error
	}

	results := make(chan hallResult, len(ids))

	g := &errgroup.Group{}
	g.SetLimit(hallFanoutLimit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			hall, err := s.gw.GetHall(ctx, id)
			results <- hallResult{id: id, hall: hall, err: err}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	// Single consumer: merges are serialized here, so completions never
	// interleave while mutating the hall map.
	merged := 0
	for r := range results {
		if r.err != nil {
			s.fail("load hall", r.err)
			continue
		}
		s.mu.Lock()
		s.hallsByID[r.id] = *r.hall
		s.mu.Unlock()
		merged++
	}
	return merged
}

func (s *hubService) LoadFilmDetail(ctx context.Context, film entity.Film, opts DetailOptions) {
	if opts.IncludeSessions {
		sessions, err := s.gw.ListSessions(ctx, gateway.SessionQuery{
			Page:   0,
			Size:   s.config.API.SessionPageSize,
			FilmID: &film.ID,
		})
		if err != nil {
			s.fail("load sessions", err)
		} else {
			if opts.SortSessions {
				// Shared ISO-8601 format makes string order time order.
				sort.Slice(sessions, func(i, j int) bool {
					return sessions[i].StartAt < sessions[j].StartAt
				})
			}
			s.mu.Lock()
			s.sessionsByFilm[film.ID] = sessions
			s.mu.Unlock()

			if opts.IncludeHalls {
				s.preloadHalls(ctx, sessions)
			}
		}
	}

	if opts.IncludeReviews {
		maxReviews := opts.MaxReviews
		if maxReviews <= 0 {
			maxReviews = s.config.API.ReviewPageSize
		}
		reviews, err := s.gw.ListReviews(ctx, film.ID, 0, maxReviews)
		if err != nil {
			s.fail("load reviews", err)
		} else {
			s.mu.Lock()
			s.reviewsByFilm[film.ID] = reviews
			s.mu.Unlock()
		}
	}
}

func (s *hubService) SubmitReview(ctx context.Context, filmID uuid.UUID, rating int, text string) {
	req := request.AddReviewRequest{Rating: rating, Text: text}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Review validation failed", zap.Any("errors", errs))
		s.setError(fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(errs)))
		return
	}

	review, err := s.gw.AddReview(ctx, filmID, rating, text)
	if err != nil {
		s.fail("submit review", err)
		return
	}

	// Most-recent-first is hub policy; the gateway makes no ordering promise.
	s.mu.Lock()
	s.reviewsByFilm[filmID] = append([]entity.Review{*review}, s.reviewsByFilm[filmID]...)
	s.mu.Unlock()
}

func (s *hubService) Authenticate(ctx context.Context, creds Credentials, mode AuthMode, opts AuthOptions) Outcome {
	s.setBusy(true)

	run := func() Outcome {
		var result *gateway.AuthResult
		var err error

		switch mode {
		case AuthRegister:
			req := &request.RegisterRequest{
				Email:     creds.Email,
				Password:  creds.Password,
				FirstName: creds.FirstName,
				LastName:  creds.LastName,
				Age:       creds.Age,
				Gender:    creds.Gender,
			}
			if errs := utils.ValidateStruct(req); len(errs) > 0 {
				s.log.Warn("Register validation failed", zap.Any("errors", errs))
				return Outcome{Status: "err"}
			}
			result, err = s.gw.Register(ctx, req)
		default:
			req := &request.LoginRequest{Email: creds.Email, Password: creds.Password}
			if errs := utils.ValidateStruct(req); len(errs) > 0 {
				s.log.Warn("Login validation failed", zap.Any("errors", errs))
				return Outcome{Status: "err"}
			}
			result, err = s.gw.Login(ctx, req)
		}

		if err != nil {
			s.fail("authenticate", err)
			return Outcome{Status: "err"}
		}
		if !result.OK {
			s.setError(result.Message)
			return Outcome{Status: "err"}
		}

		if opts.RememberMe {
			if _, ok := s.creds.Get(); !ok {
				s.log.Warn("Token missing from store after auth")
			}
		}
		return Outcome{AllSucceeded: true, ItemsLoaded: 1, Status: "ok"}
	}

	if opts.Blocking {
		// Synchronous-wait discipline: the caller is held until completion
		// or the fixed timeout, whichever comes first.
		done := make(chan Outcome, 1)
		go func() { done <- run() }()

		var outcome Outcome
		select {
		case outcome = <-done:
		case <-time.After(s.authWait):
			s.log.Warn("Blocking authentication timed out", zap.Duration("wait", s.authWait))
			outcome = Outcome{Status: "err"}
		}

		s.setBusy(false)
		if opts.OnDone != nil {
			opts.OnDone(outcome)
		}
		return outcome
	}

	go func() {
		outcome := run()
		s.setBusy(false)
		if opts.OnDone != nil {
			opts.OnDone(outcome)
		}
	}()
	return Outcome{Status: "pending"}
}

func (s *hubService) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) bool {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Profile validation failed", zap.Any("errors", errs))
		s.setError(fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(errs)))
		return false
	}

	profile, err := s.gw.UpdateProfile(ctx, req)
	if err != nil {
		s.fail("update profile", err)
		return false
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return true
}

func (s *hubService) RefreshSeatCategories(ctx context.Context) {
	categories, err := s.gw.ListSeatCategories(ctx, 0, s.config.API.CategoryPageSize)
	if err != nil {
		s.fail("load seat categories", err)
		return
	}
	s.mu.Lock()
	s.seatCategories = categories
	s.mu.Unlock()
}

func (s *hubService) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.log.Warn("Failed to clear credentials", zap.Error(err))
	}
	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
}

// ---- read-side snapshots ----

func (s *hubService) Films() []entity.Film {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Film(nil), s.films...)
}

func (s *hubService) SessionsFor(filmID uuid.UUID) []entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Session(nil), s.sessionsByFilm[filmID]...)
}

func (s *hubService) HallByID(id uuid.UUID) (entity.Hall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hall, ok := s.hallsByID[id]
	return hall, ok
}

func (s *hubService) ReviewsFor(filmID uuid.UUID) []entity.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Review(nil), s.reviewsByFilm[filmID]...)
}

func (s *hubService) AverageRating(filmID uuid.UUID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := s.reviewsByFilm[filmID]
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func (s *hubService) SeatCategories() []entity.SeatCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.SeatCategory(nil), s.seatCategories...)
}

func (s *hubService) Profile() (entity.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return entity.UserProfile{}, false
	}
	return *s.profile, true
}

func (s *hubService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *hubService) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ---- internal ----

func (s *hubService) setBusy(busy bool) {
	s.mu.Lock()
	s.busy = busy
	s.mu.Unlock()
}

func (s *hubService) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

// fail logs a gateway failure and records it; nothing is propagated.
func (s *hubService) fail(op string, err error) {
	s.log.Warn("Gateway call failed", zap.String("op", op), zap.Error(err))
	s.setError(fmt.Sprintf("%s: %v", op, err))
}

func distinctHallIDs(sessions []entity.Session) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(sessions))
	ids := make([]uuid.UUID, 0, len(sessions))
	for _, session := range sessions {
		if _, ok := seen[session.HallID]; ok {
			continue
		}
		seen[session.HallID] = struct{}{}
		ids = append(ids, session.HallID)
	}
	return ids
}
