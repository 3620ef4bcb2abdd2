package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cinema-client/internal/data/entity"
	"cinema-client/internal/data/gateway"
	"cinema-client/internal/dto/request"
	"cinema-client/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeGateway implements gateway.Gateway with overridable behavior per call.
type fakeGateway struct {
	listFilms    func(ctx context.Context, page, size int) ([]entity.Film, error)
	getFilm      func(ctx context.Context, id uuid.UUID) (*entity.Film, error)
	fetchImage   func(ctx context.Context, id string) ([]byte, error)
	register     func(ctx context.Context, req *request.RegisterRequest) (*gateway.AuthResult, error)
	login        func(ctx context.Context, req *request.LoginRequest) (*gateway.AuthResult, error)
	getProfile   func(ctx context.Context) (*entity.UserProfile, error)
	listSessions func(ctx context.Context, q gateway.SessionQuery) ([]entity.Session, error)
	getHall      func(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	listReviews  func(ctx context.Context, filmID uuid.UUID, page, size int) ([]entity.Review, error)
	addReview    func(ctx context.Context, filmID uuid.UUID, rating int, text string) (*entity.Review, error)

	profileCalls int32
	hallCalls    int32
}

var errFakeUnexpected = errors.New("unexpected gateway call")

func (f *fakeGateway) ListFilms(ctx context.Context, page, size int) ([]entity.Film, error) {
	if f.listFilms == nil {
		return nil, errFakeUnexpected
	}
	return f.listFilms(ctx, page, size)
}

func (f *fakeGateway) GetFilm(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	if f.getFilm == nil {
		return nil, errFakeUnexpected
	}
	return f.getFilm(ctx, id)
}

func (f *fakeGateway) FetchImage(ctx context.Context, id string) ([]byte, error) {
	if f.fetchImage == nil {
		return nil, errFakeUnexpected
	}
	return f.fetchImage(ctx, id)
}

func (f *fakeGateway) Register(ctx context.Context, req *request.RegisterRequest) (*gateway.AuthResult, error) {
	if f.register == nil {
		return nil, errFakeUnexpected
	}
	return f.register(ctx, req)
}

func (f *fakeGateway) Login(ctx context.Context, req *request.LoginRequest) (*gateway.AuthResult, error) {
	if f.login == nil {
		return nil, errFakeUnexpected
	}
	return f.login(ctx, req)
}

func (f *fakeGateway) GetProfile(ctx context.Context) (*entity.UserProfile, error) {
	atomic.AddInt32(&f.profileCalls, 1)
	if f.getProfile == nil {
		return nil, errFakeUnexpected
	}
	return f.getProfile(ctx)
}

func (f *fakeGateway) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*entity.UserProfile, error) {
	return nil, errFakeUnexpected
}

func (f *fakeGateway) ListSeatCategories(ctx context.Context, page, size int) ([]entity.SeatCategory, error) {
	return nil, errFakeUnexpected
}

func (f *fakeGateway) ListReviews(ctx context.Context, filmID uuid.UUID, page, size int) ([]entity.Review, error) {
	if f.listReviews == nil {
		return nil, errFakeUnexpected
	}
	return f.listReviews(ctx, filmID, page, size)
}

func (f *fakeGateway) AddReview(ctx context.Context, filmID uuid.UUID, rating int, text string) (*entity.Review, error) {
	if f.addReview == nil {
		return nil, errFakeUnexpected
	}
	return f.addReview(ctx, filmID, rating, text)
}

func (f *fakeGateway) ListSessions(ctx context.Context, q gateway.SessionQuery) ([]entity.Session, error) {
	if f.listSessions == nil {
		return nil, errFakeUnexpected
	}
	return f.listSessions(ctx, q)
}

func (f *fakeGateway) GetHallPlan(ctx context.Context, hallID uuid.UUID) (*entity.HallPlan, error) {
	return nil, errFakeUnexpected
}

func (f *fakeGateway) GetHall(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	atomic.AddInt32(&f.hallCalls, 1)
	if f.getHall == nil {
		return nil, errFakeUnexpected
	}
	return f.getHall(ctx, id)
}

// memCreds is an in-memory credential store for tests.
type memCreds struct {
	mu    sync.Mutex
	token string
}

func (m *memCreds) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memCreds) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memCreds) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		API: utils.APIConfig{
			FilmPageSize:     50,
			SessionPageSize:  120,
			ReviewPageSize:   100,
			CategoryPageSize: 50,
			AuthWaitSeconds:  1,
		},
		Payment: utils.PaymentConfig{SeatPriceCents: 1000},
	}
}

func newTestHub(gw gateway.Gateway, creds *memCreds) HubService {
	if creds == nil {
		creds = &memCreds{}
	}
	return NewHubService(gw, creds, testConfig(), zap.NewNop())
}

func sessionWithHall(filmID, hallID uuid.UUID, startAt string) entity.Session {
	return entity.Session{
		ID:      uuid.New(),
		FilmID:  filmID,
		HallID:  hallID,
		StartAt: startAt,
	}
}

func TestBootstrap_FilmsOnly(t *testing.T) {
	gw := &fakeGateway{
		listFilms: func(ctx context.Context, page, size int) ([]entity.Film, error) {
			return []entity.Film{
				{ID: uuid.New(), Title: "First"},
				{ID: uuid.New(), Title: "Second"},
			}, nil
		},
	}
	hub := newTestHub(gw, nil)

	outcome := hub.Bootstrap(context.Background(), BootstrapOptions{LoadFilms: true})

	if !outcome.AllSucceeded || outcome.ItemsLoaded != 2 || outcome.Status != "ok" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if got := len(hub.Films()); got != 2 {
		t.Fatalf("expected 2 films, got %d", got)
	}
	if _, ok := hub.Profile(); ok {
		t.Fatal("expected no profile")
	}
	if calls := atomic.LoadInt32(&gw.profileCalls); calls != 0 {
		t.Fatalf("expected no profile request, got %d", calls)
	}
	if hub.Busy() {
		t.Fatal("expected busy to be cleared")
	}
}

func TestBootstrap_FilmFailureDoesNotBlockProfile(t *testing.T) {
	gw := &fakeGateway{
		listFilms: func(ctx context.Context, page, size int) ([]entity.Film, error) {
			return nil, errors.New("boom")
		},
		getProfile: func(ctx context.Context) (*entity.UserProfile, error) {
			return &entity.UserProfile{ID: "u1", Email: "a@b.c"}, nil
		},
	}
	hub := newTestHub(gw, nil)

	outcome := hub.Bootstrap(context.Background(), BootstrapOptions{LoadFilms: true, LoadProfile: true})

	if outcome.AllSucceeded || outcome.Status != "err" {
		t.Fatalf("expected degraded outcome, got %+v", outcome)
	}
	if _, ok := hub.Profile(); !ok {
		t.Fatal("expected profile despite film failure")
	}
	if len(hub.Films()) != 0 {
		t.Fatal("expected no films")
	}
	if hub.LastError() == "" {
		t.Fatal("expected last error to be recorded")
	}
}

func TestBootstrap_DistinctHallFanOut(t *testing.T) {
	filmID := uuid.New()
	hallA, hallB, hallC := uuid.New(), uuid.New(), uuid.New()

	gw := &fakeGateway{
		listSessions: func(ctx context.Context, q gateway.SessionQuery) ([]entity.Session, error) {
			return []entity.Session{
				sessionWithHall(filmID, hallA, "2026-09-01T10:00:00Z"),
				sessionWithHall(filmID, hallA, "2026-09-01T14:00:00Z"),
				sessionWithHall(filmID, hallB, "2026-09-01T16:00:00Z"),
				sessionWithHall(filmID, hallC, "2026-09-01T18:00:00Z"),
			}, nil
		},
		getHall: func(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
			return &entity.Hall{ID: id, Name: "Hall", Number: 1}, nil
		},
	}
	hub := newTestHub(gw, nil)

	hub.Bootstrap(context.Background(), BootstrapOptions{
		PreloadHalls: true,
		FilmID:       &filmID,
	})

	if calls := atomic.LoadInt32(&gw.hallCalls); calls != 3 {
		t.Fatalf("expected 3 hall fetches, got %d", calls)
	}
	for _, id := range []uuid.UUID{hallA, hallB, hallC} {
		if _, ok := hub.HallByID(id); !ok {
			t.Fatalf("expected hall %s in cache", id)
		}
	}
}

func TestBootstrap_HallFailureMergesOthers(t *testing.T) {
	filmID := uuid.New()
	hallA, hallB := uuid.New(), uuid.New()

	gw := &fakeGateway{
		listSessions: func(ctx context.Context, q gateway.SessionQuery) ([]entity.Session, error) {
			return []entity.Session{
				sessionWithHall(filmID, hallA, "2026-09-01T10:00:00Z"),
				sessionWithHall(filmID, hallB, "2026-09-01T12:00:00Z"),
			}, nil
		},
		getHall: func(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
			if id == hallA {
				return nil, errors.New("boom")
			}
			return &entity.Hall{ID: id, Name: "Hall", Number: 2}, nil
		},
	}
	hub := newTestHub(gw, nil)

	hub.Bootstrap(context.Background(), BootstrapOptions{PreloadHalls: true, FilmID: &filmID})

	if _, ok := hub.HallByID(hallA); ok {
		t.Fatal("failed hall should not be cached")
	}
	if _, ok := hub.HallByID(hallB); !ok {
		t.Fatal("surviving hall should be cached")
	}
}

func TestLoadFilmDetail_ReplacesAndSortsSessions(t *testing.T) {
	film := entity.Film{ID: uuid.New(), Title: "Film"}
	hallID := uuid.New()

	first := []entity.Session{
		sessionWithHall(film.ID, hallID, "2026-09-02T20:00:00Z"),
		sessionWithHall(film.ID, hallID, "2026-09-02T10:00:00Z"),
	}
	second := []entity.Session{
		sessionWithHall(film.ID, hallID, "2026-09-03T12:00:00Z"),
	}

	responses := [][]entity.Session{first, second}
	call := 0
	gw := &fakeGateway{
		listSessions: func(ctx context.Context, q gateway.SessionQuery) ([]entity.Session, error) {
			res := responses[call]
			call++
			return res, nil
		},
	}
	hub := newTestHub(gw, nil)

	hub.LoadFilmDetail(context.Background(), film, DetailOptions{IncludeSessions: true, SortSessions: true})

	got := hub.SessionsFor(film.ID)
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].StartAt > got[1].StartAt {
		t.Fatalf("expected ascending order, got %s before %s", got[0].StartAt, got[1].StartAt)
	}

	// Second fetch replaces the first wholesale, no union.
	hub.LoadFilmDetail(context.Background(), film, DetailOptions{IncludeSessions: true})

	got = hub.SessionsFor(film.ID)
	if len(got) != 1 {
		t.Fatalf("expected replacement with 1 session, got %d", len(got))
	}
	if got[0].ID != second[0].ID {
		t.Fatal("expected the second response's session")
	}
}

func TestSubmitReview_PrependsNewestFirst(t *testing.T) {
	filmID := uuid.New()
	existing := entity.Review{ID: uuid.New(), FilmID: filmID, Rating: 4, Text: "older"}

	gw := &fakeGateway{
		listReviews: func(ctx context.Context, id uuid.UUID, page, size int) ([]entity.Review, error) {
			return []entity.Review{existing}, nil
		},
		addReview: func(ctx context.Context, id uuid.UUID, rating int, text string) (*entity.Review, error) {
			return &entity.Review{ID: uuid.New(), FilmID: id, Rating: rating, Text: text}, nil
		},
	}
	hub := newTestHub(gw, nil)

	hub.LoadFilmDetail(context.Background(), entity.Film{ID: filmID}, DetailOptions{IncludeReviews: true})
	hub.SubmitReview(context.Background(), filmID, 5, "newer")

	reviews := hub.ReviewsFor(filmID)
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].Text != "newer" || reviews[1].Text != "older" {
		t.Fatalf("expected newest first, got %q then %q", reviews[0].Text, reviews[1].Text)
	}

	if avg := hub.AverageRating(filmID); avg != 4.5 {
		t.Fatalf("expected average 4.5, got %v", avg)
	}
}

func TestSubmitReview_InvalidRatingDoesNotPost(t *testing.T) {
	posted := int32(0)
	gw := &fakeGateway{
		addReview: func(ctx context.Context, id uuid.UUID, rating int, text string) (*entity.Review, error) {
			atomic.AddInt32(&posted, 1)
			return &entity.Review{}, nil
		},
	}
	hub := newTestHub(gw, nil)

	hub.SubmitReview(context.Background(), uuid.New(), 9, "out of range")

	if atomic.LoadInt32(&posted) != 0 {
		t.Fatal("invalid review must not reach the gateway")
	}
	if hub.LastError() == "" {
		t.Fatal("expected validation error recorded")
	}
}

func TestAuthenticate_BlockingSuccessRemembersToken(t *testing.T) {
	creds := &memCreds{}
	gw := &fakeGateway{
		login: func(ctx context.Context, req *request.LoginRequest) (*gateway.AuthResult, error) {
			_ = creds.Set("Bearer token-1")
			return &gateway.AuthResult{Token: "Bearer token-1", OK: true}, nil
		},
	}
	hub := newTestHub(gw, creds)

	outcome := hub.Authenticate(context.Background(),
		Credentials{Email: "a@b.c", Password: "secret"},
		AuthLogin,
		AuthOptions{Blocking: true, RememberMe: true},
	)

	if !outcome.AllSucceeded || outcome.Status != "ok" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if token, ok := creds.Get(); !ok || token != "Bearer token-1" {
		t.Fatalf("expected stored token, got %q", token)
	}
	if hub.Busy() {
		t.Fatal("expected busy cleared")
	}
}

func TestAuthenticate_BlockingTimesOut(t *testing.T) {
	gw := &fakeGateway{
		login: func(ctx context.Context, req *request.LoginRequest) (*gateway.AuthResult, error) {
			time.Sleep(3 * time.Second) // longer than the 1s test wait
			return &gateway.AuthResult{OK: true}, nil
		},
	}
	hub := newTestHub(gw, nil)

	start := time.Now()
	outcome := hub.Authenticate(context.Background(),
		Credentials{Email: "a@b.c", Password: "secret"},
		AuthLogin,
		AuthOptions{Blocking: true},
	)
	elapsed := time.Since(start)

	if outcome.Status != "err" {
		t.Fatalf("expected timeout outcome, got %+v", outcome)
	}
	if elapsed >= 3*time.Second {
		t.Fatalf("caller was held past the timeout: %v", elapsed)
	}
}

func TestAuthenticate_NonBlockingReportsThroughCallback(t *testing.T) {
	gw := &fakeGateway{
		login: func(ctx context.Context, req *request.LoginRequest) (*gateway.AuthResult, error) {
			return &gateway.AuthResult{OK: false, Message: "bad credentials"}, nil
		},
	}
	hub := newTestHub(gw, nil)

	done := make(chan Outcome, 1)
	outcome := hub.Authenticate(context.Background(),
		Credentials{Email: "a@b.c", Password: "wrong"},
		AuthLogin,
		AuthOptions{OnDone: func(o Outcome) { done <- o }},
	)

	if outcome.Status != "pending" {
		t.Fatalf("expected pending, got %+v", outcome)
	}

	select {
	case final := <-done:
		if final.Status != "err" {
			t.Fatalf("expected auth failure status, got %+v", final)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion callback never fired")
	}

	if hub.LastError() != "bad credentials" {
		t.Fatalf("expected auth message surfaced, got %q", hub.LastError())
	}
}
