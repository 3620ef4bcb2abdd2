package gateway

import (
	"context"

	"cinema-client/internal/data/entity"
	"cinema-client/internal/dto/request"

	"github.com/google/uuid"
)

// SessionQuery narrows a session listing. Zero values mean "no filter".
type SessionQuery struct {
	Page   int
	Size   int
	FilmID *uuid.UUID
	Date   string // ISO-8601, as the server expects it
}

// AuthResult is the outcome of a login or register call. The token has
// already been placed in the credential store by the time this returns.
type AuthResult struct {
	Token   string
	OK      bool
	Message string
}

// Gateway is the typed surface of the remote cinema service. Every
// authenticated call reads the bearer token from the credential store at
// request time; a missing token is a fetch-time error, not a precondition.
type Gateway interface {
	ListFilms(ctx context.Context, page, size int) ([]entity.Film, error)
	GetFilm(ctx context.Context, id uuid.UUID) (*entity.Film, error)
	FetchImage(ctx context.Context, id string) ([]byte, error)

	Register(ctx context.Context, req *request.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *request.LoginRequest) (*AuthResult, error)

	GetProfile(ctx context.Context) (*entity.UserProfile, error)
	UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*entity.UserProfile, error)

	ListSeatCategories(ctx context.Context, page, size int) ([]entity.SeatCategory, error)
	ListReviews(ctx context.Context, filmID uuid.UUID, page, size int) ([]entity.Review, error)
	AddReview(ctx context.Context, filmID uuid.UUID, rating int, text string) (*entity.Review, error)

	ListSessions(ctx context.Context, q SessionQuery) ([]entity.Session, error)
	GetHallPlan(ctx context.Context, hallID uuid.UUID) (*entity.HallPlan, error)
	GetHall(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
}
