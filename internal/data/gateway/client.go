package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinema-client/internal/data/credstore"
	"cinema-client/internal/data/entity"
	"cinema-client/internal/dto/request"
	"cinema-client/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIError is returned when the remote service answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "cinema api error"
	}
	return fmt.Sprintf("cinema api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

var errNoToken = errors.New("no stored token")

// Client is the HTTP implementation of Gateway.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      credstore.Store
	log        *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, creds credstore.Store, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		log:        log.With(zap.String("service", "gateway")),
	}
}

func (c *Client) ListFilms(ctx context.Context, page, size int) ([]entity.Film, error) {
	endpoint := fmt.Sprintf("%s/api/films?%s", c.baseURL, pageQuery(page, size))

	var res response.FilmsResponse
	if err := c.getJSON(ctx, endpoint, false, &res); err != nil {
		return nil, err
	}

	c.log.Debug("Films listed", zap.Int("count", len(res.Data)))
	return res.Data, nil
}

func (c *Client) GetFilm(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	endpoint := fmt.Sprintf("%s/api/films/%s", c.baseURL, id.String())

	var res response.FilmResponse
	if err := c.getJSON(ctx, endpoint, true, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

func (c *Client) FetchImage(ctx context.Context, id string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/media/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, c.apiError(res, endpoint)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", id, err)
	}

	c.log.Debug("Image fetched", zap.String("id", id), zap.Int("bytes", len(data)))
	return data, nil
}

func (c *Client) Register(ctx context.Context, req *request.RegisterRequest) (*AuthResult, error) {
	return c.authenticate(ctx, c.baseURL+"/api/Auth/register", req, false)
}

func (c *Client) Login(ctx context.Context, req *request.LoginRequest) (*AuthResult, error) {
	return c.authenticate(ctx, c.baseURL+"/api/Auth/login", req, true)
}

// authenticate posts credentials and, on success, places the returned token
// into the credential store. Login tokens get the Bearer prefix; register
// tokens are stored raw, matching the original client.
func (c *Client) authenticate(ctx context.Context, endpoint string, body any, bearerPrefix bool) (*AuthResult, error) {
	var res response.AuthResponse
	if err := c.postJSON(ctx, endpoint, body, false, &res); err != nil {
		return nil, err
	}

	if !res.Success {
		c.log.Warn("Authentication rejected", zap.String("message", res.Message))
		return &AuthResult{OK: false, Message: res.Message}, nil
	}

	token := res.AccessToken
	if bearerPrefix && !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	if err := c.creds.Set(token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	c.log.Info("Authenticated", zap.String("endpoint", endpoint))
	return &AuthResult{Token: token, OK: true, Message: res.Message}, nil
}

func (c *Client) GetProfile(ctx context.Context) (*entity.UserProfile, error) {
	endpoint := c.baseURL + "/api/Users/me"

	var res response.UserProfileResponse
	if err := c.getJSON(ctx, endpoint, true, &res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*entity.UserProfile, error) {
	endpoint := c.baseURL + "/api/Users/me"

	var profile entity.UserProfile
	if err := c.doJSON(ctx, http.MethodPut, endpoint, req, true, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) ListSeatCategories(ctx context.Context, page, size int) ([]entity.SeatCategory, error) {
	endpoint := fmt.Sprintf("%s/api/SeatCategories?%s", c.baseURL, pageQuery(page, size))

	var res response.SeatCategoriesResponse
	if err := c.getJSON(ctx, endpoint, true, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) ListReviews(ctx context.Context, filmID uuid.UUID, page, size int) ([]entity.Review, error) {
	endpoint := fmt.Sprintf("%s/films/%s/reviews?%s", c.baseURL, filmID.String(), pageQuery(page, size))

	var res response.ReviewsResponse
	if err := c.getJSON(ctx, endpoint, true, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) AddReview(ctx context.Context, filmID uuid.UUID, rating int, text string) (*entity.Review, error) {
	endpoint := fmt.Sprintf("%s/films/%s/reviews", c.baseURL, filmID.String())
	body := request.AddReviewRequest{Rating: rating, Text: text}

	var review entity.Review
	if err := c.postJSON(ctx, endpoint, body, true, &review); err != nil {
		return nil, err
	}

	c.log.Info("Review posted", zap.String("film_id", filmID.String()), zap.Int("rating", rating))
	return &review, nil
}

func (c *Client) ListSessions(ctx context.Context, q SessionQuery) ([]entity.Session, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("size", strconv.Itoa(q.Size))
	if q.FilmID != nil {
		params.Set("filmId", q.FilmID.String())
	}
	if q.Date != "" {
		params.Set("date", q.Date)
	}
	endpoint := fmt.Sprintf("%s/sessions?%s", c.baseURL, params.Encode())

	var res response.SessionsResponse
	if err := c.getJSON(ctx, endpoint, true, &res); err != nil {
		return nil, err
	}

	c.log.Debug("Sessions listed", zap.Int("count", len(res.Data)))
	return res.Data, nil
}

func (c *Client) GetHallPlan(ctx context.Context, hallID uuid.UUID) (*entity.HallPlan, error) {
	endpoint := fmt.Sprintf("%s/api/Halls/%s/plan", c.baseURL, hallID.String())

	var res response.HallPlanResponse
	if err := c.getJSON(ctx, endpoint, true, &res); err != nil {
		return nil, err
	}
	return &res.HallPlan, nil
}

func (c *Client) GetHall(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	endpoint := fmt.Sprintf("%s/api/Halls/%s", c.baseURL, id.String())

	var res response.HallResponse
	if err := c.getJSON(ctx, endpoint, true, &res); err != nil {
		return nil, err
	}
	return &res.Hall, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, authed bool, out any) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, authed, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any, authed bool, out any) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, authed, out)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body any, authed bool, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		token, ok := c.creds.Get()
		if !ok {
			return fmt.Errorf("%s %s: %w", method, endpoint, errNoToken)
		}
		req.Header.Set("Authorization", token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return c.apiError(res, endpoint)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) apiError(res *http.Response, endpoint string) error {
	snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(snippet)),
	}
	c.log.Warn("API error",
		zap.String("endpoint", endpoint),
		zap.Int("status", res.StatusCode),
	)
	return apiErr
}

func pageQuery(page, size int) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	return params.Encode()
}
