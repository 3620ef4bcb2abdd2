package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Store holds the opaque bearer token used on authenticated gateway calls.
type Store interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

const credFile = "credentials.json"

type credPayload struct {
	AccessToken string `json:"accessToken"`
}

// FileStore persists the token as a small JSON file under dir.
type FileStore struct {
	dir string
	log *zap.Logger
}

func NewFileStore(dir string, log *zap.Logger) *FileStore {
	return &FileStore{
		dir: dir,
		log: log.With(zap.String("store", "credentials")),
	}
}

func (s *FileStore) Get() (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, credFile))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("Failed to read credentials", zap.Error(err))
		}
		return "", false
	}

	var payload credPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.log.Warn("Invalid credentials file", zap.Error(err))
		return "", false
	}
	if payload.AccessToken == "" {
		return "", false
	}

	if exp, ok := TokenExpiry(payload.AccessToken); ok && time.Now().After(exp) {
		// Still returned: the server is the authority on token validity.
		s.log.Warn("Stored token looks expired", zap.Time("exp", exp))
	}

	return payload.AccessToken, true
}

func (s *FileStore) Set(token string) error {
	if token == "" {
		// Empty tokens are ignored, matching the original client.
		s.log.Warn("Ignoring empty token")
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	data, err := json.Marshal(credPayload{AccessToken: token})
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, credFile), data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	s.log.Debug("Token saved")
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(filepath.Join(s.dir, credFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// TokenExpiry peeks at the exp claim of a bearer token without verifying the
// signature. Used for logging only; the gateway never gates on it.
func TokenExpiry(token string) (time.Time, bool) {
	raw := token
	if len(raw) > 7 && raw[:7] == "Bearer " {
		raw = raw[7:]
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
