package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shortlistd/quizgate/internal/admin/jwt"
	"github.com/shortlistd/quizgate/internal/db/repository"
)

// CookieName carries the admin capability token between requests.
const CookieName = "admin_token"

var ErrInvalidCredentials = errors.New("invalid credentials")

type adminStore interface {
	GetByEmail(ctx context.Context, email string) (repository.Admin, error)
	Create(ctx context.Context, email, passwordHash string) (repository.Admin, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// Service implements the admin capability check guarding every mutation
// surface: login issues a token, Authorize validates it per request.
type Service struct {
	admins adminStore
	tokens *jwt.Manager
	logger zerolog.Logger
}

func NewService(admins adminStore, tokens *jwt.Manager, logger zerolog.Logger) *Service {
	return &Service{
		admins: admins,
		tokens: tokens,
		logger: logger.With().Str("component", "admin_service").Logger(),
	}
}

// Tokens exposes the token manager (cookie TTL for handlers).
func (s *Service) Tokens() *jwt.Manager {
	return s.tokens
}

// Login verifies credentials and returns a signed capability token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, repository.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	account, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", repository.Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", repository.Admin{}, err
	}

	if err := VerifyPassword(account.PasswordHash, password); err != nil {
		return "", repository.Admin{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(account.ID, account.Email)
	if err != nil {
		return "", repository.Admin{}, err
	}

	if err := s.admins.UpdateLastLogin(ctx, account.ID); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to record login time")
	}

	return token, account, nil
}

// Seed ensures an admin account exists for the given credentials; an
// already-present account is left untouched. Called once at startup.
func (s *Service) Seed(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.admins.Create(ctx, email, hash); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("seeded admin account")
	return nil
}

// Authorize extracts and validates the capability token from the request,
// checking the admin_token cookie first, then a Bearer header.
func (s *Service) Authorize(r *http.Request) (*jwt.Claims, error) {
	var token string
	if cookie, err := r.Cookie(CookieName); err == nil {
		token = cookie.Value
	} else if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		return nil, jwt.ErrInvalidToken
	}
	return s.tokens.Validate(token)
}
