package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dmsantos/transferd/internal/common"
	"github.com/dmsantos/transferd/internal/cryptox"
	"github.com/dmsantos/transferd/internal/server/accounts"
	"github.com/dmsantos/transferd/internal/server/config"
)

type Service struct {
	repo             accounts.Repository
	jwtSecret        []byte
	validityDuration time.Duration

	// dummyHash is compared against when the username is unknown so both
	// failure paths cost a bcrypt verification.
	dummyHash []byte
}

func NewService(repo accounts.Repository, cfg *config.Config) *Service {
	dummy, err := cryptox.HashPassword("transferd-dummy-credential")
	if err != nil {
		// bcrypt only fails on invalid cost; the default cost cannot.
		panic(err)
	}
	return &Service{
		repo:             repo,
		jwtSecret:        []byte(cfg.SecretKey),
		validityDuration: cfg.TokenValidityDuration,
		dummyHash:        dummy,
	}
}

// Authenticate verifies the credentials and mints a session token bound to
// the username. Unknown usernames and wrong passwords both yield
// common.ErrInvalidCredentials so the caller cannot tell which happened.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, *accounts.Account, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			cryptox.CheckPassword(s.dummyHash, password)
			return "", nil, common.ErrInvalidCredentials
		}
		return "", nil, common.ErrInternal
	}

	if !cryptox.CheckPassword(account.PasswordHash, password) {
		return "", nil, common.ErrInvalidCredentials
	}

	token, err := GenerateToken(account.Username, s.jwtSecret, s.validityDuration)
	if err != nil {
		return "", nil, common.ErrInternal
	}

	return token, account, nil
}

// Resolve returns the username a token is bound to, or
// common.ErrUnauthorized for a missing, malformed, expired, or forged token.
func (s *Service) Resolve(token string) (string, error) {
	if token == "" {
		return "", common.ErrUnauthorized
	}

	username, err := GetUsernameFromToken(token, s.jwtSecret)
	if err != nil {
		return "", common.ErrUnauthorized
	}

	return username, nil
}
