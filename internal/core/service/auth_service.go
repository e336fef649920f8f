package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

const invalidCredentialsMessage = "Invalid username or password"

type authService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	codec  ports.TokenCodec
	log    zerolog.Logger
}

// NewAuthService returns an AuthService implementation.
func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, codec ports.TokenCodec, log zerolog.Logger) ports.AuthService {
	return &authService{users: users, hasher: hasher, codec: codec, log: log}
}

// Authenticate verifies the credentials and issues a bearer token whose
// subject is the username. Unknown users and hash mismatches are reported
// identically so the response does not reveal which side failed.
func (s *authService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.NewUnauthenticated(invalidCredentialsMessage)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if domain.AsError(err).Kind == domain.KindNotFound {
			return "", domain.NewUnauthenticated(invalidCredentialsMessage)
		}
		return "", err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		s.log.Debug().Str("username", username).Msg("password mismatch")
		return "", domain.NewUnauthenticated(invalidCredentialsMessage)
	}

	token, err := s.codec.Issue(user.Username)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return token, nil
}
