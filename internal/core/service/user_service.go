package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

const (
	usernameExistsMessage = "Username already exists, please, try other username"
	emailExistsMessage    = "Email already exists, please, try other email address"
)

type userService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) ports.UserService {
	return &userService{users: users, hasher: hasher, log: log}
}

// Create registers a new account. The username conflict is checked before
// the email conflict; the first failure wins.
func (s *userService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	username := domain.NormalizeUsername(input.Username)

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.NewValidation(map[string]string{
			"role": "Role must be one of ROLE_USER, ROLE_ADMIN",
		})
	}

	if exists, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.NewConflict(usernameExistsMessage)
	}

	if exists, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.NewConflict(emailExistsMessage)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    username,
		UpdatedBy:    username,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}
