package ports

import (
	"context"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// CreateUserInput carries a validated registration request into the service.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
}
