package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

func TestUserServiceCreate(t *testing.T) {
	repo := newStubUserRepository()
	svc := NewUserService(repo, stubHasher{}, zerolog.Nop())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "Password1!",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %s, got %s", domain.RoleUser, user.Role)
	}
	if user.PasswordHash != "hashed:Password1!" {
		t.Fatalf("password should be stored hashed, got %q", user.PasswordHash)
	}
	if user.CreatedBy != "alice" || user.UpdatedBy != "alice" {
		t.Fatalf("registration should be self-audited, got %q / %q", user.CreatedBy, user.UpdatedBy)
	}
}

func TestUserServiceCreateNormalizesUsername(t *testing.T) {
	repo := newStubUserRepository()
	svc := NewUserService(repo, stubHasher{}, zerolog.Nop())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "  alice   smith  ",
		Password: "Password1!",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice smith" {
		t.Fatalf("expected collapsed whitespace, got %q", user.Username)
	}
}

func TestUserServiceCreateExplicitAdminRole(t *testing.T) {
	svc := NewUserService(newStubUserRepository(), stubHasher{}, zerolog.Nop())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "root",
		Password: "Password1!",
		Email:    "root@example.com",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected %s, got %s", domain.RoleAdmin, user.Role)
	}
}

func TestUserServiceCreateRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepository(), stubHasher{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "Password1!",
		Email:    "alice@example.com",
		Role:     "ROLE_SUPERUSER",
	})
	derr := domain.AsError(err)
	if derr.Kind != domain.KindValidation {
		t.Fatalf("expected VALIDATION, got %s", derr.Kind)
	}
	if _, ok := derr.Fields["role"]; !ok {
		t.Fatalf("expected a role field error, got %v", derr.Fields)
	}
}

func TestUserServiceCreateConflicts(t *testing.T) {
	repo := newStubUserRepository()
	svc := NewUserService(repo, stubHasher{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "Password1!",
		Email:    "alice@example.com",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same username, different email.
	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "Password1!",
		Email:    "alice2@example.com",
	})
	if derr := domain.AsError(err); derr.Kind != domain.KindConflict || derr.Detail != usernameExistsMessage {
		t.Fatalf("expected username conflict, got %v", err)
	}

	// Different username, same email.
	_, err = svc.Create(context.Background(), ports.CreateUserInput{
		Username: "bob",
		Password: "Password1!",
		Email:    "alice@example.com",
	})
	if derr := domain.AsError(err); derr.Kind != domain.KindConflict || derr.Detail != emailExistsMessage {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

func TestUserServiceCreateUsernameConflictWinsOverEmail(t *testing.T) {
	repo := newStubUserRepository()
	svc := NewUserService(repo, stubHasher{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "Password1!",
		Email:    "alice@example.com",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both sides collide; the username message must win.
	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "Password1!",
		Email:    "alice@example.com",
	})
	if derr := domain.AsError(err); derr.Detail != usernameExistsMessage {
		t.Fatalf("expected the username conflict to be reported first, got %v", err)
	}
}
