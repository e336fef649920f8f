package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

func newAuthFixture(t *testing.T) ports.AuthService {
	t.Helper()
	repo := newStubUserRepository()
	if _, err := NewUserService(repo, stubHasher{}, zerolog.Nop()).Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "Password1!",
		Email:    "alice@example.com",
	}); err != nil {
		t.Fatalf("fixture user: %v", err)
	}
	return NewAuthService(repo, stubHasher{}, stubCodec{}, zerolog.Nop())
}

func TestAuthenticateSuccess(t *testing.T) {
	svc := newAuthFixture(t)

	token, err := svc.Authenticate(context.Background(), "alice", "Password1!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-for-alice" {
		t.Fatalf("expected the subject to be the username, got %q", token)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc := newAuthFixture(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "WrongPassword1!"},
		{"unknown user", "mallory", "Password1!"},
		{"empty username", "", "Password1!"},
		{"empty password", "alice", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tc.username, tc.password)
			derr := domain.AsError(err)
			if derr.Kind != domain.KindUnauthenticated {
				t.Fatalf("expected UNAUTHENTICATED, got %v", err)
			}
			// All failure modes share one message so the response does not
			// reveal whether the account exists.
			if derr.Detail != invalidCredentialsMessage {
				t.Fatalf("expected uniform failure message, got %q", derr.Detail)
			}
		})
	}
}
