package ports

import "context"

type AuthService interface {
	// Authenticate verifies the credentials and returns a signed bearer
	// token whose subject is the username.
	Authenticate(ctx context.Context, username, password string) (string, error)
}
