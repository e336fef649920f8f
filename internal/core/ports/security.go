package ports

// PasswordHasher is a one-way password hash with verification.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// TokenCodec issues and verifies bearer tokens bound to a subject.
type TokenCodec interface {
	// Issue signs a token carrying the subject and an expiry.
	Issue(subject string) (string, error)
	// Verify checks the token and returns its subject.
	Verify(token string) (string, error)
}
