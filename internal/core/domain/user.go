package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `bson:"id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
	CreatedBy    string    `bson:"created_by,omitempty"`
	UpdatedBy    string    `bson:"updated_by,omitempty"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// NormalizeUsername trims the username and collapses inner runs of
// whitespace to a single space, so "  a  b  " is stored as "a b".
func NormalizeUsername(username string) string {
	return strings.Join(strings.Fields(username), " ")
}
