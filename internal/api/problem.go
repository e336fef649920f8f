package api

import (
	"time"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// ProblemDetail is the canonical error body for all 4xx/5xx responses.
type ProblemDetail struct {
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail"`
	Instance   string         `json:"instance"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewProblemDetail builds a problem body stamped with the current time.
func NewProblemDetail(title string, status int, detail, instance string) *ProblemDetail {
	return &ProblemDetail{
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  instance,
		Timestamp: time.Now(),
	}
}

// SetProperty attaches an extension property such as validationErrors or
// retryAfterSeconds.
func (p *ProblemDetail) SetProperty(key string, value any) {
	if p.Properties == nil {
		p.Properties = make(map[string]any)
	}
	p.Properties[key] = value
}

// statusTitle maps each domain error kind to its HTTP status and title.
func statusTitle(kind domain.ErrorKind) (int, string) {
	switch kind {
	case domain.KindValidation:
		return 400, "Validation error"
	case domain.KindMalformedBody:
		return 400, "Malformed JSON request"
	case domain.KindBadParameter:
		return 400, "Invalid request parameter"
	case domain.KindBusinessRule:
		return 400, "Business rule violation"
	case domain.KindUnauthenticated:
		return 401, "Authentication failed"
	case domain.KindForbidden:
		return 403, "Forbidden"
	case domain.KindNotFound:
		return 404, "Resource not found"
	case domain.KindConflict:
		return 409, "Conflict"
	case domain.KindRateLimited:
		return 429, "Too many requests"
	default:
		return 500, "Internal server error"
	}
}
