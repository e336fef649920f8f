package handler

import "github.com/projecthub/projects-api/internal/core/domain"

// --- Request / Response types ---

type userRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,password"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"omitempty,oneof=ROLE_USER ROLE_ADMIN"`
}

type userResponse struct {
	ID        int64                `json:"id"`
	Username  string               `json:"username"`
	Email     string               `json:"email"`
	Role      string               `json:"role"`
	CreatedAt domain.LocalDateTime `json:"createdAt"`
	UpdatedAt domain.LocalDateTime `json:"updatedAt"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: domain.NewLocalDateTime(u.CreatedAt),
		UpdatedAt: domain.NewLocalDateTime(u.UpdatedAt),
	}
}
