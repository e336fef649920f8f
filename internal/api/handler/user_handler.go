package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/projects-api/internal/api/metrics"
	"github.com/projecthub/projects-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create registers a new user account.
//
// @Summary      Create User
// @Description  Creates a new user in the system (public endpoint)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      userRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  api.ProblemDetail
// @Failure      409   {object}  api.ProblemDetail
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}
