package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dwelli/backend/internal/models"
	"github.com/dwelli/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to the authenticated user
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.GetProfile)
	g.PUT("/me", h.UpdateProfile)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates username and profession; other fields are immutable
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Username must not be blank")
		}
		user.Username = username
	}
	if req.Profession != nil {
		user.Profession = strings.TrimSpace(*req.Profession)
	}

	if err := h.userRepository.UpdateUser(c.Request().Context(), user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) currentUser(c echo.Context) (*models.User, error) {
	return loadCurrentUser(c, h.userRepository)
}

func loadCurrentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	userID, err := requireUser(c)
	if err != nil {
		return nil, err
	}
	user, err := users.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}
