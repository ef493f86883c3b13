package handlers

import (
	"errors"
	"log"

	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app. These routes
// must sit behind the auth middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/me", h.HandleGetMe)
}

// HandleGetMe returns the profile of the authenticated user.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return respondError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("Error getting user %s: %v", userID, err)
		return respondError(c, fiber.StatusInternalServerError, "Could not retrieve user")
	}

	user.Password = ""
	return respondData(c, fiber.StatusOK, "User retrieved", user)
}
