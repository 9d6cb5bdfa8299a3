package handlers

import (
	"errors"

	"tembo/internal/repositories"
	"tembo/internal/services/user"
	"tembo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	userService *user.Service
}

func NewAdminHandler(userService *user.Service) *AdminHandler {
	return &AdminHandler{
		userService: userService,
	}
}

// SetBlacklist toggles the administrative block on all wallets of a user.
func (h *AdminHandler) SetBlacklist(c *fiber.Ctx) error {
	var input struct {
		UserID      uint `json:"user_id"`
		Blacklisted bool `json:"blacklisted"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.userService.SetBlacklisted(c.Context(), input.UserID, input.Blacklisted); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return utils.NotFound(c, "user not found")
		}
		return utils.InternalError(c, "Failed to update blacklist")
	}

	return utils.Success(c, fiber.Map{
		"user_id":     input.UserID,
		"blacklisted": input.Blacklisted,
	})
}
