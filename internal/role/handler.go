package role

import (
	"github.com/flixnettv/flix-Xtreme-Panel/internal/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) List(c *fiber.Ctx) error {
	roles, err := ListRoles(h.db)
	if err != nil {
		return response.InternalError(c, "Failed to fetch roles")
	}

	return response.Success(c, roles, "Roles retrieved successfully")
}
