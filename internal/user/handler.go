package user

import (
	"errors"
	"fmt"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/audit"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/auth"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler exposes the admin-only user management endpoints.
type Handler struct {
	db         *gorm.DB
	bcryptCost int
}

func NewHandler(db *gorm.DB, bcryptCost int) *Handler {
	return &Handler{db: db, bcryptCost: bcryptCost}
}

func (h *Handler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var users []models.User
	err := h.db.Preload("Role").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return response.InternalError(c, "Failed to fetch users")
	}

	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return response.InternalError(c, "Failed to count users")
	}

	return response.SuccessWithMeta(c, users, response.CalculateMeta(page, limit, total), "Users retrieved successfully")
}

func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var user models.User
	if err := h.db.Preload("Role").First(&user, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	return response.Success(c, user, "User retrieved successfully")
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Username == "" || body.Email == "" || body.Password == "" || body.Role == "" {
		return response.ValidationError(c, map[string]string{
			"username": "username is required",
			"email":    "email is required",
			"password": "password is required",
			"role":     "role is required",
		})
	}

	var existing models.User
	if err := h.db.Where("email = ? OR username = ?", body.Email, body.Username).First(&existing).Error; err == nil {
		return response.Conflict(c, "User with this email or username already exists")
	}

	var role models.Role
	if err := h.db.Where("name = ?", body.Role).First(&role).Error; err != nil {
		return response.InvalidRole(c, "Specified role does not exist")
	}

	hash, err := auth.HashPassword(body.Password, h.bcryptCost)
	if err != nil {
		return response.InternalError(c, "Failed to hash password")
	}

	user := models.User{
		Username: body.Username,
		Email:    body.Email,
		Password: hash,
		RoleID:   role.ID,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalError(c, "Failed to create user")
	}

	adminID := auth.IdentityFromCtx(c).UserID
	audit.Record(h.db, &user.ID, "user_created_by_admin", "", &adminID, c.IP())

	h.db.Preload("Role").First(&user, user.ID)

	return response.Created(c, user, "User created successfully")
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	changed := false

	if body.Username != "" && body.Username != user.Username {
		var existing models.User
		if err := h.db.Where("username = ? AND id != ?", body.Username, id).First(&existing).Error; err == nil {
			return response.Conflict(c, "Username already taken")
		}
		user.Username = body.Username
		changed = true
	}

	if body.Email != "" && body.Email != user.Email {
		var existing models.User
		if err := h.db.Where("email = ? AND id != ?", body.Email, id).First(&existing).Error; err == nil {
			return response.Conflict(c, "Email already taken")
		}
		user.Email = body.Email
		changed = true
	}

	if body.Password != "" {
		hash, err := auth.HashPassword(body.Password, h.bcryptCost)
		if err != nil {
			return response.InternalError(c, "Failed to hash password")
		}
		user.Password = hash
		changed = true
	}

	if body.Role != "" {
		var role models.Role
		if err := h.db.Where("name = ?", body.Role).First(&role).Error; err != nil {
			return response.InvalidRole(c, "Specified role does not exist")
		}
		user.RoleID = role.ID
		changed = true
	}

	if !changed {
		return response.BadRequest(c, "No fields to update", nil)
	}

	if err := h.db.Save(&user).Error; err != nil {
		return response.InternalError(c, "Failed to update user")
	}

	adminID := auth.IdentityFromCtx(c).UserID
	audit.Record(h.db, &user.ID, "user_updated_by_admin", "", &adminID, c.IP())

	h.db.Preload("Role").First(&user, user.ID)

	return response.Success(c, user, "User updated successfully")
}

// Delete removes the row for good. Existing audit rows keep the action
// details; their user_id FK is nulled out by the database.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User")
		}
		return response.ServiceUnavailable(c)
	}

	adminID := auth.IdentityFromCtx(c).UserID
	if uint(id) == adminID {
		return response.BadRequest(c, "Cannot delete your own account", nil)
	}

	if err := h.db.Delete(&user).Error; err != nil {
		return response.InternalError(c, "Failed to delete user")
	}

	audit.Record(h.db, nil, "user_deleted_by_admin", fmt.Sprintf("Hard delete of user %d (%s)", user.ID, user.Email), &adminID, c.IP())

	return response.NoContent(c)
}
