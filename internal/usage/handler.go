package usage

import (
	"encoding/json"
	"time"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/auth"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/response"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Action strings come from clients; strip anything that isn't plain text.
var sanitizer = bluemonday.StrictPolicy()

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Log(c *fiber.Ctx) error {
	var body struct {
		UserID    uint                   `json:"user_id"`
		Action    string                 `json:"action"`
		Metadata  map[string]interface{} `json:"metadata"`
		IPAddress string                 `json:"ip_address"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Action == "" {
		return response.ValidationError(c, map[string]string{
			"action": "action is required",
		})
	}

	userID := body.UserID
	if userID == 0 {
		userID = auth.IdentityFromCtx(c).UserID
	}

	ip := body.IPAddress
	if ip == "" {
		ip = c.IP()
	}

	rec := models.UsageLog{
		UserID:    userID,
		Action:    sanitizer.Sanitize(body.Action),
		IPAddress: ip,
	}
	if body.Metadata != nil {
		raw, err := json.Marshal(body.Metadata)
		if err != nil {
			return response.BadRequest(c, "Metadata must be a valid JSON object", nil)
		}
		rec.Metadata = datatypes.JSON(raw)
	}

	if err := h.db.Create(&rec).Error; err != nil {
		return response.InternalError(c, "Failed to log usage")
	}

	return response.Created(c, fiber.Map{"log_id": rec.ID}, "Usage logged successfully")
}

func (h *Handler) UserLogs(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	var logs []models.UsageLog
	err = h.db.Where("user_id = ?", userID).
		Order("action_time DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return response.InternalError(c, "Failed to fetch usage logs")
	}

	return response.Success(c, logs, "Usage logs retrieved successfully")
}

type actionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

type userActivity struct {
	Username string `json:"username"`
	Actions  int64  `json:"actions"`
}

// Statistics aggregates usage over a rolling period (7d, 30d or 90d).
func (h *Handler) Statistics(c *fiber.Ctx) error {
	period := c.Query("period", "7d")

	var days int
	switch period {
	case "7d":
		days = 7
	case "30d":
		days = 30
	case "90d":
		days = 90
	default:
		period, days = "7d", 7
	}
	since := time.Now().AddDate(0, 0, -days)

	var total int64
	err := h.db.Model(&models.UsageLog{}).
		Where("action_time >= ?", since).
		Count(&total).Error
	if err != nil {
		return response.InternalError(c, "Failed to compute statistics")
	}

	var byAction []actionCount
	err = h.db.Model(&models.UsageLog{}).
		Select("action, COUNT(*) as count").
		Where("action_time >= ?", since).
		Group("action").
		Order("count DESC").
		Limit(10).
		Scan(&byAction).Error
	if err != nil {
		return response.InternalError(c, "Failed to compute statistics")
	}

	var topUsers []userActivity
	err = h.db.Table("usage_logs").
		Select("users.username, COUNT(usage_logs.id) as actions").
		Joins("JOIN users ON users.id = usage_logs.user_id").
		Where("usage_logs.action_time >= ?", since).
		Group("usage_logs.user_id, users.username").
		Order("actions DESC").
		Limit(10).
		Scan(&topUsers).Error
	if err != nil {
		return response.InternalError(c, "Failed to compute statistics")
	}

	return response.Success(c, fiber.Map{
		"period": period,
		"statistics": fiber.Map{
			"total_actions": total,
			"by_action":     byAction,
			"top_users":     topUsers,
		},
	}, "Usage statistics computed")
}
