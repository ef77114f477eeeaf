package subscription

import (
	"fmt"
	"time"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/audit"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) List(c *fiber.Ctx) error {
	var subs []models.Subscription
	err := h.db.Preload("User").Order("start_date DESC").Find(&subs).Error
	if err != nil {
		return response.InternalError(c, "Failed to fetch subscriptions")
	}

	return response.Success(c, subs, "Subscriptions retrieved successfully")
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var body struct {
		UserID    uint   `json:"user_id"`
		PlanName  string `json:"plan_name"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Status    string `json:"status"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.UserID == 0 || body.PlanName == "" || body.StartDate == "" || body.EndDate == "" {
		return response.ValidationError(c, map[string]string{
			"user_id":    "user_id is required",
			"plan_name":  "plan_name is required",
			"start_date": "start_date is required (YYYY-MM-DD)",
			"end_date":   "end_date is required (YYYY-MM-DD)",
		})
	}

	if !validPlan(body.PlanName) {
		return response.BadRequest(c, "Invalid plan name", fmt.Sprintf("plan_name must be one of %v", models.PlanNames))
	}

	status := body.Status
	if status == "" {
		status = models.SubscriptionActive
	}
	if !validStatus(status) {
		return response.BadRequest(c, "Invalid status value", nil)
	}

	start, err := time.Parse(dateLayout, body.StartDate)
	if err != nil {
		return response.BadRequest(c, "Start date must be in ISO format (YYYY-MM-DD)", nil)
	}
	end, err := time.Parse(dateLayout, body.EndDate)
	if err != nil {
		return response.BadRequest(c, "End date must be in ISO format (YYYY-MM-DD)", nil)
	}
	if !end.After(start) {
		return response.BadRequest(c, "End date must be after start date", nil)
	}

	var user models.User
	if err := h.db.First(&user, body.UserID).Error; err != nil {
		return response.NotFound(c, "User")
	}

	sub := models.Subscription{
		UserID:    body.UserID,
		PlanName:  body.PlanName,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	if err := h.db.Create(&sub).Error; err != nil {
		return response.InternalError(c, "Failed to create subscription")
	}

	audit.Record(h.db, &body.UserID, "subscription_created", "Plan: "+body.PlanName, nil, c.IP())

	return response.Created(c, sub, "Subscription created successfully")
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid subscription ID", nil)
	}

	var body struct {
		PlanName  string `json:"plan_name"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Status    string `json:"status"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	var sub models.Subscription
	if err := h.db.First(&sub, id).Error; err != nil {
		return response.NotFound(c, "Subscription")
	}

	changed := false

	if body.PlanName != "" {
		if !validPlan(body.PlanName) {
			return response.BadRequest(c, "Invalid plan name", nil)
		}
		sub.PlanName = body.PlanName
		changed = true
	}
	if body.StartDate != "" {
		start, err := time.Parse(dateLayout, body.StartDate)
		if err != nil {
			return response.BadRequest(c, "Start date must be in ISO format (YYYY-MM-DD)", nil)
		}
		sub.StartDate = start
		changed = true
	}
	if body.EndDate != "" {
		end, err := time.Parse(dateLayout, body.EndDate)
		if err != nil {
			return response.BadRequest(c, "End date must be in ISO format (YYYY-MM-DD)", nil)
		}
		sub.EndDate = end
		changed = true
	}
	if body.Status != "" {
		if !validStatus(body.Status) {
			return response.BadRequest(c, "Invalid status value", nil)
		}
		sub.Status = body.Status
		changed = true
	}

	if !changed {
		return response.BadRequest(c, "No fields to update", nil)
	}

	if !sub.EndDate.After(sub.StartDate) {
		return response.BadRequest(c, "End date must be after start date", nil)
	}

	if err := h.db.Save(&sub).Error; err != nil {
		return response.InternalError(c, "Failed to update subscription")
	}

	return response.Success(c, sub, "Subscription updated successfully")
}

func (h *Handler) ByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var subs []models.Subscription
	err = h.db.Where("user_id = ?", userID).Order("start_date DESC").Find(&subs).Error
	if err != nil {
		return response.InternalError(c, "Failed to fetch subscriptions")
	}

	return response.Success(c, subs, "Subscriptions retrieved successfully")
}

// Expiring lists active subscriptions ending within the next N days
// (default 7).
func (h *Handler) Expiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 {
		days = 7
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, days)

	var subs []models.Subscription
	err := h.db.Preload("User").
		Where("status = ? AND end_date BETWEEN ? AND ?", models.SubscriptionActive, now, cutoff).
		Order("end_date ASC").
		Find(&subs).Error
	if err != nil {
		return response.InternalError(c, "Failed to fetch subscriptions")
	}

	return response.Success(c, subs, fmt.Sprintf("Subscriptions expiring within %d days", days))
}

func validPlan(name string) bool {
	for _, p := range models.PlanNames {
		if p == name {
			return true
		}
	}
	return false
}

func validStatus(status string) bool {
	switch status {
	case models.SubscriptionActive, models.SubscriptionInactive,
		models.SubscriptionExpired, models.SubscriptionCancelled:
		return true
	}
	return false
}
