package audit

import (
	"bytes"
	"encoding/csv"
	"log"
	"time"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/response"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var sanitizer = bluemonday.StrictPolicy()

type Handler struct {
	db       *gorm.DB
	archiver *utils.ExportArchiver
}

func NewHandler(db *gorm.DB, archiver *utils.ExportArchiver) *Handler {
	return &Handler{db: db, archiver: archiver}
}

func (h *Handler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	query := h.db.Model(&models.AuditRecord{}).Preload("User")

	if userID := c.QueryInt("user_id", 0); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if start := c.Query("start_date"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return response.BadRequest(c, "start_date must be in ISO format (YYYY-MM-DD)", nil)
		}
		query = query.Where("action_time >= ?", t)
	}
	if end := c.Query("end_date"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return response.BadRequest(c, "end_date must be in ISO format (YYYY-MM-DD)", nil)
		}
		query = query.Where("action_time <= ?", t)
	}

	var records []models.AuditRecord
	if err := query.Order("action_time DESC").Limit(limit).Find(&records).Error; err != nil {
		return response.InternalError(c, "Failed to fetch audit logs")
	}

	return response.SuccessWithMeta(c, records,
		&response.Meta{Total: int64(len(records))},
		"Audit logs retrieved successfully")
}

func (h *Handler) Append(c *fiber.Ctx) error {
	var body struct {
		UserID    uint   `json:"user_id"`
		Action    string `json:"action_performed"`
		Details   string `json:"details"`
		IPAddress string `json:"ip_address"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.UserID == 0 || body.Action == "" {
		return response.ValidationError(c, map[string]string{
			"user_id":          "user_id is required",
			"action_performed": "action_performed is required",
		})
	}

	ip := body.IPAddress
	if ip == "" {
		ip = c.IP()
	}

	rec := models.AuditRecord{
		UserID:    &body.UserID,
		Action:    sanitizer.Sanitize(body.Action),
		Details:   sanitizer.Sanitize(body.Details),
		IPAddress: ip,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		return response.InternalError(c, "Failed to log audit event")
	}

	return response.Created(c, fiber.Map{"audit_id": rec.ID}, "Audit event logged")
}

// Export streams the most recent 1000 records as CSV (or JSON), and keeps
// an archive copy; a failed archive never fails the download.
func (h *Handler) Export(c *fiber.Ctx) error {
	format := c.Query("format", "csv")

	var records []models.AuditRecord
	err := h.db.Preload("User").
		Order("action_time DESC").
		Limit(1000).
		Find(&records).Error
	if err != nil {
		return response.InternalError(c, "Failed to fetch audit logs")
	}

	if format != "csv" {
		return response.Success(c, records, "Audit logs retrieved successfully")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Timestamp", "Username", "Action", "Details", "IP Address"})
	for _, rec := range records {
		username := "N/A"
		if rec.User != nil {
			username = rec.User.Username
		}
		_ = w.Write([]string{
			rec.ActionTime.UTC().Format(time.RFC3339),
			username,
			rec.Action,
			rec.Details,
			rec.IPAddress,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return response.InternalError(c, "Failed to generate CSV")
	}

	if h.archiver != nil {
		if loc, err := h.archiver.Archive("audit_export.csv", "text/csv", buf.Bytes()); err != nil {
			log.Printf("⚠️  Failed to archive audit export: %v", err)
		} else {
			log.Printf("🗄️  Audit export archived to %s", loc)
		}
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="audit_export.csv"`)
	return c.Send(buf.Bytes())
}
