package audit

import (
	"log"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"gorm.io/gorm"
)

// Record appends an audit entry. Best effort: a failed write is logged and
// never affects the operation being audited.
func Record(db *gorm.DB, userID *uint, action, details string, performedBy *uint, ip string) {
	rec := models.AuditRecord{
		UserID:      userID,
		Action:      action,
		Details:     details,
		PerformedBy: performedBy,
		IPAddress:   ip,
	}
	if err := db.Create(&rec).Error; err != nil {
		log.Printf("⚠️  Audit write failed (%s): %v", action, err)
	}
}
