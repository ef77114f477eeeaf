package models

import (
	"time"
)

// AuditRecord keeps its row when the referenced user is deleted, so the
// trail stays complete.
type AuditRecord struct {
	ID          uint      `gorm:"primaryKey" json:"audit_id"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Action      string    `gorm:"size:100;index" json:"action_performed"`
	Details     string    `json:"details,omitempty"`
	PerformedBy *uint     `json:"performed_by,omitempty"`
	IPAddress   string    `gorm:"size:45" json:"ip_address,omitempty"`
	ActionTime  time.Time `gorm:"autoCreateTime;index" json:"action_time"`
}
