package models

import (
	"time"

	"gorm.io/datatypes"
)

type UsageLog struct {
	ID         uint           `gorm:"primaryKey" json:"log_id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	User       *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Action     string         `gorm:"size:100;index" json:"action"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	IPAddress  string         `gorm:"size:45" json:"ip_address,omitempty"`
	ActionTime time.Time      `gorm:"autoCreateTime;index" json:"action_time"`
}
