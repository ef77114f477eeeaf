package models

import (
	"time"
)

const (
	RoleAdmin       = "Admin"
	RoleReseller    = "Reseller"
	RoleDistributor = "Distributor"
	RoleUser        = "User"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"role_id"`
	Name        string    `gorm:"size:50;uniqueIndex" json:"role_name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
