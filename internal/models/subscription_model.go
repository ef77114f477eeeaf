package models

import (
	"time"
)

const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// PlanNames lists the plans a subscription can be created with.
var PlanNames = []string{"Free", "Basic", "Pro", "Enterprise"}

type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"subscription_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PlanName  string    `gorm:"size:50" json:"plan_name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
