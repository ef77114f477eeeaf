package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"user_id"`
	Username string `gorm:"size:50;uniqueIndex" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex" json:"email"`
	Password string `gorm:"size:255" json:"-"`
	RoleID   uint   `json:"role_id"`
	Role     *Role  `gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"role,omitempty"`

	// Password-reset state mirrored on the row; the signed token alone is
	// not enough to complete a reset.
	ResetToken        string     `gorm:"size:512" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
