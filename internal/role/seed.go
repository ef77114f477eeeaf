package role

import (
	"errors"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"gorm.io/gorm"
)

// SeedDefaultRoles creates the four panel roles if they are missing.
// Idempotent; safe to run on every boot.
func SeedDefaultRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Full access to users, subscriptions, usage and audit"},
		{Name: models.RoleReseller, Description: "Can manage subscriptions for their customers"},
		{Name: models.RoleDistributor, Description: "Can view subscriptions across resellers"},
		{Name: models.RoleUser, Description: "Regular panel user"},
	}

	for _, r := range roles {
		var existing models.Role
		err := db.Where("name = ?", r.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&r).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func ListRoles(db *gorm.DB) ([]models.Role, error) {
	var roles []models.Role
	if err := db.Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
