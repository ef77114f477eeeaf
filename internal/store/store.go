// Package store is the auth core's only path to persisted users, roles and
// log records. Handlers for plain CRUD talk to GORM directly; the
// authentication flows go through this adapter so driver errors never leak
// into auth decisions.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound means the query ran and matched nothing.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable means the store itself failed; the only error kind
	// where a retry makes sense.
	ErrUnavailable = errors.New("credential store unavailable")
)

type Store interface {
	FindUserByEmail(email string) (*models.User, error)
	FindUserByEmailOrUsername(email, username string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	FindRoleByName(name string) (*models.Role, error)
	CreateUser(u *models.User) error
	SaveUser(u *models.User) error
	SetResetToken(userID uint, token string, expires time.Time) error
	AppendAudit(rec *models.AuditRecord) error
	AppendUsage(rec *models.UsageLog) error
}

type gormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (s *gormStore) FindUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.Preload("Role").Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) FindUserByEmailOrUsername(email, username string) (*models.User, error) {
	var u models.User
	err := s.db.Where("email = ? OR username = ?", email, username).First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) FindUserByID(id uint) (*models.User, error) {
	var u models.User
	err := s.db.Preload("Role").First(&u, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormStore) FindRoleByName(name string) (*models.Role, error) {
	var r models.Role
	err := s.db.Where("name = ?", name).First(&r).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormStore) CreateUser(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

func (s *gormStore) SaveUser(u *models.User) error {
	// Associations stay untouched; only the user row is written.
	return translate(s.db.Omit(clause.Associations).Save(u).Error)
}

func (s *gormStore) SetResetToken(userID uint, token string, expires time.Time) error {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":         token,
			"reset_token_expires": expires,
		}).Error
	return translate(err)
}

func (s *gormStore) AppendAudit(rec *models.AuditRecord) error {
	return translate(s.db.Create(rec).Error)
}

func (s *gormStore) AppendUsage(rec *models.UsageLog) error {
	return translate(s.db.Create(rec).Error)
}
