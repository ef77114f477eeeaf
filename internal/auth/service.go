package auth

import (
	"errors"
	"fmt"
	"log"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/config"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/mailer"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/store"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/token"
)

// Service orchestrates the authentication flows over the credential store,
// the token service and the notification channel. Each call is a single
// request-scoped state machine, not a long-lived session.
type Service struct {
	store       store.Store
	tokens      *token.Service
	mailer      mailer.Mailer
	bcryptCost  int
	frontendURL string
}

func NewService(st store.Store, tokens *token.Service, m mailer.Mailer, cfg *config.Config) *Service {
	return &Service{
		store:       st,
		tokens:      tokens,
		mailer:      m,
		bcryptCost:  cfg.BcryptCost,
		frontendURL: cfg.FrontendURL,
	}
}

// Identity is the public projection of an account; it never carries the
// password hash.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

func (s *Service) Register(in RegisterInput) (*Identity, error) {
	_, err := s.store.FindUserByEmailOrUsername(in.Email, in.Username)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	roleName := in.Role
	if roleName == "" {
		roleName = models.RoleUser
	}
	role, err := s.store.FindRoleByName(roleName)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidRole
	}
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		RoleID:   role.ID,
	}
	if err := s.store.CreateUser(u); err != nil {
		return nil, err
	}

	s.audit(u.ID, "user_registered", "New user registered: "+in.Email, nil)

	return &Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     role.Name,
	}, nil
}

// Login responds with the same ErrAuthenticationFailed whether the email is
// unknown or the password wrong, so callers cannot probe for accounts.
func (s *Service) Login(email, password, ip string) (string, *Identity, error) {
	u, err := s.store.FindUserByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrAuthenticationFailed
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", nil, ErrAuthenticationFailed
	}

	tok, err := s.tokens.IssueSession(u.ID, u.Username, u.Role.Name)
	if err != nil {
		return "", nil, err
	}

	s.usage(u.ID, "user_login", ip)

	return tok, &Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role.Name,
	}, nil
}

// Logout only records the event. The issued token stays valid until its
// natural expiry; there is no revocation list. Known limitation.
func (s *Service) Logout(userID uint, ip string) {
	s.usage(userID, "user_logout", ip)
}

// Profile is the Identity plus account timestamps, returned by /me.
type Profile struct {
	Identity
	CreatedAt string `json:"created_at"`
}

func (s *Service) CurrentUser(userID uint) (*Profile, error) {
	u, err := s.store.FindUserByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Identity: Identity{
			UserID:   u.ID,
			Username: u.Username,
			Email:    u.Email,
		},
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if u.Role != nil {
		p.Role = u.Role.Name
	}
	return p, nil
}

// ForgotPassword returns nil for unknown emails: the caller-visible outcome
// must be identical whether or not the account exists.
func (s *Service) ForgotPassword(email string) error {
	u, err := s.store.FindUserByEmail(email)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	tok, err := s.tokens.IssueReset(u.ID)
	if err != nil {
		return err
	}

	expires := s.tokens.Now().Add(token.ResetTokenTTL)
	if err := s.store.SetResetToken(u.ID, tok, expires); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, tok)
	if err := s.mailer.SendPasswordResetLink(u.Email, link); err != nil {
		log.Printf("⚠️  Failed to send reset link to %s: %v", u.Email, err)
	}

	s.audit(u.ID, "password_reset_requested", "", nil)
	return nil
}

// ResetPassword honors a reset only when the signed token verifies AND it
// byte-matches the copy stored on the account AND the stored expiry has not
// passed. Completing a reset clears the stored copy, making tokens
// single-use.
func (s *Service) ResetPassword(tokenStr, newPassword string) error {
	userID, err := s.tokens.VerifyReset(tokenStr)
	if err != nil {
		return ErrResetTokenInvalid
	}

	u, err := s.store.FindUserByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrResetTokenMismatch
	}
	if err != nil {
		return err
	}

	if u.ResetToken == "" || u.ResetToken != tokenStr {
		return ErrResetTokenMismatch
	}
	if u.ResetTokenExpires == nil || s.tokens.Now().After(*u.ResetTokenExpires) {
		return ErrResetTokenExpired
	}

	hash, err := HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	u.Password = hash
	u.ResetToken = ""
	u.ResetTokenExpires = nil
	if err := s.store.SaveUser(u); err != nil {
		return err
	}

	s.audit(u.ID, "password_reset_completed", "", nil)
	return nil
}

// audit and usage writes are best effort; a failed write never changes the
// outcome of the operation that triggered it.
func (s *Service) audit(userID uint, action, details string, performedBy *uint) {
	rec := &models.AuditRecord{
		UserID:      &userID,
		Action:      action,
		Details:     details,
		PerformedBy: performedBy,
	}
	if err := s.store.AppendAudit(rec); err != nil {
		log.Printf("⚠️  Audit write failed (%s): %v", action, err)
	}
}

func (s *Service) usage(userID uint, action, ip string) {
	rec := &models.UsageLog{
		UserID:    userID,
		Action:    action,
		IPAddress: ip,
	}
	if err := s.store.AppendUsage(rec); err != nil {
		log.Printf("⚠️  Usage write failed (%s): %v", action, err)
	}
}
