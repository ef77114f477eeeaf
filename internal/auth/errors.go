package auth

import "errors"

var (
	ErrConflict             = errors.New("user with this email or username already exists")
	ErrInvalidRole          = errors.New("specified role does not exist")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrNotFound             = errors.New("user not found")

	// Reset-flow failures, in check order: signature/purpose, stored copy,
	// stored expiry.
	ErrResetTokenInvalid  = errors.New("password reset token is invalid or has expired")
	ErrResetTokenMismatch = errors.New("reset token not found or already used")
	ErrResetTokenExpired  = errors.New("reset token has expired")
)
