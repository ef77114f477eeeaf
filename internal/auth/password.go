package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword computes a salted bcrypt digest. Cost 0 falls back to the
// bcrypt default (10).
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash never errors on mismatch, it only reports false.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
