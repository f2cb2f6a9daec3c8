package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"varal-dos-sonhos/mapper"
	"varal-dos-sonhos/model"
)

var (
	passwordHash   = mapper.Names(model.UserPasswordHash)
	legacyPassword = mapper.Names(model.UserPassword)
)

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// checkPassword prefers the bcrypt hash. Records created before hashing was
// introduced only carry the plain value, compared in constant time.
func checkPassword(f model.Fields, password string) bool {
	if hash := passwordHash.String(f, ""); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	if legacy := legacyPassword.String(f, ""); legacy != "" {
		return subtle.ConstantTimeCompare([]byte(legacy), []byte(password)) == 1
	}
	return false
}
