package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Service errors
var (
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrInvalidInput             = errors.New("invalid input")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
	ErrInsufficientBalance      = errors.New("insufficient points balance")
	ErrMissingLinkedAccount     = errors.New("missing linked points account")
	ErrAlreadySettled           = errors.New("transaction already settled")
	ErrNotFound                 = errors.New("not found")
	ErrAlreadyExists            = errors.New("already exists")
	ErrInvalidCredentials       = errors.New("invalid email or password")
)

// wrapLookup maps gorm's missing-row error onto ErrNotFound.
func wrapLookup(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s: %w", what, err)
}
