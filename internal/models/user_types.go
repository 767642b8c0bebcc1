package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User Model with Pointers for Nullable Fields
type User struct {
	ID           int64  `json:"id" db:"id"`
	Role         string `json:"role" db:"role"` // "member" or "administrator"
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	FullName     string `json:"fullName" db:"full_name"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// --- Email change workflow ---
	// A pending change holds the new address plus a one-time token until the
	// user confirms from their current inbox.
	PendingEmail      *string    `json:"-" db:"pending_email"`
	EmailChangeToken  *string    `json:"-" db:"email_change_token"`
	EmailChangeExpiry *time.Time `json:"-" db:"email_change_expiry"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
