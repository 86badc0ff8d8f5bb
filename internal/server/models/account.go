package models

import (
	"database/sql"
	"time"
)

// Account is a students row doubling as a login identity. PasswordHash is
// NULL for records an administrator created without a password.
type Account struct {
	ID           int64
	Email        string
	PasswordHash sql.NullString
	FullName     string
	RollNumber   string
	Department   string
	Year         string
	CreatedAt    time.Time
}

// AccountView is the public projection of an Account. It never carries
// credential material.
type AccountView struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	RollNumber string `json:"rollNumber"`
	Department string `json:"department"`
}

// View returns the public projection of a.
func (a *Account) View() AccountView {
	return AccountView{
		ID:         a.ID,
		Email:      a.Email,
		FullName:   a.FullName,
		RollNumber: a.RollNumber,
		Department: a.Department,
	}
}

// HasCredential reports whether the account can authenticate.
func (a *Account) HasCredential() bool {
	return a.PasswordHash.Valid && a.PasswordHash.String != ""
}
