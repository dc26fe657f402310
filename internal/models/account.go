package models

import "time"

// Account is the credential store's representation of a user. PasswordHash is
// empty for identities created through a third-party provider sign-in.
type Account struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	FullName     string `gorm:"size:255" json:"full_name,omitempty"`
	// RoleHint is sign-up metadata, not an authorization source of record;
	// the profile row wins once it exists.
	RoleHint  string    `gorm:"size:20" json:"role_hint,omitempty"`
	Provider  string    `gorm:"size:50" json:"provider,omitempty"` // empty for password accounts
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
