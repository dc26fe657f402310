package models

import "time"

// Profile is the application-level user record, distinct from the credential
// Account. Exactly one per identity; ID equals the owning Account's ID.
// Role and ID are never mutated after first assignment.
type Profile struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id"`
	FullName      string  `gorm:"size:255;not null" json:"full_name"`
	Role          string  `gorm:"size:20;not null;index" json:"role"` // "hr" or "employee"
	EmployeeCode  *string `gorm:"uniqueIndex;size:20" json:"employee_code,omitempty"`
	Department    string  `gorm:"size:100" json:"department,omitempty"`
	Position      string  `gorm:"size:100" json:"position,omitempty"`
	LevelID       *string `gorm:"size:36;index" json:"level_id,omitempty"`
	Level         *Level  `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	Qualification string  `gorm:"size:500" json:"qualification,omitempty"`
	Experience    string  `gorm:"size:500" json:"experience,omitempty"`
	Remarks       string  `gorm:"size:1000" json:"remarks,omitempty"`
	// ContactInfo is free-form JSON text; the profile has no first-class
	// email column, email is the credential store's concern.
	ContactInfo string    `gorm:"size:1000" json:"contact_info,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Level is an ordered career level used for display and progress computation.
type Level struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	OrderIndex  int       `gorm:"not null;index" json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
