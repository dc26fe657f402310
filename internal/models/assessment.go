package models

import "time"

// Assessment is a test tied to a career level.
type Assessment struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"size:1000" json:"description,omitempty"`
	LevelID      *string   `gorm:"size:36;index" json:"level_id,omitempty"`
	Level        *Level    `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	PassingScore int       `gorm:"not null" json:"passing_score"` // percentage 0..100
	TimeLimit    *int      `json:"time_limit,omitempty"`          // minutes
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AssessmentResult is one attempt at an assessment.
type AssessmentResult struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	UserID       string      `gorm:"size:36;not null;index" json:"user_id"`
	User         *Profile    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssessmentID string      `gorm:"size:36;not null;index" json:"assessment_id"`
	Assessment   *Assessment `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	Score        int         `gorm:"not null" json:"score"` // percentage 0..100
	Passed       bool        `gorm:"not null" json:"passed"`
	TakenAt      time.Time   `gorm:"index" json:"taken_at"`
	CreatedAt    time.Time   `json:"created_at"`
}
