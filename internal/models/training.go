package models

import "time"

// TrainingProgram is a scheduled training session employees can enroll in.
type TrainingProgram struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description,omitempty"`
	StartDate   time.Time  `gorm:"index" json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TrainingProgress tracks one employee's participation in one program.
type TrainingProgress struct {
	ID          string           `gorm:"primaryKey;size:36" json:"id"`
	EmployeeID  string           `gorm:"size:36;not null;index:idx_training_participant,unique" json:"employee_id"`
	Employee    *Profile         `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ProgramID   string           `gorm:"size:36;not null;index:idx_training_participant,unique" json:"program_id"`
	Program     *TrainingProgram `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	Completed   bool             `gorm:"default:false" json:"completed"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
