package models

import "time"

// Rating statuses.
const (
	RatingDraft     = "draft"
	RatingFinalized = "finalized"
)

// AssessmentRating is a periodic HR performance review of one employee.
// Score dimensions are 1..5; nil means not scored for the period.
type AssessmentRating struct {
	ID         string   `gorm:"primaryKey;size:36" json:"id"`
	EmployeeID string   `gorm:"size:36;not null;index" json:"employee_id"`
	Employee   *Profile `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	RatedBy    *string  `gorm:"size:36" json:"rated_by,omitempty"`

	RatingPeriod    string `gorm:"size:50;not null" json:"rating_period"` // e.g. "2026-Q3"
	OverallRating   *int   `json:"overall_rating,omitempty"`
	TechnicalSkills *int   `json:"technical_skills,omitempty"`
	Communication   *int   `json:"communication,omitempty"`
	Teamwork        *int   `json:"teamwork,omitempty"`
	Leadership      *int   `json:"leadership,omitempty"`
	ProblemSolving  *int   `json:"problem_solving,omitempty"`
	Punctuality     *int   `json:"punctuality,omitempty"`
	Initiative      *int   `json:"initiative,omitempty"`

	GoalsAchieved           string `gorm:"size:2000" json:"goals_achieved,omitempty"`
	AreasForImprovement     string `gorm:"size:2000" json:"areas_for_improvement,omitempty"`
	TrainingRecommendations string `gorm:"size:2000" json:"training_recommendations,omitempty"`
	HRComments              string `gorm:"size:2000" json:"hr_comments,omitempty"`

	Status      string     `gorm:"size:20;not null;default:draft" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
}

// PerformanceGoal is a goal set for an employee, by HR or by themselves.
type PerformanceGoal struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	EmployeeID         string     `gorm:"size:36;not null;index" json:"employee_id"`
	Employee           *Profile   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	SetBy              *string    `gorm:"size:36" json:"set_by,omitempty"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	Description        string     `gorm:"size:2000" json:"description,omitempty"`
	TargetDate         *time.Time `json:"target_date,omitempty"`
	Priority           string     `gorm:"size:20;default:medium" json:"priority"`
	Status             string     `gorm:"size:20;default:in_progress;index" json:"status"`
	ProgressPercentage int        `gorm:"default:0" json:"progress_percentage"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}
