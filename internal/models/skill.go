package models

import "time"

type Skill struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Category  string    `gorm:"size:100;index" json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeSkill records an assessed proficiency (1..10) of one employee in one skill.
type EmployeeSkill struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	EmployeeID       string    `gorm:"size:36;not null;index:idx_employee_skill,unique" json:"employee_id"`
	Employee         *Profile  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	SkillID          string    `gorm:"size:36;not null;index:idx_employee_skill,unique" json:"skill_id"`
	Skill            *Skill    `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	ProficiencyLevel int       `gorm:"not null" json:"proficiency_level"`
	AssessedAt       time.Time `json:"assessed_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Expert reports whether the proficiency is in the expert band.
func (s EmployeeSkill) Expert() bool { return s.ProficiencyLevel >= 8 }
