package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harshanas/peopledesk/internal/models"
	"gorm.io/gorm"
)

// Seed inserts the baseline career ladder and skill catalog. Idempotent:
// rows are matched by name and only created when missing.
func Seed(db *gorm.DB) {
	baseLevels := []models.Level{
		{Name: "Junior", Description: "Entry level; works under close guidance", OrderIndex: 1},
		{Name: "Associate", Description: "Delivers routine work independently", OrderIndex: 2},
		{Name: "Senior", Description: "Owns projects end to end, mentors juniors", OrderIndex: 3},
		{Name: "Lead", Description: "Leads a team and sets technical direction", OrderIndex: 4},
		{Name: "Principal", Description: "Shapes department-wide practice", OrderIndex: 5},
	}
	for _, lvl := range baseLevels {
		var existing models.Level
		if err := db.Where("name = ?", lvl.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			lvl.ID = uuid.NewString()
			lvl.CreatedAt = time.Now()
			db.Create(&lvl)
		}
	}

	baseSkills := []models.Skill{
		{Name: "Communication", Category: "Soft Skills"},
		{Name: "Teamwork", Category: "Soft Skills"},
		{Name: "Problem Solving", Category: "Soft Skills"},
		{Name: "Project Management", Category: "Management"},
		{Name: "Data Analysis", Category: "Technical"},
		{Name: "Software Development", Category: "Technical"},
	}
	for _, sk := range baseSkills {
		var existing models.Skill
		if err := db.Where("name = ?", sk.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			sk.ID = uuid.NewString()
			sk.CreatedAt = time.Now()
			db.Create(&sk)
		}
	}
}
