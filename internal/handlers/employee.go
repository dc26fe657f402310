package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harshanas/peopledesk/internal/models"
	"github.com/harshanas/peopledesk/internal/policy"
	"github.com/harshanas/peopledesk/internal/services"
)

// EmployeeHandler serves the self-service pages. Every method assumes the
// role middleware already resolved the profile into the request context.
type EmployeeHandler struct {
	DB *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{DB: db}
}

func (h *EmployeeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	profile, ok := policy.ProfileFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}

	var results []models.AssessmentResult
	h.DB.WithContext(r.Context()).
		Preload("Assessment").
		Where("user_id = ?", profile.ID).
		Order("taken_at desc").
		Find(&results)

	var current *models.Level
	if profile.LevelID != nil {
		var lvl models.Level
		if err := h.DB.WithContext(r.Context()).First(&lvl, "id = ?", *profile.LevelID).Error; err == nil {
			current = &lvl
		}
	}
	next := services.NextLevel(h.DB.WithContext(r.Context()), current)

	var training []models.TrainingProgress
	h.DB.WithContext(r.Context()).
		Preload("Program").
		Where("employee_id = ?", profile.ID).
		Find(&training)
	completed := 0
	for _, tp := range training {
		if tp.Completed {
			completed++
		}
	}

	renderTemplate(w, r, "employee/dashboard", map[string]any{
		"Profile":           profile,
		"CurrentLevel":      current,
		"NextLevel":         next,
		"Progress":          services.ProgressToNext(current, next),
		"Results":           results,
		"AverageScore":      services.AverageScore(results),
		"PassedCount":       services.PassedCount(results),
		"TrainingTotal":     len(training),
		"TrainingCompleted": completed,
	})
}

func (h *EmployeeHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	profile, ok := policy.ProfileFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}
	var records []models.AttendanceRecord
	h.DB.WithContext(r.Context()).
		Where("employee_id = ?", profile.ID).
		Order("date desc").
		Limit(60).
		Find(&records)

	renderTemplate(w, r, "employee/attendance", map[string]any{
		"Profile": profile,
		"Records": records,
		"Summary": services.SummarizeAttendance(records),
	})
}

// Skills shows assessed proficiencies plus the employee's performance goals,
// and accepts new self-set goals.
func (h *EmployeeHandler) Skills(w http.ResponseWriter, r *http.Request) {
	profile, ok := policy.ProfileFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		goal := models.PerformanceGoal{
			ID:          uuid.NewString(),
			EmployeeID:  profile.ID,
			SetBy:       &profile.ID,
			Title:       title,
			Description: strings.TrimSpace(r.FormValue("description")),
			Priority:    "medium",
			Status:      "in_progress",
		}
		if raw := r.FormValue("target_date"); raw != "" {
			if target, err := time.Parse("2006-01-02", raw); err == nil {
				goal.TargetDate = &target
			}
		}
		if err := h.DB.WithContext(r.Context()).Create(&goal).Error; err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/employee/skills", http.StatusSeeOther)
		return
	}

	var skills []models.EmployeeSkill
	h.DB.WithContext(r.Context()).
		Preload("Skill").
		Where("employee_id = ?", profile.ID).
		Order("proficiency_level desc").
		Find(&skills)
	expert := 0
	for _, s := range skills {
		if s.Expert() {
			expert++
		}
	}
	var goals []models.PerformanceGoal
	h.DB.WithContext(r.Context()).
		Where("employee_id = ?", profile.ID).
		Order("created_at desc").
		Find(&goals)
	renderTemplate(w, r, "employee/skills", map[string]any{
		"Profile": profile,
		"Skills":  skills,
		"Expert":  expert,
		"Goals":   goals,
	})
}

func (h *EmployeeHandler) Training(w http.ResponseWriter, r *http.Request) {
	profile, ok := policy.ProfileFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}
	var progress []models.TrainingProgress
	h.DB.WithContext(r.Context()).
		Preload("Program").
		Where("employee_id = ?", profile.ID).
		Order("started_at desc").
		Find(&progress)

	renderTemplate(w, r, "employee/training", map[string]any{
		"Profile":  profile,
		"Progress": progress,
	})
}

func (h *EmployeeHandler) Assessments(w http.ResponseWriter, r *http.Request) {
	profile, ok := policy.ProfileFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}
	var assessments []models.Assessment
	q := h.DB.WithContext(r.Context()).Preload("Level").Order("title")
	if profile.LevelID != nil {
		q = q.Where("level_id = ? OR level_id IS NULL", *profile.LevelID)
	}
	q.Find(&assessments)

	var results []models.AssessmentResult
	h.DB.WithContext(r.Context()).
		Preload("Assessment").
		Where("user_id = ?", profile.ID).
		Order("taken_at desc").
		Find(&results)

	// Latest attempt per assessment for the list view.
	latest := map[string]models.AssessmentResult{}
	for _, res := range results {
		if _, seen := latest[res.AssessmentID]; !seen {
			latest[res.AssessmentID] = res
		}
	}

	renderTemplate(w, r, "employee/assessments", map[string]any{
		"Profile":     profile,
		"Assessments": assessments,
		"Results":     results,
		"Latest":      latest,
	})
}

func (h *EmployeeHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	profile, ok := policy.ProfileFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}
	weekStart, weekEnd := currentWeek(time.Now())
	var upcoming []models.TrainingProgram
	h.DB.WithContext(r.Context()).
		Where("start_date >= ? AND start_date < ?", weekStart, weekEnd).
		Order("start_date").
		Find(&upcoming)

	renderTemplate(w, r, "employee/schedule", map[string]any{
		"Profile":   profile,
		"Upcoming":  upcoming,
		"WeekStart": weekStart,
		"WeekEnd":   weekEnd.AddDate(0, 0, -1),
	})
}

// currentWeek returns the Sunday-to-Sunday bounds containing t, the end
// exclusive.
func currentWeek(t time.Time) (time.Time, time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

// Profile shows the employee's own record and accepts updates to the
// self-editable fields only. Role, employee code, department, position, and
// level stay HR-managed.
func (h *EmployeeHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, ok := policy.ProfileFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, policy.LoginPath, http.StatusSeeOther)
		return
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		updates := map[string]any{
			"qualification": strings.TrimSpace(r.FormValue("qualification")),
			"experience":    strings.TrimSpace(r.FormValue("experience")),
			"contact_info":  strings.TrimSpace(r.FormValue("contact_info")),
		}
		if err := h.DB.WithContext(r.Context()).
			Model(&models.Profile{}).
			Where("id = ?", profile.ID).
			Updates(updates).Error; err != nil {
			renderTemplate(w, r, "employee/profile", map[string]any{
				"Profile": profile,
				"Error":   "could not save profile",
			})
			return
		}
		http.Redirect(w, r, "/employee/profile", http.StatusSeeOther)
		return
	}

	var level *models.Level
	if profile.LevelID != nil {
		var lvl models.Level
		if err := h.DB.WithContext(r.Context()).First(&lvl, "id = ?", *profile.LevelID).Error; err == nil {
			level = &lvl
		}
	}
	renderTemplate(w, r, "employee/profile", map[string]any{
		"Profile": profile,
		"Level":   level,
	})
}
