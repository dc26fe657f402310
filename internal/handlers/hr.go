package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harshanas/peopledesk/internal/identity"
	"github.com/harshanas/peopledesk/internal/models"
	"github.com/harshanas/peopledesk/internal/policy"
	"github.com/harshanas/peopledesk/internal/services"
	"github.com/harshanas/peopledesk/validation"
)

// HRHandler serves the management pages. The role middleware guarantees the
// context profile is an HR profile before any of these run.
type HRHandler struct {
	DB       *gorm.DB
	Resolver *identity.Resolver
}

func NewHRHandler(db *gorm.DB, resolver *identity.Resolver) *HRHandler {
	return &HRHandler{DB: db, Resolver: resolver}
}

func (h *HRHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, _ := policy.ProfileFromContext(ctx)
	db := h.DB.WithContext(ctx)

	headcount := services.CountByRole(db, string(identity.RoleEmployee))
	departments := services.DistinctDepartments(db)

	var employees []models.Profile
	db.Where("role = ?", string(identity.RoleEmployee)).Find(&employees)

	today := models.DateKey(time.Now())
	var todays []models.AttendanceRecord
	db.Where("date = ?", today).Find(&todays)
	summary := services.SummarizeAttendance(todays)

	var recentResults []models.AssessmentResult
	db.Preload("User").Preload("Assessment").
		Order("taken_at desc").Limit(8).Find(&recentResults)

	var draftRatings int64
	db.Model(&models.AssessmentRating{}).Where("status = ?", models.RatingDraft).Count(&draftRatings)

	renderTemplate(w, r, "hr/dashboard", map[string]any{
		"Profile":        profile,
		"Headcount":      headcount,
		"Departments":    departments,
		"NewThisMonth":   services.NewThisMonth(employees, time.Now()),
		"AttendanceRate": services.AttendanceRate(summary.Present, headcount),
		"Today":          summary,
		"DraftRatings":   draftRatings,
		"RecentResults":  recentResults,
	})
}

func (h *HRHandler) Employees(w http.ResponseWriter, r *http.Request) {
	profile, _ := policy.ProfileFromContext(r.Context())
	db := h.DB.WithContext(r.Context())

	q := db.Preload("Level").Where("role = ?", string(identity.RoleEmployee))
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(full_name) LIKE ? OR lower(department) LIKE ? OR lower(position) LIKE ?", like, like, like)
	}
	var employees []models.Profile
	q.Order("full_name").Find(&employees)

	renderTemplate(w, r, "hr/employees", map[string]any{
		"Profile":   profile,
		"Employees": employees,
		"Search":    search,
	})
}

func (h *HRHandler) NewEmployee(w http.ResponseWriter, r *http.Request) {
	profile, _ := policy.ProfileFromContext(r.Context())
	var levels []models.Level
	h.DB.WithContext(r.Context()).Order("order_index").Find(&levels)
	renderTemplate(w, r, "hr/employee_new", map[string]any{
		"Profile": profile,
		"Levels":  levels,
	})
}

// EditEmployee renders and applies edits to an employee's HR-managed fields.
// Identity and role are immutable here; the form never carries them.
func (h *HRHandler) EditEmployee(w http.ResponseWriter, r *http.Request) {
	profile, _ := policy.ProfileFromContext(r.Context())
	db := h.DB.WithContext(r.Context())

	id := r.PathValue("id")
	target := h.Resolver.ProfileByID(r.Context(), id)
	if target == nil {
		http.NotFound(w, r)
		return
	}

	var levels []models.Level
	db.Order("order_index").Find(&levels)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fullName := strings.TrimSpace(r.FormValue("full_name"))
		v := validation.Violations{}
		validation.Required("full_name", fullName, v)
		if !v.Empty() {
			renderTemplate(w, r, "hr/employee_edit", map[string]any{
				"Profile": profile, "Employee": target, "Levels": levels,
				"Error": "full name is required",
			})
			return
		}

		updates := map[string]any{
			"full_name":     fullName,
			"department":    strings.TrimSpace(r.FormValue("department")),
			"position":      strings.TrimSpace(r.FormValue("position")),
			"qualification": strings.TrimSpace(r.FormValue("qualification")),
			"experience":    strings.TrimSpace(r.FormValue("experience")),
			"remarks":       strings.TrimSpace(r.FormValue("remarks")),
		}
		if code := strings.TrimSpace(r.FormValue("employee_code")); code != "" {
			updates["employee_code"] = code
		}
		if levelID := r.FormValue("level_id"); levelID != "" {
			updates["level_id"] = levelID
		} else {
			updates["level_id"] = nil
		}

		if err := db.Model(&models.Profile{}).Where("id = ?", target.ID).Updates(updates).Error; err != nil {
			renderTemplate(w, r, "hr/employee_edit", map[string]any{
				"Profile": profile, "Employee": target, "Levels": levels,
				"Error": "could not save changes (employee code may be taken)",
			})
			return
		}
		http.Redirect(w, r, "/hr/employees", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "hr/employee_edit", map[string]any{
		"Profile":  profile,
		"Employee": target,
		"Levels":   levels,
	})
}

// RateEmployee renders the periodic review form and records a rating.
func (h *HRHandler) RateEmployee(w http.ResponseWriter, r *http.Request) {
	profile, _ := policy.ProfileFromContext(r.Context())
	db := h.DB.WithContext(r.Context())

	id := r.PathValue("id")
	target := h.Resolver.ProfileByID(r.Context(), id)
	if target == nil {
		http.NotFound(w, r)
		return
	}

	var history []models.AssessmentRating
	db.Where("employee_id = ?", target.ID).Order("created_at desc").Find(&history)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		period := strings.TrimSpace(r.FormValue("rating_period"))
		v := validation.Violations{}
		validation.Required("rating_period", period, v)

		rating := models.AssessmentRating{
			ID:           uuid.NewString(),
			EmployeeID:   target.ID,
			RatingPeriod: period,
			Status:       models.RatingDraft,

			GoalsAchieved:           strings.TrimSpace(r.FormValue("goals_achieved")),
			AreasForImprovement:     strings.TrimSpace(r.FormValue("areas_for_improvement")),
			TrainingRecommendations: strings.TrimSpace(r.FormValue("training_recommendations")),
			HRComments:              strings.TrimSpace(r.FormValue("hr_comments")),
		}
		if profile != nil {
			rating.RatedBy = &profile.ID
		}

		dims := map[string]**int{
			"overall_rating":   &rating.OverallRating,
			"technical_skills": &rating.TechnicalSkills,
			"communication":    &rating.Communication,
			"teamwork":         &rating.Teamwork,
			"leadership":       &rating.Leadership,
			"problem_solving":  &rating.ProblemSolving,
			"punctuality":      &rating.Punctuality,
			"initiative":       &rating.Initiative,
		}
		for field, dst := range dims {
			raw := r.FormValue(field)
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				v.Add(field, "must be a number")
				continue
			}
			validation.IntRange(field, n, 1, 5, v)
			score := n
			*dst = &score
		}

		if r.FormValue("finalize") == "1" {
			now := time.Now()
			rating.Status = models.RatingFinalized
			rating.FinalizedAt = &now
		}

		if !v.Empty() {
			renderTemplate(w, r, "hr/employee_rate", map[string]any{
				"Profile": profile, "Employee": target, "History": history,
				"Error": "scores must be between 1 and 5 and a period is required",
			})
			return
		}
		if err := db.Create(&rating).Error; err != nil {
			renderTemplate(w, r, "hr/employee_rate", map[string]any{
				"Profile": profile, "Employee": target, "History": history,
				"Error": "could not save rating",
			})
			return
		}
		http.Redirect(w, r, "/hr/employees/"+target.ID+"/rate", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "hr/employee_rate", map[string]any{
		"Profile":  profile,
		"Employee": target,
		"History":  history,
	})
}

// Attendance shows the org-wide view for a day and records marks. Marking
// the same employee twice for one day overwrites the earlier status.
func (h *HRHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	profile, _ := policy.ProfileFromContext(r.Context())
	db := h.DB.WithContext(r.Context())

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		employeeID := r.FormValue("employee_id")
		status := r.FormValue("status")
		date := strings.TrimSpace(r.FormValue("date"))
		if date == "" {
			date = models.DateKey(time.Now())
		}

		v := validation.Violations{}
		validation.Required("employee_id", employeeID, v)
		validation.OneOf("status", status, []string{
			models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate,
		}, v)
		if !v.Empty() {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		record := models.AttendanceRecord{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Date:       date,
			Status:     status,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&record).Error
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/hr/attendance?date="+date, http.StatusSeeOther)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = models.DateKey(time.Now())
	}
	var records []models.AttendanceRecord
	db.Preload("Employee").Where("date = ?", date).Find(&records)

	marked := map[string]string{}
	for _, rec := range records {
		marked[rec.EmployeeID] = rec.Status
	}

	var employees []models.Profile
	db.Where("role = ?", string(identity.RoleEmployee)).Order("full_name").Find(&employees)

	renderTemplate(w, r, "hr/attendance", map[string]any{
		"Profile":   profile,
		"Date":      date,
		"Records":   records,
		"Marked":    marked,
		"Employees": employees,
		"Summary":   services.SummarizeAttendance(records),
	})
}

// Skills lists the catalog with per-employee proficiencies and records
// assessments. Re-assessing a pair overwrites the earlier proficiency.
func (h *HRHandler) Skills(w http.ResponseWriter, r *http.Request) {
	profile, _ := policy.ProfileFromContext(r.Context())
	db := h.DB.WithContext(r.Context())

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		employeeID := r.FormValue("employee_id")
		skillID := r.FormValue("skill_id")
		level, convErr := strconv.Atoi(r.FormValue("proficiency_level"))

		v := validation.Violations{}
		validation.Required("employee_id", employeeID, v)
		validation.Required("skill_id", skillID, v)
		if convErr != nil {
			v.Add("proficiency_level", "must be a number")
		} else {
			validation.IntRange("proficiency_level", level, 1, 10, v)
		}
		if !v.Empty() {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		es := models.EmployeeSkill{
			ID:               uuid.NewString(),
			EmployeeID:       employeeID,
			SkillID:          skillID,
			ProficiencyLevel: level,
			AssessedAt:       time.Now(),
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "skill_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"proficiency_level", "assessed_at", "updated_at"}),
		}).Create(&es).Error
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/hr/skills", http.StatusSeeOther)
		return
	}

	var skills []models.Skill
	db.Order("name").Find(&skills)
	var assessed []models.EmployeeSkill
	db.Preload("Employee").Preload("Skill").Order("assessed_at desc").Find(&assessed)
	var employees []models.Profile
	db.Where("role = ?", string(identity.RoleEmployee)).Order("full_name").Find(&employees)

	renderTemplate(w, r, "hr/skills", map[string]any{
		"Profile":   profile,
		"Skills":    skills,
		"Assessed":  assessed,
		"Employees": employees,
	})
}

// Training lists programs with enrollment counts and schedules new ones.
func (h *HRHandler) Training(w http.ResponseWriter, r *http.Request) {
	profile, _ := policy.ProfileFromContext(r.Context())
	db := h.DB.WithContext(r.Context())

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		title := strings.TrimSpace(r.FormValue("title"))
		startRaw := r.FormValue("start_date")

		v := validation.Violations{}
		validation.Required("title", title, v)
		validation.Required("start_date", startRaw, v)
		start, convErr := time.Parse("2006-01-02", startRaw)
		if convErr != nil {
			v.Add("start_date", "must be a date (YYYY-MM-DD)")
		}
		if !v.Empty() {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		program := models.TrainingProgram{
			ID:          uuid.NewString(),
			Title:       title,
			Description: strings.TrimSpace(r.FormValue("description")),
			StartDate:   start,
		}
		if endRaw := r.FormValue("end_date"); endRaw != "" {
			if end, err := time.Parse("2006-01-02", endRaw); err == nil {
				program.EndDate = &end
			}
		}
		if err := db.Create(&program).Error; err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/hr/training", http.StatusSeeOther)
		return
	}

	var programs []models.TrainingProgram
	db.Order("start_date desc").Find(&programs)

	type programRow struct {
		Program   models.TrainingProgram
		Enrolled  int64
		Completed int64
	}
	rows := make([]programRow, 0, len(programs))
	for _, p := range programs {
		var enrolled, completed int64
		db.Model(&models.TrainingProgress{}).Where("program_id = ?", p.ID).Count(&enrolled)
		db.Model(&models.TrainingProgress{}).Where("program_id = ? AND completed", p.ID).Count(&completed)
		rows = append(rows, programRow{Program: p, Enrolled: enrolled, Completed: completed})
	}

	renderTemplate(w, r, "hr/training", map[string]any{
		"Profile":  profile,
		"Programs": rows,
	})
}
