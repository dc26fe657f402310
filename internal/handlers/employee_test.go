package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harshanas/peopledesk/internal/models"
)

func TestEmployeeDashboardShowsResults(t *testing.T) {
	conn := setupHandlerDB(t)
	emp := seedProfile(t, conn, "employee", "Worker One")

	assessment := models.Assessment{ID: uuid.NewString(), Title: "Go Fundamentals", PassingScore: 70}
	if err := conn.Create(&assessment).Error; err != nil {
		t.Fatalf("seed assessment: %v", err)
	}
	result := models.AssessmentResult{
		ID: uuid.NewString(), UserID: emp.ID, AssessmentID: assessment.ID,
		Score: 85, Passed: true, TakenAt: time.Now(),
	}
	if err := conn.Create(&result).Error; err != nil {
		t.Fatalf("seed result: %v", err)
	}

	h := NewEmployeeHandler(conn)
	r := asProfile(httptest.NewRequest(http.MethodGet, "/employee/dashboard", nil), emp)
	w := httptest.NewRecorder()
	h.Dashboard(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Go Fundamentals") || !strings.Contains(body, "85%") {
		t.Fatal("dashboard missing assessment result")
	}
}

func TestEmployeeAttendancePageSummarizes(t *testing.T) {
	conn := setupHandlerDB(t)
	emp := seedProfile(t, conn, "employee", "Worker One")
	for i, status := range []string{models.AttendancePresent, models.AttendancePresent, models.AttendanceLate} {
		rec := models.AttendanceRecord{
			ID:         uuid.NewString(),
			EmployeeID: emp.ID,
			Date:       models.DateKey(time.Now().AddDate(0, 0, -i)),
			Status:     status,
		}
		if err := conn.Create(&rec).Error; err != nil {
			t.Fatalf("seed attendance: %v", err)
		}
	}

	h := NewEmployeeHandler(conn)
	r := asProfile(httptest.NewRequest(http.MethodGet, "/employee/attendance", nil), emp)
	w := httptest.NewRecorder()
	h.Attendance(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Late") {
		t.Fatal("attendance page missing late entry")
	}
}

func TestScheduleShowsOnlyCurrentWeek(t *testing.T) {
	conn := setupHandlerDB(t)
	emp := seedProfile(t, conn, "employee", "Worker One")

	weekStart, _ := currentWeek(time.Now())
	thisWeek := models.TrainingProgram{
		ID: uuid.NewString(), Title: "Sprint Kickoff", StartDate: weekStart.AddDate(0, 0, 1),
	}
	nextMonth := models.TrainingProgram{
		ID: uuid.NewString(), Title: "Quarterly Review", StartDate: weekStart.AddDate(0, 1, 0),
	}
	lastWeek := models.TrainingProgram{
		ID: uuid.NewString(), Title: "Old Onboarding", StartDate: weekStart.AddDate(0, 0, -3),
	}
	for _, p := range []models.TrainingProgram{thisWeek, nextMonth, lastWeek} {
		if err := conn.Create(&p).Error; err != nil {
			t.Fatalf("seed program: %v", err)
		}
	}

	h := NewEmployeeHandler(conn)
	r := asProfile(httptest.NewRequest(http.MethodGet, "/employee/schedule", nil), emp)
	w := httptest.NewRecorder()
	h.Schedule(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Sprint Kickoff") {
		t.Fatal("schedule missing current-week program")
	}
	if strings.Contains(body, "Quarterly Review") || strings.Contains(body, "Old Onboarding") {
		t.Fatal("schedule leaked programs outside the current week")
	}
}

func TestEmployeeProfileUpdateOnlyTouchesOwnFields(t *testing.T) {
	conn := setupHandlerDB(t)
	emp := seedProfile(t, conn, "employee", "Worker One")
	emp.Department = "Engineering"
	if err := conn.Save(emp).Error; err != nil {
		t.Fatalf("seed department: %v", err)
	}

	h := NewEmployeeHandler(conn)
	r := asProfile(postForm("/employee/profile", url.Values{
		"qualification": {"BSc Computer Science"},
		"experience":    {"4 years backend"},
		"contact_info":  {`{"phone":"0771234567"}`},
		// These must be ignored even if submitted.
		"department": {"Board of Directors"},
		"role":       {"hr"},
	}), emp)
	w := httptest.NewRecorder()
	h.Profile(w, r)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}

	var updated models.Profile
	if err := conn.First(&updated, "id = ?", emp.ID).Error; err != nil {
		t.Fatalf("profile lookup: %v", err)
	}
	if updated.Qualification != "BSc Computer Science" {
		t.Fatalf("qualification not saved: %+v", updated)
	}
	if updated.Department != "Engineering" || updated.Role != "employee" {
		t.Fatalf("HR-managed fields must not change: %+v", updated)
	}
}

func TestEmployeeAddsOwnGoal(t *testing.T) {
	conn := setupHandlerDB(t)
	emp := seedProfile(t, conn, "employee", "Worker One")

	h := NewEmployeeHandler(conn)
	r := asProfile(postForm("/employee/skills", url.Values{
		"title":       {"Learn Kubernetes"},
		"target_date": {"2026-12-31"},
	}), emp)
	w := httptest.NewRecorder()
	h.Skills(w, r)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}

	var goal models.PerformanceGoal
	if err := conn.First(&goal, "employee_id = ?", emp.ID).Error; err != nil {
		t.Fatalf("goal not stored: %v", err)
	}
	if goal.Title != "Learn Kubernetes" || goal.TargetDate == nil {
		t.Fatalf("unexpected goal: %+v", goal)
	}
	if goal.SetBy == nil || *goal.SetBy != emp.ID {
		t.Fatalf("goal must record its setter: %+v", goal)
	}
}

func TestEmployeeAssessmentsFilteredByLevel(t *testing.T) {
	conn := setupHandlerDB(t)
	level := models.Level{ID: uuid.NewString(), Name: "Junior", OrderIndex: 1}
	other := models.Level{ID: uuid.NewString(), Name: "Senior", OrderIndex: 3}
	if err := conn.Create(&level).Error; err != nil {
		t.Fatalf("seed level: %v", err)
	}
	if err := conn.Create(&other).Error; err != nil {
		t.Fatalf("seed level: %v", err)
	}

	emp := seedProfile(t, conn, "employee", "Worker One")
	emp.LevelID = &level.ID
	if err := conn.Save(emp).Error; err != nil {
		t.Fatalf("assign level: %v", err)
	}

	mine := models.Assessment{ID: uuid.NewString(), Title: "Junior Gate", LevelID: &level.ID, PassingScore: 60}
	open := models.Assessment{ID: uuid.NewString(), Title: "Open Quiz", PassingScore: 50}
	theirs := models.Assessment{ID: uuid.NewString(), Title: "Senior Gate", LevelID: &other.ID, PassingScore: 80}
	for _, a := range []*models.Assessment{&mine, &open, &theirs} {
		if err := conn.Create(a).Error; err != nil {
			t.Fatalf("seed assessment: %v", err)
		}
	}

	h := NewEmployeeHandler(conn)
	r := asProfile(httptest.NewRequest(http.MethodGet, "/employee/assessments", nil), emp)
	w := httptest.NewRecorder()
	h.Assessments(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Junior Gate") || !strings.Contains(body, "Open Quiz") {
		t.Fatal("expected own-level and unleveled assessments")
	}
	if strings.Contains(body, "Senior Gate") {
		t.Fatal("other level's assessment must not appear")
	}
}
