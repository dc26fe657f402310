// Package services holds the read-time aggregation logic dashboards display:
// averages, percentages, counts. Pure functions over already-loaded rows plus
// a few thin query helpers; there is no write path here.
package services

import (
	"time"

	"github.com/harshanas/peopledesk/internal/models"
	"gorm.io/gorm"
)

// AttendanceSummary is the per-status breakdown of a set of records.
type AttendanceSummary struct {
	Present int
	Absent  int
	Late    int
}

func SummarizeAttendance(records []models.AttendanceRecord) AttendanceSummary {
	var s AttendanceSummary
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			s.Present++
		case models.AttendanceAbsent:
			s.Absent++
		case models.AttendanceLate:
			s.Late++
		}
	}
	return s
}

// AttendanceRate is present-count over headcount, rounded to whole percent.
// Zero headcount yields zero rather than dividing.
func AttendanceRate(present int, headcount int64) int {
	if headcount <= 0 {
		return 0
	}
	return int(float64(present)/float64(headcount)*100 + 0.5)
}

// AverageScore returns the rounded mean score of results, 0 when empty.
func AverageScore(results []models.AssessmentResult) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
	}
	return (sum + len(results)/2) / len(results)
}

// PassedCount counts passing results.
func PassedCount(results []models.AssessmentResult) int {
	n := 0
	for _, r := range results {
		if r.Passed {
			n++
		}
	}
	return n
}

// ProgressToNext estimates career progress as the ratio of the current
// level's order to the next level's order, capped at 90 so a dashboard never
// claims a promotion is complete. With no current level assigned the
// progress shown is a flat 25.
func ProgressToNext(current, next *models.Level) int {
	if current == nil || next == nil || next.OrderIndex == 0 {
		return 25
	}
	p := int(float64(current.OrderIndex) / float64(next.OrderIndex) * 100)
	if p > 90 {
		return 90
	}
	return p
}

// NewThisMonth counts profiles whose join date falls in now's month.
func NewThisMonth(profiles []models.Profile, now time.Time) int {
	n := 0
	for _, p := range profiles {
		if p.JoinedAt.Month() == now.Month() && p.JoinedAt.Year() == now.Year() {
			n++
		}
	}
	return n
}

// CountByRole returns the number of profiles with the given role.
func CountByRole(db *gorm.DB, role string) int64 {
	var count int64
	db.Model(&models.Profile{}).Where("role = ?", role).Count(&count)
	return count
}

// DistinctDepartments returns the number of distinct non-empty departments.
func DistinctDepartments(db *gorm.DB) int64 {
	var count int64
	db.Model(&models.Profile{}).Where("department <> ''").Distinct("department").Count(&count)
	return count
}

// NextLevel returns the level immediately above current in the ladder, or
// the first level when current is nil. nil when current is already the top.
func NextLevel(db *gorm.DB, current *models.Level) *models.Level {
	var next models.Level
	q := db.Order("order_index")
	if current != nil {
		q = q.Where("order_index > ?", current.OrderIndex)
	}
	if err := q.First(&next).Error; err != nil {
		return nil
	}
	return &next
}
