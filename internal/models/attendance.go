package models

import "time"

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// AttendanceRecord is one employee's attendance for one calendar day.
// Date is stored as YYYY-MM-DD so daily equality filters stay index-friendly.
type AttendanceRecord struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	EmployeeID string     `gorm:"size:36;not null;index:idx_attendance_employee_date,unique" json:"employee_id"`
	Employee   *Profile   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Date       string     `gorm:"size:10;not null;index:idx_attendance_employee_date,unique" json:"date"`
	Status     string     `gorm:"size:20;not null" json:"status"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// DateKey formats t the way AttendanceRecord.Date stores it.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }
