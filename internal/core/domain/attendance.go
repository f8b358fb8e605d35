package domain

import (
	"errors"
	"time"
)

// AttendanceStatus is the daily presence state of an employee.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceOnLeave AttendanceStatus = "On Leave"
	AttendanceRemote  AttendanceStatus = "Remote"
)

// AttendanceType qualifies how the day was worked.
type AttendanceType string

const (
	TypeRegular   AttendanceType = "Regular"
	TypeRemote    AttendanceType = "Remote"
	TypeSickLeave AttendanceType = "Sick Leave"
	TypeOther     AttendanceType = "Other"
)

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrInvalidStatus       = errors.New("invalid attendance status")
	ErrInvalidType         = errors.New("invalid attendance type")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this date")
	ErrNoAttendanceRecords = errors.New("no attendance records found for the employee")
)

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceOnLeave, AttendanceRemote:
		return true
	}
	return false
}

// ValidType reports whether t is a member of the type enum.
func ValidType(t AttendanceType) bool {
	switch t {
	case TypeRegular, TypeRemote, TypeSickLeave, TypeOther:
		return true
	}
	return false
}

// Attendance is one record per (employee, calendar day). The date keeps its
// full timestamp; day-level uniqueness is enforced over the DayBounds window.
type Attendance struct {
	ID         string           `json:"_id" bson:"_id,omitempty"`
	EmployeeID string           `json:"employee" bson:"employee"`
	TeamID     string           `json:"team" bson:"team"`
	Date       time.Time        `json:"date" bson:"date"`
	Status     AttendanceStatus `json:"status" bson:"status"`
	Type       AttendanceType   `json:"attendanceType" bson:"attendanceType"`
	CreatedAt  time.Time        `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  time.Time        `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// DayBounds returns the inclusive calendar-day window for t in local server
// time: 00:00:00.000 through 23:59:59.999. Both create-side uniqueness and
// delete-side matching use this window, never exact-timestamp equality.
func DayBounds(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}
