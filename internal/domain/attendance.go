package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attendance statuses.
const (
	StatusPresent = "present"
)

// AttendanceRecord is one check-in entry in the attendance log.
type AttendanceRecord struct {
	ID           uuid.UUID `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Timestamp    time.Time `json:"timestamp"`
	// Confidence is nil for manual check-ins.
	Confidence *float64 `json:"confidence,omitempty"`
	Status     string   `json:"status"`
	Manual     bool     `json:"manual"`
}

// CheckinResult is the outcome of a recognition check-in attempt.
type CheckinResult struct {
	Recognized       bool              `json:"recognized"`
	AlreadyCheckedIn bool              `json:"already_checked_in"`
	Employee         *Employee         `json:"employee,omitempty"`
	Match            MatchResult       `json:"match"`
	Record           *AttendanceRecord `json:"record,omitempty"`
	LastCheckin      *time.Time        `json:"last_checkin,omitempty"`
	Message          string            `json:"message"`
}
