package models

import "time"

type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case Present, Absent, Late:
		return true
	}
	return false
}

type Attendance struct {
	ID        int              `json:"id"`
	StudentID int              `json:"student_id"`
	SubjectID int              `json:"subject_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceEntry is the joined projection used by the status
// endpoints (student + class + subject names alongside the record).
type AttendanceEntry struct {
	StudentID   int               `json:"student_id,omitempty"`
	FirstName   string            `json:"first_name,omitempty"`
	LastName    string            `json:"last_name,omitempty"`
	ClassName   string            `json:"class_name,omitempty"`
	SubjectName *string           `json:"subject_name"`
	Date        *time.Time        `json:"date"`
	Status      *AttendanceStatus `json:"status"`
}
