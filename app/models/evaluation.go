package models

import "time"

type Evaluation struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Coefficient float64   `json:"coefficient"`
	ClassID     int       `json:"class_id,omitempty"`
	ClassName   string    `json:"class_name,omitempty"`
	SubjectID   int       `json:"subject_id,omitempty"`
	SubjectName string    `json:"subject_name,omitempty"`
	TeacherID   int       `json:"teacher_id,omitempty"`
	GradesCount int       `json:"grades_count"`
}

type Grade struct {
	ID           int     `json:"id"`
	Grade        float64 `json:"grade"`
	Remarks      *string `json:"remarks"`
	StudentID    int     `json:"student_id,omitempty"`
	EvaluationID int     `json:"evaluation_id,omitempty"`
	FirstName    string  `json:"first_name,omitempty"`
	LastName     string  `json:"last_name,omitempty"`
}
