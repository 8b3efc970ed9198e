package models

// User roles as stored in the users.role column.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ClassID      *int   `json:"class_id,omitempty"`
	SubjectID    *int   `json:"subject_id,omitempty"`
	PasswordHash string `json:"-"`
}

// Student is the list/detail projection for student accounts.
type Student struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	ClassName *string `json:"class_name"`
}

// Teacher is the list projection for teacher accounts, with the
// aggregated class names from teacher_classes.
type Teacher struct {
	ID        int      `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Subject   string   `json:"subject"`
	Classes   []string `json:"classes"`
}
