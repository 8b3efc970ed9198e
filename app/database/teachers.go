package database

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

func ListTeachers(db DBTX) ([]*models.Teacher, error) {
	query := `SELECT u.id, u.first_name, u.last_name, s.name AS subject,
			  ARRAY_REMOVE(ARRAY_AGG(c.name), NULL) AS classes
			  FROM users u
			  JOIN subjects s ON u.subject_id = s.id
			  LEFT JOIN teacher_classes tc ON u.id = tc.teacher_id
			  LEFT JOIN classes c ON tc.class_id = c.id
			  WHERE u.role = 'teacher'
			  GROUP BY u.id, s.name
			  ORDER BY u.id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := []*models.Teacher{}
	for rows.Next() {
		teacher := &models.Teacher{}
		var classes pq.StringArray
		if err := rows.Scan(&teacher.ID, &teacher.FirstName, &teacher.LastName,
			&teacher.Subject, &classes); err != nil {
			return nil, err
		}
		teacher.Classes = []string(classes)
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}

func GetTeacherByID(db DBTX, teacherID int) (*models.User, error) {
	teacher := &models.User{Role: models.RoleTeacher}
	query := `SELECT u.id, u.first_name, u.last_name, u.subject_id
			  FROM users u
			  WHERE u.id = $1 AND u.role = 'teacher'`

	err := db.QueryRow(query, teacherID).Scan(
		&teacher.ID, &teacher.FirstName, &teacher.LastName, &teacher.SubjectID,
	)
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

// GetTeacherSubjectID returns the subject a teacher is attached to,
// nil when the column is NULL. sql.ErrNoRows when the user is missing.
func GetTeacherSubjectID(db DBTX, teacherID int) (*int, error) {
	var subjectID *int
	err := db.QueryRow(`SELECT subject_id FROM users WHERE id = $1`, teacherID).Scan(&subjectID)
	if err != nil {
		return nil, err
	}
	return subjectID, nil
}

// LinkTeacherClass records a teacher-class assignment; duplicate links
// are ignored.
func LinkTeacherClass(db DBTX, teacherID, classID int) error {
	_, err := db.Exec(`INSERT INTO teacher_classes (teacher_id, class_id) VALUES ($1, $2)
					   ON CONFLICT DO NOTHING`, teacherID, classID)
	return err
}

func ClearTeacherClasses(db DBTX, teacherID int) error {
	_, err := db.Exec(`DELETE FROM teacher_classes WHERE teacher_id = $1`, teacherID)
	return err
}

func GetTeacherClasses(db DBTX, teacherID int) ([]*models.Class, error) {
	query := `SELECT c.id, c.name
			  FROM teacher_classes tc
			  JOIN classes c ON tc.class_id = c.id
			  WHERE tc.teacher_id = $1
			  ORDER BY c.name`

	rows, err := db.Query(query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		class := &models.Class{}
		if err := rows.Scan(&class.ID, &class.Name); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func CountTeacherClasses(db DBTX, teacherID int) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) AS class_count FROM teacher_classes WHERE teacher_id = $1`,
		teacherID).Scan(&count)
	return count, err
}

func IsTeacherAssignedToClass(db DBTX, teacherID, classID int) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM teacher_classes WHERE teacher_id = $1 AND class_id = $2`,
		teacherID, classID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// TeacherStudentsSummary aggregates a teacher's student headcount and
// class list for the /students/count endpoint.
type TeacherStudentsSummary struct {
	TeacherID     int      `json:"teacher_id"`
	TeacherName   string   `json:"teacher_name"`
	Subject       string   `json:"subject"`
	TotalStudents int      `json:"total_students"`
	Classes       []string `json:"classes"`
}

func GetTeacherStudentsSummary(db DBTX, teacherID int) (*TeacherStudentsSummary, error) {
	query := `SELECT t.id AS teacher_id,
			  t.first_name || ' ' || t.last_name AS teacher_name,
			  s.name AS subject,
			  COUNT(DISTINCT u.id) AS total_students,
			  ARRAY_REMOVE(ARRAY_AGG(DISTINCT c.name), NULL) AS classes
			  FROM users t
			  JOIN subjects s ON t.subject_id = s.id
			  LEFT JOIN teacher_classes tc ON t.id = tc.teacher_id
			  LEFT JOIN classes c ON tc.class_id = c.id
			  LEFT JOIN users u ON u.class_id = c.id AND u.role = 'student'
			  WHERE t.role = 'teacher' AND t.id = $1
			  GROUP BY t.id, t.first_name, t.last_name, s.name`

	summary := &TeacherStudentsSummary{}
	var classes pq.StringArray
	err := db.QueryRow(query, teacherID).Scan(
		&summary.TeacherID, &summary.TeacherName, &summary.Subject,
		&summary.TotalStudents, &classes,
	)
	if err != nil {
		return nil, err
	}
	summary.Classes = []string(classes)
	return summary, nil
}

// UpdateTeacherFields applies the present-only fields of a teacher
// update. Nil pointers leave the stored value untouched.
func UpdateTeacherFields(db DBTX, teacherID int, firstName, lastName, email *string, subjectID *int) error {
	query := `UPDATE users
			  SET first_name = COALESCE($1, first_name),
				  last_name = COALESCE($2, last_name),
				  email = COALESCE($3, email),
				  subject_id = COALESCE($4, subject_id),
				  updated_at = NOW()
			  WHERE id = $5 AND role = 'teacher'`

	_, err := db.Exec(query, firstName, lastName, email, subjectID, teacherID)
	return err
}

// DeleteTeacherCascade removes a teacher and everything hanging off it:
// grades of the teacher's evaluations, the evaluations, the class
// assignments, then the account row. Must run inside a transaction.
func DeleteTeacherCascade(tx DBTX, teacherID int) (int64, error) {
	if _, err := tx.Exec(`DELETE FROM grades g USING evaluations e
						  WHERE g.evaluation_id = e.id AND e.teacher_id = $1`, teacherID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM evaluations WHERE teacher_id = $1`, teacherID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM teacher_classes WHERE teacher_id = $1`, teacherID); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`DELETE FROM users WHERE id = $1 AND role = 'teacher'`, teacherID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
