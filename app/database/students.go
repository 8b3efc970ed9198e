package database

import (
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

func ListStudents(db DBTX) ([]*models.Student, error) {
	query := `SELECT u.id, u.first_name, u.last_name, u.email, c.name AS class_name
			  FROM users u
			  LEFT JOIN classes c ON u.class_id = c.id
			  WHERE u.role = 'student'
			  ORDER BY u.id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(&student.ID, &student.FirstName, &student.LastName,
			&student.Email, &student.ClassName); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

func GetStudentByID(db DBTX, studentID int) (*models.Student, error) {
	student := &models.Student{}
	query := `SELECT u.id, u.first_name, u.last_name, u.email, c.name AS class_name
			  FROM users u
			  LEFT JOIN classes c ON u.class_id = c.id
			  WHERE u.id = $1 AND u.role = 'student'`

	err := db.QueryRow(query, studentID).Scan(
		&student.ID, &student.FirstName, &student.LastName,
		&student.Email, &student.ClassName,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudent applies a partial update; absent fields keep their
// stored value. Reports how many rows matched.
func UpdateStudent(db DBTX, studentID int, firstName, lastName, email *string, classID *int) (int64, error) {
	query := `UPDATE users
			  SET first_name = COALESCE($1, first_name),
				  last_name = COALESCE($2, last_name),
				  email = COALESCE($3, email),
				  class_id = COALESCE($4, class_id),
				  updated_at = NOW()
			  WHERE id = $5 AND role = 'student'`

	res, err := db.Exec(query, firstName, lastName, email, classID, studentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteStudentCascade removes a student together with its grades and
// attendance rows. Must run inside a transaction.
func DeleteStudentCascade(tx DBTX, studentID int) (int64, error) {
	if _, err := tx.Exec(`DELETE FROM grades WHERE student_id = $1`, studentID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM attendance WHERE student_id = $1`, studentID); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`DELETE FROM users WHERE id = $1 AND role = 'student'`, studentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StudentRow is the class-roster projection, optionally joined with a
// grade for one evaluation.
type StudentRow struct {
	ID                    int      `json:"id"`
	FirstName             string   `json:"first_name"`
	LastName              string   `json:"last_name"`
	Email                 string   `json:"email"`
	ClassName             string   `json:"class_name"`
	Grade                 *float64 `json:"grade,omitempty"`
	Remarks               *string  `json:"remarks,omitempty"`
	EvaluationTitle       *string  `json:"evaluation_title,omitempty"`
	EvaluationDate        *string  `json:"evaluation_date,omitempty"`
	EvaluationCoefficient *float64 `json:"evaluation_coefficient,omitempty"`
}

// GetStudentsByClass lists the students of a class ordered by name.
// When evaluationID is non-nil each row carries that evaluation's
// grade columns (NULL when the student has no grade yet).
func GetStudentsByClass(db DBTX, classID int, evaluationID *int) ([]*StudentRow, error) {
	query := `SELECT u.id, u.first_name, u.last_name, u.email, c.name AS class_name`
	if evaluationID != nil {
		query += `,
			  g.grade, g.remarks,
			  e.title AS evaluation_title,
			  e.date::text AS evaluation_date,
			  e.coefficient AS evaluation_coefficient`
	}
	query += `
			  FROM users u
			  JOIN classes c ON u.class_id = c.id`
	if evaluationID != nil {
		query += `
			  LEFT JOIN grades g ON u.id = g.student_id AND g.evaluation_id = $2
			  LEFT JOIN evaluations e ON e.id = g.evaluation_id`
	}
	query += `
			  WHERE u.role = 'student' AND u.class_id = $1
			  ORDER BY u.last_name, u.first_name`

	args := []any{classID}
	if evaluationID != nil {
		args = append(args, *evaluationID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*StudentRow{}
	for rows.Next() {
		student := &StudentRow{}
		dest := []any{&student.ID, &student.FirstName, &student.LastName, &student.Email, &student.ClassName}
		if evaluationID != nil {
			dest = append(dest, &student.Grade, &student.Remarks,
				&student.EvaluationTitle, &student.EvaluationDate, &student.EvaluationCoefficient)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
