package database

import (
	"database/sql"

	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

// CreateEvaluation inserts an evaluation and fills in the generated
// id, stored date and coefficient.
func CreateEvaluation(db DBTX, eval *models.Evaluation, date string) error {
	query := `INSERT INTO evaluations (title, date, coefficient, subject_id, class_id, teacher_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, title, date, coefficient`

	return db.QueryRow(query,
		eval.Title, date, eval.Coefficient, eval.SubjectID, eval.ClassID, eval.TeacherID,
	).Scan(&eval.ID, &eval.Title, &eval.Date, &eval.Coefficient)
}

// EvaluationOwnedByTeacher is the ownership check guarding grade
// recording and grade listing.
func EvaluationOwnedByTeacher(db DBTX, evaluationID, teacherID int) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM evaluations WHERE id = $1 AND teacher_id = $2`,
		evaluationID, teacherID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListTeacherEvaluations returns a teacher's evaluations, newest
// first, optionally restricted to one class.
func ListTeacherEvaluations(db DBTX, teacherID int, classID *int) ([]*models.Evaluation, error) {
	query := `SELECT e.id, e.title, e.date, e.coefficient,
			  c.id AS class_id, c.name AS class_name,
			  s.id AS subject_id, s.name AS subject_name,
			  (SELECT COUNT(*) FROM grades WHERE evaluation_id = e.id) AS grades_count
			  FROM evaluations e
			  JOIN classes c ON e.class_id = c.id
			  JOIN subjects s ON e.subject_id = s.id
			  WHERE e.teacher_id = $1`

	args := []any{teacherID}
	if classID != nil {
		query += ` AND e.class_id = $2`
		args = append(args, *classID)
	}
	query += ` ORDER BY e.date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evals := []*models.Evaluation{}
	for rows.Next() {
		eval := &models.Evaluation{}
		if err := rows.Scan(&eval.ID, &eval.Title, &eval.Date, &eval.Coefficient,
			&eval.ClassID, &eval.ClassName, &eval.SubjectID, &eval.SubjectName,
			&eval.GradesCount); err != nil {
			return nil, err
		}
		evals = append(evals, eval)
	}
	return evals, rows.Err()
}
