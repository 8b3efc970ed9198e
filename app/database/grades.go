package database

import (
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

// UpsertGrade writes a grade atomically: one row per
// (student, evaluation), updated in place on resubmission. The
// returned flag reports whether the row was freshly inserted
// (xmax = 0 only holds for rows the statement created).
func UpsertGrade(db DBTX, studentID, evaluationID int, grade float64, remarks *string) (*models.Grade, bool, error) {
	query := `INSERT INTO grades (student_id, evaluation_id, grade, remarks)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (student_id, evaluation_id)
			  DO UPDATE SET grade = EXCLUDED.grade, remarks = EXCLUDED.remarks
			  RETURNING id, grade, remarks, (xmax = 0) AS inserted`

	result := &models.Grade{}
	var inserted bool
	err := db.QueryRow(query, studentID, evaluationID, grade, remarks).
		Scan(&result.ID, &result.Grade, &result.Remarks, &inserted)
	if err != nil {
		return nil, false, err
	}
	return result, inserted, nil
}

// GradesForEvaluation lists the recorded grades of one evaluation with
// the student identity attached.
func GradesForEvaluation(db DBTX, evaluationID int) ([]*models.Grade, error) {
	query := `SELECT g.id, g.grade, g.remarks, u.id AS student_id, u.first_name, u.last_name
			  FROM grades g
			  JOIN users u ON g.student_id = u.id
			  WHERE g.evaluation_id = $1 AND u.role = 'student'`

	rows, err := db.Query(query, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := []*models.Grade{}
	for rows.Next() {
		grade := &models.Grade{}
		if err := rows.Scan(&grade.ID, &grade.Grade, &grade.Remarks,
			&grade.StudentID, &grade.FirstName, &grade.LastName); err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}
	return grades, rows.Err()
}
