package database

import (
	"database/sql"

	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

// GetSubjectIDByName resolves a subject name to its id. Returns
// sql.ErrNoRows when the name does not exist.
func GetSubjectIDByName(db DBTX, name string) (int, error) {
	var id int
	err := db.QueryRow(`SELECT id FROM subjects WHERE name = $1`, name).Scan(&id)
	return id, err
}

func ListSubjects(db DBTX) ([]*models.Subject, error) {
	rows, err := db.Query(`SELECT id, name FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []*models.Subject{}
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// SubjectNames returns every subject name, used to enrich the
// "Matière invalide" signup error.
func SubjectNames(db DBTX) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func GetSubjectByID(db DBTX, subjectID int) (*models.Subject, error) {
	subject := &models.Subject{}
	err := db.QueryRow(`SELECT id, name FROM subjects WHERE id = $1`, subjectID).
		Scan(&subject.ID, &subject.Name)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func CreateSubject(db DBTX, subject *models.Subject) error {
	return db.QueryRow(`INSERT INTO subjects (name) VALUES ($1) RETURNING id`, subject.Name).
		Scan(&subject.ID)
}

func UpdateSubject(db DBTX, subjectID int, name string) (int64, error) {
	res, err := db.Exec(`UPDATE subjects SET name = $1 WHERE id = $2`, name, subjectID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SubjectInUse reports whether a teacher, evaluation or attendance row
// still references the subject.
func SubjectInUse(db DBTX, subjectID int) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM users WHERE subject_id = $1
						UNION
						SELECT 1 FROM evaluations WHERE subject_id = $1
						UNION
						SELECT 1 FROM attendance WHERE subject_id = $1
						LIMIT 1`, subjectID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func DeleteSubject(db DBTX, subjectID int) (int64, error) {
	res, err := db.Exec(`DELETE FROM subjects WHERE id = $1`, subjectID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
