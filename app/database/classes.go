package database

import (
	"database/sql"

	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

// GetClassIDByName resolves a class name to its id. Returns
// sql.ErrNoRows when the name does not exist.
func GetClassIDByName(db DBTX, name string) (int, error) {
	var id int
	err := db.QueryRow(`SELECT id FROM classes WHERE name = $1`, name).Scan(&id)
	return id, err
}

func ListClasses(db DBTX) ([]*models.Class, error) {
	query := `SELECT c.id, c.name, COUNT(u.id) AS student_count
			  FROM classes c
			  LEFT JOIN users u ON u.class_id = c.id AND u.role = 'student'
			  GROUP BY c.id, c.name
			  ORDER BY c.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		class := &models.Class{}
		if err := rows.Scan(&class.ID, &class.Name, &class.StudentCount); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}

func GetClassByID(db DBTX, classID int) (*models.Class, error) {
	class := &models.Class{}
	err := db.QueryRow(`SELECT id, name FROM classes WHERE id = $1`, classID).
		Scan(&class.ID, &class.Name)
	if err != nil {
		return nil, err
	}
	return class, nil
}

func ClassExists(db DBTX, classID int) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM classes WHERE id = $1`, classID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func CreateClass(db DBTX, class *models.Class) error {
	return db.QueryRow(`INSERT INTO classes (name) VALUES ($1) RETURNING id`, class.Name).
		Scan(&class.ID)
}

// UpdateClass renames a class; reports how many rows matched.
func UpdateClass(db DBTX, classID int, name string) (int64, error) {
	res, err := db.Exec(`UPDATE classes SET name = $1 WHERE id = $2`, name, classID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClassInUse reports whether any student or teacher assignment still
// references the class. Deletion is refused while true.
func ClassInUse(db DBTX, classID int) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM users WHERE class_id = $1 AND role = 'student'
						UNION
						SELECT 1 FROM teacher_classes WHERE class_id = $1
						LIMIT 1`, classID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func DeleteClass(db DBTX, classID int) (int64, error) {
	res, err := db.Exec(`DELETE FROM classes WHERE id = $1`, classID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func CountClasses(db DBTX) (int, error) {
	var total int
	err := db.QueryRow(`SELECT COUNT(*) AS total FROM classes`).Scan(&total)
	return total, err
}
