package database

// CountUsersByRole counts the accounts holding one role.
func CountUsersByRole(db DBTX, role string) (int, error) {
	var total int
	err := db.QueryRow(`SELECT COUNT(*) AS total FROM users WHERE role = $1`, role).Scan(&total)
	return total, err
}

func CountAccounts(db DBTX) (int, error) {
	var total int
	err := db.QueryRow(`SELECT COUNT(*) AS total FROM users`).Scan(&total)
	return total, err
}

// ClassHeadcount is one row of the students-per-class dashboard chart.
type ClassHeadcount struct {
	ClassName    string `json:"class_name"`
	StudentCount int    `json:"student_count"`
}

func GetClassHeadcounts(db DBTX) ([]*ClassHeadcount, error) {
	query := `SELECT c.name AS class_name, COUNT(u.id) AS student_count
			  FROM users u
			  JOIN classes c ON u.class_id = c.id
			  WHERE u.role = 'student'
			  GROUP BY c.name
			  ORDER BY c.name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []*ClassHeadcount{}
	for rows.Next() {
		count := &ClassHeadcount{}
		if err := rows.Scan(&count.ClassName, &count.StudentCount); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}

// SubjectHeadcount is one row of the teachers-per-subject chart.
type SubjectHeadcount struct {
	SubjectName  string `json:"subject_name"`
	TeacherCount int    `json:"teacher_count"`
}

func GetTeachersBySubject(db DBTX) ([]*SubjectHeadcount, error) {
	query := `SELECT s.name AS subject_name, COUNT(u.id) AS teacher_count
			  FROM users u
			  JOIN subjects s ON u.subject_id = s.id
			  WHERE u.role = 'teacher'
			  GROUP BY s.name
			  ORDER BY teacher_count DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []*SubjectHeadcount{}
	for rows.Next() {
		count := &SubjectHeadcount{}
		if err := rows.Scan(&count.SubjectName, &count.TeacherCount); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	return counts, rows.Err()
}
