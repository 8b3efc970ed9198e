package database

import (
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

// UpsertAttendance writes one attendance record atomically: the
// (student, subject, date) key identifies at most one row, and a
// resubmission updates its status instead of inserting a duplicate.
// Runs on the plain handle or inside the bulk transaction. The
// returned flag reports whether the row was freshly inserted.
func UpsertAttendance(db DBTX, studentID, subjectID int, date string, status models.AttendanceStatus) (*models.Attendance, bool, error) {
	query := `INSERT INTO attendance (student_id, subject_id, date, status)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (student_id, subject_id, date)
			  DO UPDATE SET status = EXCLUDED.status
			  RETURNING id, student_id, subject_id, date, status, (xmax = 0) AS inserted`

	record := &models.Attendance{}
	var inserted bool
	err := db.QueryRow(query, studentID, subjectID, date, status).Scan(
		&record.ID, &record.StudentID, &record.SubjectID, &record.Date, &record.Status, &inserted,
	)
	if err != nil {
		return nil, false, err
	}
	return record, inserted, nil
}

// GetAttendanceStatus lists every attendance record with student,
// class and subject names, most recent first.
func GetAttendanceStatus(db DBTX) ([]*models.AttendanceEntry, error) {
	query := `SELECT u.id AS student_id, u.first_name, u.last_name,
			  c.name AS class_name, s.name AS subject_name, a.date, a.status
			  FROM users u
			  JOIN classes c ON u.class_id = c.id
			  JOIN attendance a ON a.student_id = u.id
			  JOIN subjects s ON a.subject_id = s.id
			  WHERE u.role = 'student'
			  ORDER BY a.date DESC, u.last_name, u.first_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.AttendanceEntry{}
	for rows.Next() {
		entry := &models.AttendanceEntry{}
		if err := rows.Scan(&entry.StudentID, &entry.FirstName, &entry.LastName,
			&entry.ClassName, &entry.SubjectName, &entry.Date, &entry.Status); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// StudentAttendanceRecord is the per-student attendance projection.
type StudentAttendanceRecord struct {
	AttendanceID int                     `json:"attendance_id"`
	SubjectName  string                  `json:"subject_name"`
	Date         string                  `json:"date"`
	Status       models.AttendanceStatus `json:"status"`
}

func GetAttendanceForStudent(db DBTX, studentID int) ([]*StudentAttendanceRecord, error) {
	query := `SELECT a.id AS attendance_id, s.name AS subject_name, a.date::text, a.status
			  FROM attendance a
			  JOIN subjects s ON a.subject_id = s.id
			  WHERE a.student_id = $1
			  ORDER BY a.date DESC, s.name`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*StudentAttendanceRecord{}
	for rows.Next() {
		record := &StudentAttendanceRecord{}
		if err := rows.Scan(&record.AttendanceID, &record.SubjectName,
			&record.Date, &record.Status); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetAttendanceForClass lists a class roster with attendance rows
// attached; date and subjectID narrow the join when present. Students
// without a matching record still appear, with NULL attendance fields.
func GetAttendanceForClass(db DBTX, classID int, date *string, subjectID *int) ([]*models.AttendanceEntry, error) {
	query := `SELECT u.id AS student_id, u.first_name, u.last_name,
			  s.name AS subject_name, a.date, a.status
			  FROM users u
			  LEFT JOIN attendance a ON a.student_id = u.id
			  LEFT JOIN subjects s ON a.subject_id = s.id
			  WHERE u.role = 'student' AND u.class_id = $1`

	args := []any{classID}
	if date != nil {
		args = append(args, *date)
		query += ` AND a.date = $2`
	}
	if subjectID != nil {
		args = append(args, *subjectID)
		if date != nil {
			query += ` AND a.subject_id = $3`
		} else {
			query += ` AND a.subject_id = $2`
		}
	}
	query += ` ORDER BY u.last_name, u.first_name, a.date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.AttendanceEntry{}
	for rows.Next() {
		entry := &models.AttendanceEntry{}
		if err := rows.Scan(&entry.StudentID, &entry.FirstName, &entry.LastName,
			&entry.SubjectName, &entry.Date, &entry.Status); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
