package database

import (
	"github.com/lib/pq"
)

// ClassAverage is one row of the per-class grade average report.
type ClassAverage struct {
	ClassName    string  `json:"class_name"`
	AverageGrade float64 `json:"average_grade"`
}

// GetClassAverages computes the average grade of each class the
// teacher evaluates, over the teacher's own evaluations only.
func GetClassAverages(db DBTX, teacherID int) ([]*ClassAverage, error) {
	query := `SELECT c.name AS class_name, ROUND(AVG(g.grade)::numeric, 2) AS average_grade
			  FROM teacher_classes tc
			  JOIN classes c ON tc.class_id = c.id
			  JOIN evaluations e ON e.class_id = c.id AND e.teacher_id = tc.teacher_id
			  JOIN grades g ON g.evaluation_id = e.id
			  WHERE tc.teacher_id = $1
			  GROUP BY c.name
			  ORDER BY c.name`

	rows, err := db.Query(query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := []*ClassAverage{}
	for rows.Next() {
		avg := &ClassAverage{}
		if err := rows.Scan(&avg.ClassName, &avg.AverageGrade); err != nil {
			return nil, err
		}
		averages = append(averages, avg)
	}
	return averages, rows.Err()
}

// AttendanceRate is one row of the per-class attendance percentage
// report.
type AttendanceRate struct {
	ClassName      string  `json:"class_name"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// GetAttendanceRates computes the presence percentage per class for a
// teacher's subject. Classes for which nothing was recorded yield no
// rows here; the caller falls back to GetTeacherClassNames to emit
// zero-rate rows instead.
func GetAttendanceRates(db DBTX, teacherID, subjectID int) ([]*AttendanceRate, error) {
	query := `WITH teacher_classes AS (
				SELECT c.id AS class_id, c.name AS class_name
				FROM teacher_classes tc
				JOIN classes c ON tc.class_id = c.id
				WHERE tc.teacher_id = $1
			  ),
			  attendance_data AS (
				SELECT tc.class_name, u.id AS student_id,
					   COUNT(CASE WHEN a.status = 'present' THEN 1 END) AS present_count,
					   COUNT(a.id) AS total_count
				FROM teacher_classes tc
				JOIN users u ON u.class_id = tc.class_id AND u.role = 'student'
				LEFT JOIN attendance a ON a.student_id = u.id AND a.subject_id = $2
				GROUP BY tc.class_name, u.id
			  )
			  SELECT class_name,
					 ROUND((SUM(present_count)::numeric / NULLIF(SUM(total_count), 0) * 100)::numeric, 2) AS attendance_rate
			  FROM attendance_data
			  GROUP BY class_name
			  HAVING SUM(total_count) > 0
			  ORDER BY class_name`

	rows, err := db.Query(query, teacherID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := []*AttendanceRate{}
	for rows.Next() {
		rate := &AttendanceRate{}
		if err := rows.Scan(&rate.ClassName, &rate.AttendanceRate); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

// GetTeacherClassNames lists the distinct class names assigned to a
// teacher, for the zero-filled attendance-rate fallback.
func GetTeacherClassNames(db DBTX, teacherID int) ([]string, error) {
	query := `SELECT DISTINCT c.name AS class_name
			  FROM teacher_classes tc
			  JOIN classes c ON tc.class_id = c.id
			  WHERE tc.teacher_id = $1
			  ORDER BY c.name`

	rows, err := db.Query(query, teacherID)
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

// AttendanceTrendPoint is one point of the monthly attendance series,
// keyed by "YYYY-MM".
type AttendanceTrendPoint struct {
	Month          string  `json:"month"`
	AttendanceRate float64 `json:"attendance_rate"`
}

func GetAttendanceTrends(db DBTX, teacherID, subjectID int) ([]*AttendanceTrendPoint, error) {
	query := `WITH teacher_classes AS (
				SELECT c.id AS class_id
				FROM teacher_classes tc
				JOIN classes c ON tc.class_id = c.id
				WHERE tc.teacher_id = $1
			  ),
			  class_students AS (
				SELECT u.id AS student_id
				FROM users u
				JOIN teacher_classes tc ON u.class_id = tc.class_id
				WHERE u.role = 'student'
			  ),
			  monthly_data AS (
				SELECT TO_CHAR(a.date, 'YYYY-MM') AS month,
					   COUNT(CASE WHEN a.status = 'present' THEN 1 END) AS present_count,
					   COUNT(a.id) AS total_count
				FROM attendance a
				JOIN class_students cs ON a.student_id = cs.student_id
				WHERE a.subject_id = $2
				GROUP BY TO_CHAR(a.date, 'YYYY-MM')
			  )
			  SELECT month,
					 ROUND((present_count::numeric / NULLIF(total_count, 0) * 100)::numeric, 2) AS attendance_rate
			  FROM monthly_data
			  ORDER BY month`

	rows, err := db.Query(query, teacherID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []*AttendanceTrendPoint{}
	for rows.Next() {
		point := &AttendanceTrendPoint{}
		if err := rows.Scan(&point.Month, &point.AttendanceRate); err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, rows.Err()
}

// GradeTrendPoint carries average_grade on the wire.
type GradeTrendPoint struct {
	Month        string  `json:"month"`
	AverageGrade float64 `json:"average_grade"`
}

func GetGradeTrends(db DBTX, teacherID int) ([]*GradeTrendPoint, error) {
	query := `WITH teacher_evaluations AS (
				SELECT e.id AS evaluation_id, TO_CHAR(e.date, 'YYYY-MM') AS month
				FROM evaluations e
				WHERE e.teacher_id = $1
			  )
			  SELECT te.month, ROUND(AVG(g.grade)::numeric, 2) AS average_grade
			  FROM teacher_evaluations te
			  JOIN grades g ON g.evaluation_id = te.evaluation_id
			  GROUP BY te.month
			  ORDER BY te.month`

	rows, err := db.Query(query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []*GradeTrendPoint{}
	for rows.Next() {
		point := &GradeTrendPoint{}
		if err := rows.Scan(&point.Month, &point.AverageGrade); err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, rows.Err()
}

// SubjectAverage is one row of the cross-subject comparison over the
// classes a teacher teaches.
type SubjectAverage struct {
	SubjectName  string  `json:"subject_name"`
	AverageGrade float64 `json:"average_grade"`
}

func GetSubjectComparison(db DBTX, classIDs []int) ([]*SubjectAverage, error) {
	query := `SELECT s.name AS subject_name, ROUND(AVG(g.grade)::numeric, 2) AS average_grade
			  FROM evaluations e
			  JOIN subjects s ON e.subject_id = s.id
			  JOIN grades g ON g.evaluation_id = e.id
			  WHERE e.class_id = ANY($1::int[])
			  GROUP BY s.name
			  ORDER BY average_grade DESC`

	rows, err := db.Query(query, pq.Array(classIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := []*SubjectAverage{}
	for rows.Next() {
		avg := &SubjectAverage{}
		if err := rows.Scan(&avg.SubjectName, &avg.AverageGrade); err != nil {
			return nil, err
		}
		averages = append(averages, avg)
	}
	return averages, rows.Err()
}

// GetTeacherClassIDs lists the distinct class ids a teacher teaches.
func GetTeacherClassIDs(db DBTX, teacherID int) ([]int, error) {
	query := `SELECT DISTINCT c.id AS class_id
			  FROM teacher_classes tc
			  JOIN classes c ON tc.class_id = c.id
			  WHERE tc.teacher_id = $1`

	rows, err := db.Query(query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
