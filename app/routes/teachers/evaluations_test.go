package teachers

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateEvaluationInvalidDate(t *testing.T) {
	app, mock := newTestApp(t)

	resp := postJSON(t, app, "/api/teachers/5/evaluations", map[string]any{
		"title":   "Contrôle n°1",
		"date":    "10/03/2025",
		"classId": 3,
	})

	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Date invalide" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database calls: %v", err)
	}
}

func TestCreateEvaluationUnknownTeacher(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT u.id, u.first_name, u.last_name, u.subject_id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "subject_id"}))

	resp := postJSON(t, app, "/api/teachers/99/evaluations", map[string]any{
		"title":   "Contrôle n°1",
		"date":    "2025-03-10",
		"classId": 3,
	})

	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Enseignant non trouvé" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateEvaluationUnassignedClass(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT u.id, u.first_name, u.last_name, u.subject_id").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "subject_id"}).
			AddRow(5, "Marie", "Curie", 2))
	mock.ExpectQuery("SELECT 1 FROM teacher_classes").
		WithArgs(5, 3).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	resp := postJSON(t, app, "/api/teachers/5/evaluations", map[string]any{
		"title":   "Contrôle n°1",
		"date":    "2025-03-10",
		"classId": 3,
	})

	if resp.StatusCode != 403 {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Vous n'êtes pas assigné à cette classe" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Coefficient defaults to 1.0 when the request omits it.
func TestCreateEvaluationDefaultCoefficient(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT u.id, u.first_name, u.last_name, u.subject_id").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "subject_id"}).
			AddRow(5, "Marie", "Curie", 2))
	mock.ExpectQuery("SELECT 1 FROM teacher_classes").
		WithArgs(5, 3).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	evalDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO evaluations").
		WithArgs("Contrôle n°1", "2025-03-10", 1.0, 2, 3, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "date", "coefficient"}).
			AddRow(8, "Contrôle n°1", evalDate, 1.0))

	resp := postJSON(t, app, "/api/teachers/5/evaluations", map[string]any{
		"title":   "Contrôle n°1",
		"date":    "2025-03-10",
		"classId": 3,
	})

	if resp.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["message"] != "Évaluation créée avec succès" {
		t.Errorf("message = %q", body["message"])
	}
	eval, ok := body["evaluation"].(map[string]any)
	if !ok {
		t.Fatalf("evaluation = %v", body["evaluation"])
	}
	if eval["id"] != float64(8) || eval["coefficient"] != float64(1) {
		t.Errorf("evaluation = %v", eval)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestEvaluationGradesForbidden(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery("SELECT 1 FROM evaluations").
		WithArgs(8, 5).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	resp := getPath(t, app, "/api/teachers/5/evaluations/8/grades")
	if resp.StatusCode != 403 {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["error"] != "Vous n'êtes pas autorisé à consulter cette évaluation" {
		t.Errorf("error = %q", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
